package analyze

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/issues"
	"github.com/solscan-io/solscan/internal/pipeline"
	"github.com/solscan-io/solscan/internal/report"
	"github.com/solscan-io/solscan/pkg/shared/config"
	"github.com/solscan-io/solscan/pkg/shared/files"
	"github.com/solscan-io/solscan/pkg/shared/logger"
)

// RunOptionsAnalyze holds the arguments for the analyze command.
type RunOptionsAnalyze struct {
	InputFile  string
	Format     string
	OutputPath string
	SourceRoot string
	Verbose    bool
}

// ErrIssuesFound signals a clean run whose report contains at least one
// error-severity finding; the root command maps it to exit code 1.
var ErrIssuesFound = errors.New("analysis reported errors")

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	analyzeOptions      RunOptionsAnalyze
	exampleAnalyzeUsage = `  # Analyze compiled contracts and print the default table
  solscan analyze build/combined.json

  # Replay saved raw issues instead of calling the analysis service
  solscan analyze --input-file issues.json build/combined.json

  # Emit SARIF into a file
  solscan analyze --format sarif --output report.sarif build/combined.json

  # Resolve source files relative to the project root
  solscan analyze --source-root ./contracts build/combined.json`
)

// AnalyzeCmd represents the analyze command.
var AnalyzeCmd = &cobra.Command{
	Use:                   "analyze [--input-file/-i PATH] [--format/-f STYLE] [--output/-o PATH] COMBINED_JSON",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalyzeUsage,
	Short:                 "Resolves analysis findings for compiled contracts and renders a report",
	RunE:                  runAnalyzeCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	flags := AnalyzeCmd.Flags()
	flags.StringVarP(&analyzeOptions.InputFile, "input-file", "i", "", "replay saved raw issues instead of calling the analysis service")
	flags.StringVarP(&analyzeOptions.Format, "format", "f", "", "report style: stylish, json, compact, sarif")
	flags.StringVarP(&analyzeOptions.OutputPath, "output", "o", "", "write the rendered report to a file instead of stdout")
	flags.StringVar(&analyzeOptions.SourceRoot, "source-root", "", "directory the artifact's source paths are relative to")
	flags.BoolVar(&analyzeOptions.Verbose, "verbose", false, "log suppressed findings at info level")
}

// runAnalyzeCommand executes the analyze command.
func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-analyze")

	if err := validateAnalyzeArgs(&analyzeOptions, args); err != nil {
		log.Error("invalid analyze arguments", "error", err)
		return err
	}

	style := analyzeOptions.Format
	if style == "" {
		style = AppConfig.Report.Format
	}
	formatter, err := report.NewFormatter(style)
	if err != nil {
		return err
	}

	artifacts, err := compiler.LoadCombinedJSON(args[0])
	if err != nil {
		log.Error("failed to load compiled artifacts", "error", err)
		return err
	}
	if len(artifacts) == 0 {
		return fmt.Errorf("no contracts found in %q", args[0])
	}

	sources := loadSources(log, artifacts, analyzeOptions.SourceRoot)

	source, err := issueSource(log, &analyzeOptions)
	if err != nil {
		return err
	}

	p := pipeline.New(log, source, issues.Options{Verbose: analyzeOptions.Verbose})
	grouped, err := p.Run(cmd.Context(), artifacts, sources)
	if err != nil {
		log.Error("analysis pipeline failed", "error", err)
		return err
	}

	text, err := formatter.Render(grouped)
	if err != nil {
		return err
	}
	if analyzeOptions.OutputPath != "" {
		if err := files.WriteFileText(analyzeOptions.OutputPath, text); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}

	if grouped.HasErrors() {
		return ErrIssuesFound
	}
	return nil
}
