package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/solscan-io/solscan/internal/report"
	"github.com/solscan-io/solscan/pkg/shared/config"
	"github.com/solscan-io/solscan/pkg/shared/files"
)

// RunOptionsRender holds the arguments for the render command.
type RunOptionsRender struct {
	Format     string
	OutputPath string
}

var (
	AppConfig          *config.Config
	renderOptions      RunOptionsRender
	exampleRenderUsage = `  # Re-render a saved json report as SARIF
  solscan render --format sarif report.json

  # Re-render into a file
  solscan render --format compact --output report.txt report.json`
)

// RenderCmd re-renders a report previously saved with --format json.
var RenderCmd = &cobra.Command{
	Use:                   "render [--format/-f STYLE] [--output/-o PATH] REPORT_JSON",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleRenderUsage,
	Short:                 "Re-renders a saved report in another output style",
	RunE:                  runRenderCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	flags := RenderCmd.Flags()
	flags.StringVarP(&renderOptions.Format, "format", "f", "", "report style: stylish, json, compact, sarif")
	flags.StringVarP(&renderOptions.OutputPath, "output", "o", "", "write the rendered report to a file instead of stdout")
}

func runRenderCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one saved report path, got %d arguments", len(args))
	}
	if err := files.ValidatePath(args[0]); err != nil {
		return fmt.Errorf("invalid report path: %w", err)
	}

	style := renderOptions.Format
	if style == "" {
		style = AppConfig.Report.Format
	}
	formatter, err := report.NewFormatter(style)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report %q: %w", args[0], err)
	}
	var groups []*report.FileReport
	if err := json.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("report %q is not a saved json report: %w", args[0], err)
	}

	grouped := &report.GroupedReport{Files: make(map[string]*report.FileReport, len(groups))}
	for _, group := range groups {
		grouped.Files[filepath.Base(group.FilePath)] = group
	}

	text, err := formatter.Render(grouped)
	if err != nil {
		return err
	}
	if renderOptions.OutputPath != "" {
		return files.WriteFileText(renderOptions.OutputPath, text)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
