package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/solscan-io/solscan/cmd/analyze"
	"github.com/solscan-io/solscan/cmd/render"
	"github.com/solscan-io/solscan/cmd/version"
	"github.com/solscan-io/solscan/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "solscan [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Solscan resolves and reports smart-contract security analysis findings.",
		Long: `Solscan takes compiled Solidity artifacts, submits them to a remote security
	analysis service, resolves the returned findings to precise source locations,
	and renders them as a grouped, sorted issue report.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(analyze.AnalyzeCmd)
	rootCmd.AddCommand(render.RenderCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code: 0 on a
// clean run, 1 when the report contains error-severity findings, 2 on
// command failures.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, analyze.ErrIssuesFound) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 2
	}
	return 0
}

func initConfig() {
	// .env carries credentials (SOLSCAN_API_KEY); a missing file is fine.
	_ = godotenv.Load()

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	var err error
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	analyze.Init(AppConfig)
	render.Init(AppConfig)
}
