package analyze

import (
	"fmt"

	"github.com/solscan-io/solscan/pkg/shared/files"
)

// validateAnalyzeArgs checks the command arguments before any work starts.
func validateAnalyzeArgs(opts *RunOptionsAnalyze, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one combined-json path, got %d arguments", len(args))
	}
	if err := files.ValidatePath(args[0]); err != nil {
		return fmt.Errorf("invalid combined-json path: %w", err)
	}
	if opts.InputFile != "" {
		if err := files.ValidatePath(opts.InputFile); err != nil {
			return fmt.Errorf("invalid replay file: %w", err)
		}
	}
	return nil
}
