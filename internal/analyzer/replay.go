package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/issues"
)

// ReplaySource serves previously saved raw issue batches instead of calling
// the analysis service. The file is either a map of contract name to batch
// list or, for single-contract runs, a plain batch list.
type ReplaySource struct {
	byContract map[string][]issues.Batch
	flat       []issues.Batch
}

// LoadReplay parses a saved raw-issues file.
func LoadReplay(path string) (*ReplaySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay file %q: %w", path, err)
	}

	var byContract map[string][]issues.Batch
	if err := json.Unmarshal(data, &byContract); err == nil {
		return &ReplaySource{byContract: byContract}, nil
	}

	var flat []issues.Batch
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("replay file %q is neither a batch list nor a contract map: %w", path, err)
	}
	return &ReplaySource{flat: flat}, nil
}

// Analyze returns the saved batches for the artifact's contract. A flat file
// applies to every contract.
func (r *ReplaySource) Analyze(_ context.Context, artifact *compiler.Artifact, _ map[string]string) ([]issues.Batch, error) {
	if r.byContract != nil {
		return r.byContract[artifact.ContractName], nil
	}
	return r.flat, nil
}
