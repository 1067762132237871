package analyze

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/solscan-io/solscan/internal/analyzer"
	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/pipeline"
	"github.com/solscan-io/solscan/pkg/shared/files"
)

// loadSources reads the raw text of every file the artifacts reference.
// A file that cannot be read is logged and skipped; its findings resolve to
// the no-location sentinel downstream instead of failing the run.
func loadSources(log hclog.Logger, artifacts []*compiler.Artifact, root string) map[string]string {
	sources := make(map[string]string)
	for _, artifact := range artifacts {
		for _, name := range artifact.SourceList {
			if _, ok := sources[name]; ok {
				continue
			}
			path := name
			if root != "" && !filepath.IsAbs(name) {
				path = filepath.Join(root, name)
			}
			text, err := files.ReadFileText(path)
			if err != nil {
				log.Warn("cannot read source file, findings in it will be unlocated", "file", name, "error", err)
				continue
			}
			sources[name] = text
		}
	}
	return sources
}

// issueSource picks where raw issues come from: a replay file when given,
// otherwise the remote analysis service.
func issueSource(log hclog.Logger, opts *RunOptionsAnalyze) (pipeline.IssueSource, error) {
	if opts.InputFile != "" {
		return analyzer.LoadReplay(opts.InputFile)
	}

	apiKey := os.Getenv("SOLSCAN_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SOLSCAN_API_KEY is not set; export it or put it in .env")
	}
	return analyzer.New(AppConfig, log, apiKey), nil
}
