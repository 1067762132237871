package pipeline

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/issues"
	"github.com/solscan-io/solscan/internal/report"
	"github.com/solscan-io/solscan/internal/sourcemap"
)

// IssueSource produces raw analysis batches for one contract. The remote
// client and the replay loader both satisfy it.
type IssueSource interface {
	Analyze(ctx context.Context, artifact *compiler.Artifact, sources map[string]string) ([]issues.Batch, error)
}

// Pipeline drives resolution end to end: fetch raw batches per contract,
// normalize them, then fold everything into one grouped report. Per-contract
// work runs in parallel; contracts share no mutable state, so the only
// serialization point is the final fold.
type Pipeline struct {
	logger     hclog.Logger
	source     IssueSource
	normalizer *issues.Normalizer
}

// New builds a pipeline. The line-index registry is shared across contracts
// so common source files are indexed once.
func New(logger hclog.Logger, source IssueSource, opts issues.Options) *Pipeline {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pipeline{
		logger:     logger,
		source:     source,
		normalizer: issues.NewNormalizer(logger, sourcemap.NewRegistry(), opts),
	}
}

// Run analyzes every artifact and returns the grouped report. sources maps
// source-list names to raw file text. The grouped fold is deterministic
// regardless of the order the parallel tasks complete in.
func (p *Pipeline) Run(ctx context.Context, artifacts []*compiler.Artifact, sources map[string]string) (*report.GroupedReport, error) {
	results := make([][]issues.Diagnostic, len(artifacts))

	g, ctx := errgroup.WithContext(ctx)
	for i, artifact := range artifacts {
		i, artifact := i, artifact
		g.Go(func() error {
			batches, err := p.source.Analyze(ctx, artifact, sources)
			if err != nil {
				return err
			}

			var diags []issues.Diagnostic
			for _, batch := range batches {
				normalized, err := p.normalizer.Normalize(batch, artifact, sources)
				if err != nil {
					return err
				}
				diags = append(diags, normalized...)
			}

			p.logger.Debug("contract resolved",
				"contract", artifact.ContractName, "diagnostics", len(diags))
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []issues.Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	return report.Group(all), nil
}
