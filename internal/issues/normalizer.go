package issues

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/solscan-io/solscan/internal/compiler"
	"github.com/solscan-io/solscan/internal/sourcemap"
)

// suppressibleSWC lists the unused/uninitialized-variable finding classes
// that are known noise when raised against dynamically-sized array
// declarations.
var suppressibleSWC = map[string]bool{
	"SWC-109": true, // uninitialized storage pointer
	"SWC-131": true, // unused variable
}

// Options tunes normalization behavior.
type Options struct {
	// Verbose raises suppression logging from Debug to Info so filtered
	// findings are visible without a debug-level logger.
	Verbose bool
}

// Normalizer converts raw analysis batches into canonical diagnostics,
// resolving each location against the batch's contract artifact.
type Normalizer struct {
	logger   hclog.Logger
	registry *sourcemap.Registry
	opts     Options
}

// NewNormalizer builds a normalizer. The registry may be shared across
// normalizers so line indexes for common files are built once.
func NewNormalizer(logger hclog.Logger, registry *sourcemap.Registry, opts Options) *Normalizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if registry == nil {
		registry = sourcemap.NewRegistry()
	}
	return &Normalizer{logger: logger, registry: registry, opts: opts}
}

// Normalize converts one raw batch into canonical diagnostics. sources maps
// the names in the batch's source list to raw file text. Per-location
// failures are local: a malformed location is skipped and its siblings still
// process. The only hard failure is an artifact that cannot support the
// requested source format at all.
func (n *Normalizer) Normalize(batch Batch, artifact *compiler.Artifact, sources map[string]string) ([]Diagnostic, error) {
	resolver, err := n.newResolver(batch, artifact, sources)
	if err != nil {
		return nil, err
	}

	var out []Diagnostic
	for _, raw := range batch.Issues {
		out = append(out, n.normalizeIssue(raw, batch, artifact, resolver)...)
	}
	return out, nil
}

// newResolver assembles the per-batch resolver: one line-break index per
// referenced file, plus the decoded instruction-to-source table when the
// batch locates findings by bytecode offset.
func (n *Normalizer) newResolver(batch Batch, artifact *compiler.Artifact, sources map[string]string) (*sourcemap.Resolver, error) {
	files := make(map[int]sourcemap.LineBreakIndex, len(batch.SourceList))
	for i, name := range batch.SourceList {
		text, ok := sources[name]
		if !ok {
			n.logger.Debug("no source text supplied for file", "file", name)
			continue
		}
		files[i] = n.registry.Index(name, text)
	}

	var bytecode []byte
	var entries []sourcemap.Entry
	if batch.SourceFormat == FormatBytecode {
		if artifact.DeployedSourceMap == "" {
			return nil, fmt.Errorf("contract %q: %w", artifact.ContractName, compiler.ErrMissingSourceMap)
		}
		decoded, err := sourcemap.DecodeEntries(artifact.DeployedSourceMap)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", artifact.ContractName, err)
		}
		entries = decoded

		bytecode, err = artifact.DeployedBytecodeBytes()
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", artifact.ContractName, err)
		}
	}

	return sourcemap.NewResolver(bytecode, entries, files), nil
}

func (n *Normalizer) normalizeIssue(raw RawDiagnostic, batch Batch, artifact *compiler.Artifact, resolver *sourcemap.Resolver) []Diagnostic {
	message := strings.TrimSpace(raw.Description.Head + " " + raw.Description.Tail)
	severity := ParseSeverity(raw.Severity)

	var out []Diagnostic
	for _, loc := range raw.Locations {
		res, err := n.resolveLocation(loc, batch.SourceFormat, resolver)
		if err != nil {
			// Malformed entry text fails this location only.
			n.logger.Warn("skipping unparseable location", "swc", raw.SwcID, "error", err)
			continue
		}

		if n.suppressed(raw, res, artifact) {
			continue
		}

		diag := Diagnostic{
			RuleID:   raw.SwcID,
			Line:     res.Span.Start.Line,
			Column:   res.Span.Start.Column,
			Severity: severity,
			Message:  message,
			FilePath: n.filePath(res, batch, artifact),
		}
		if res.Span.End != nil {
			diag.EndLine = res.Span.End.Line
			diag.EndCol = res.Span.End.Column
		}
		out = append(out, diag)
	}
	return out
}

func (n *Normalizer) resolveLocation(loc Location, format string, resolver *sourcemap.Resolver) (sourcemap.Resolution, error) {
	if format == FormatBytecode {
		offset, err := bytecodeOffset(loc)
		if err != nil {
			return sourcemap.Resolution{}, err
		}
		return resolver.ResolveOffset(offset), nil
	}
	return resolver.ResolveEntry(loc.SourceMap)
}

// bytecodeOffset picks the instruction address of a bytecode-format
// location: the explicit address field when present, otherwise the first
// field of the location's source-map entry.
func bytecodeOffset(loc Location) (int, error) {
	if loc.Address != nil {
		return *loc.Address, nil
	}
	entry, err := sourcemap.ParseEntry(loc.SourceMap)
	if err != nil {
		return 0, err
	}
	return entry.Start, nil
}

// suppressed applies the declaration/array heuristic: findings of the
// suppressible classes raised against a dynamically-sized array declaration
// are dropped from the output and only logged.
func (n *Normalizer) suppressed(raw RawDiagnostic, res sourcemap.Resolution, artifact *compiler.Artifact) bool {
	if !res.Span.Located() || !suppressibleSWC[raw.SwcID] {
		return false
	}
	if !compiler.IsVariableDeclaration(artifact.AST, res.ByteStart, res.ByteLen) ||
		!compiler.IsDynamicArray(artifact.AST, res.ByteStart, res.ByteLen) {
		return false
	}

	level := hclog.Debug
	if n.opts.Verbose {
		level = hclog.Info
	}
	n.logger.Log(level, "suppressing dynamic array declaration finding",
		"swc", raw.SwcID,
		"contract", artifact.ContractName,
		"line", res.Span.Start.Line)
	return true
}

func (n *Normalizer) filePath(res sourcemap.Resolution, batch Batch, artifact *compiler.Artifact) string {
	if res.FileIndex >= 0 && res.FileIndex < len(batch.SourceList) {
		return batch.SourceList[res.FileIndex]
	}
	// Unlocated findings still group somewhere: fall back to the
	// contract's own source file.
	return artifact.SourcePath
}
