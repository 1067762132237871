package report

import (
	"path/filepath"
	"sort"

	"github.com/solscan-io/solscan/internal/issues"
)

// FileReport aggregates the diagnostics reported against one source file.
// The fixable counts originate upstream and are carried through unchanged;
// the grouper never recomputes them.
type FileReport struct {
	FilePath            string              `json:"filePath"`
	ErrorCount          int                 `json:"errorCount"`
	WarningCount        int                 `json:"warningCount"`
	FixableErrorCount   int                 `json:"fixableErrorCount"`
	FixableWarningCount int                 `json:"fixableWarningCount"`
	Messages            []issues.Diagnostic `json:"messages"`
}

// GroupedReport maps file basenames to their aggregates. Grouping by
// basename merges findings reported against differing absolute paths for
// the same logical file.
type GroupedReport struct {
	Files map[string]*FileReport `json:"files"`
}

// Group folds canonical diagnostics into a report grouped by file basename.
// It is a pure fold over its input: merging batches in any order yields the
// same counts and, after the per-group sort, the same message order.
func Group(diags []issues.Diagnostic) *GroupedReport {
	report := &GroupedReport{Files: make(map[string]*FileReport)}

	for _, d := range diags {
		key := filepath.Base(d.FilePath)
		group, ok := report.Files[key]
		if !ok {
			group = &FileReport{FilePath: d.FilePath}
			report.Files[key] = group
		}

		switch d.Severity {
		case issues.SeverityHigh:
			group.ErrorCount++
		case issues.SeverityMedium, issues.SeverityLow:
			group.WarningCount++
		}
		group.Messages = append(group.Messages, d)
	}

	for _, group := range report.Files {
		SortMessages(group.Messages)
	}
	return report
}

// CompareMessages is the two-level message comparator: primary key
// (line, column) ascending, ties broken by (endLine, endCol) ascending.
// It returns a negative, zero, or positive sign and is total: equal keys
// compare as zero, leaving their relative order to the stable sort.
func CompareMessages(a, b issues.Diagnostic) int {
	if c := compareInts(a.Line, b.Line); c != 0 {
		return c
	}
	if c := compareInts(a.Column, b.Column); c != 0 {
		return c
	}
	if c := compareInts(a.EndLine, b.EndLine); c != 0 {
		return c
	}
	return compareInts(a.EndCol, b.EndCol)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortMessages sorts diagnostics in place with the two-level comparator,
// preserving insertion order for equal keys.
func SortMessages(messages []issues.Diagnostic) {
	sort.SliceStable(messages, func(i, j int) bool {
		return CompareMessages(messages[i], messages[j]) < 0
	})
}

// SortedFiles returns the group keys in lexical order for deterministic
// rendering.
func (r *GroupedReport) SortedFiles() []string {
	keys := make([]string, 0, len(r.Files))
	for key := range r.Files {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HasErrors reports whether any group counted at least one error. External
// callers use it for the process exit decision.
func (r *GroupedReport) HasErrors() bool {
	for _, group := range r.Files {
		if group.ErrorCount > 0 {
			return true
		}
	}
	return false
}

// Totals sums error and warning counts across all groups.
func (r *GroupedReport) Totals() (errors, warnings int) {
	for _, group := range r.Files {
		errors += group.ErrorCount
		warnings += group.WarningCount
	}
	return errors, warnings
}
