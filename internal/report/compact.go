package report

import (
	"fmt"
	"strings"

	"github.com/solscan-io/solscan/internal/issues"
)

// CompactFormatter renders one line per message:
// path:line:column: severity message [rule].
type CompactFormatter struct{}

func (f *CompactFormatter) Render(report *GroupedReport) (string, error) {
	var b strings.Builder
	for _, name := range report.SortedFiles() {
		group := report.Files[name]
		for _, m := range group.Messages {
			fmt.Fprintf(&b, "%s:%d:%d: %s %s [%s]\n",
				group.FilePath, m.Line, m.Column,
				compactSeverity(m.Severity), m.Message, m.RuleID)
		}
	}
	return b.String(), nil
}

func compactSeverity(s issues.Severity) string {
	switch s {
	case issues.SeverityHigh:
		return "error"
	case issues.SeverityMedium, issues.SeverityLow:
		return "warning"
	default:
		return "info"
	}
}
