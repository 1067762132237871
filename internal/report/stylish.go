package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/solscan-io/solscan/internal/issues"
)

// StylishFormatter renders the default human-readable table: one block per
// file, one row per message, and a colored problem summary.
type StylishFormatter struct{}

func (f *StylishFormatter) Render(report *GroupedReport) (string, error) {
	underline := color.New(color.Underline)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	var b strings.Builder
	for _, name := range report.SortedFiles() {
		group := report.Files[name]
		b.WriteString(underline.Sprint(group.FilePath))
		b.WriteByte('\n')

		for _, m := range group.Messages {
			pos := "-"
			if m.Line >= 0 {
				pos = fmt.Sprintf("%d:%d", m.Line, m.Column)
			}
			fmt.Fprintf(&b, "  %-9s %-8s %s  %s\n",
				gray.Sprint(pos),
				severityLabel(m.Severity, red, yellow, gray),
				m.Message,
				gray.Sprint(m.RuleID))
		}
		b.WriteByte('\n')
	}

	errCount, warnCount := report.Totals()
	total := errCount + warnCount
	switch {
	case total == 0:
		b.WriteString(green.Sprint("✔ no problems found"))
	case errCount > 0:
		b.WriteString(red.Sprint(summaryLine(total, errCount, warnCount)))
	default:
		b.WriteString(yellow.Sprint(summaryLine(total, errCount, warnCount)))
	}
	b.WriteByte('\n')

	return b.String(), nil
}

func severityLabel(s issues.Severity, red, yellow, gray *color.Color) string {
	switch s {
	case issues.SeverityHigh:
		return red.Sprint("error")
	case issues.SeverityMedium, issues.SeverityLow:
		return yellow.Sprint("warning")
	default:
		return gray.Sprint("info")
	}
}

func summaryLine(total, errCount, warnCount int) string {
	return fmt.Sprintf("✖ %d problem%s (%d error%s, %d warning%s)",
		total, plural(total),
		errCount, plural(errCount),
		warnCount, plural(warnCount))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
