package report

import (
	"bytes"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/solscan-io/solscan/internal/issues"
)

const (
	toolName = "solscan"
	toolURI  = "https://github.com/solscan-io/solscan"
)

// SARIFFormatter renders the report as a SARIF 2.1.0 document with one run.
type SARIFFormatter struct{}

func (f *SARIFFormatter) Render(report *GroupedReport) (string, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return "", err
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	seenRules := map[string]bool{}

	for _, name := range report.SortedFiles() {
		group := report.Files[name]
		run.AddDistinctArtifact(group.FilePath)

		for _, m := range group.Messages {
			if m.RuleID != "" && !seenRules[m.RuleID] {
				run.AddRule(m.RuleID)
				seenRules[m.RuleID] = true
			}

			physical := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(group.FilePath))
			// Unlocated findings keep the artifact location but no region.
			if m.Line >= 1 {
				region := sarif.NewRegion().
					WithStartLine(m.Line).
					WithStartColumn(m.Column + 1)
				if m.EndLine >= 1 {
					region = region.
						WithEndLine(m.EndLine).
						WithEndColumn(m.EndCol + 1)
				}
				physical = physical.WithRegion(region)
			}

			run.CreateResultForRule(m.RuleID).
				WithLevel(sarifLevel(m.Severity)).
				WithMessage(sarif.NewTextMessage(m.Message)).
				AddLocation(sarif.NewLocationWithPhysicalLocation(physical))
		}
	}

	doc.AddRun(run)

	var buf bytes.Buffer
	if err := doc.PrettyWrite(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sarifLevel(s issues.Severity) string {
	switch s {
	case issues.SeverityHigh:
		return "error"
	case issues.SeverityMedium, issues.SeverityLow:
		return "warning"
	default:
		return "note"
	}
}
