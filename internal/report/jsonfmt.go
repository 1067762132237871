package report

import "encoding/json"

// JSONFormatter renders the report as an ordered array of file aggregates,
// suitable for machine consumption and for replay by the render command.
type JSONFormatter struct{}

func (f *JSONFormatter) Render(report *GroupedReport) (string, error) {
	ordered := make([]*FileReport, 0, len(report.Files))
	for _, name := range report.SortedFiles() {
		ordered = append(ordered, report.Files[name])
	}

	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
