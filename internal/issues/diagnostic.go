package issues

import (
	"encoding/json"
	"fmt"
)

// Severity classifies a finding as reported by the analysis service. The
// internal Info level absorbs anything the service emits that the fixed
// mapping table does not recognize; Info findings stay in reports but are
// excluded from error/warning counts.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

var severityNames = map[Severity]string{
	SeverityInfo:   "Info",
	SeverityLow:    "Low",
	SeverityMedium: "Medium",
	SeverityHigh:   "High",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalJSON emits the severity name rather than the numeric value.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a severity name; unknown names become Info.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = ParseSeverity(name)
	return nil
}

// ParseSeverity maps a service severity string through the fixed table.
// Anything unrecognized is informational.
func ParseSeverity(v string) Severity {
	switch v {
	case "High":
		return SeverityHigh
	case "Medium":
		return SeverityMedium
	case "Low":
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// Counted reports whether the severity participates in error/warning counts.
func (s Severity) Counted() bool {
	return s != SeverityInfo
}

// Source formats the normalizer understands. The bytecode format locates
// findings by instruction address in the deployed bytecode; any source-level
// format locates them by textual source-map entry.
const (
	FormatBytecode = "evm-byzantium-bytecode"
	FormatText     = "text"
)

// Description is the two-part issue text emitted by the analysis service.
type Description struct {
	Head string `json:"head"`
	Tail string `json:"tail"`
}

// Location points at the code a finding concerns: a textual source-map
// entry, or a raw bytecode address for bytecode-format batches.
type Location struct {
	SourceMap string `json:"sourceMap,omitempty"`
	Address   *int   `json:"address,omitempty"`
}

// RawDiagnostic is one issue exactly as emitted by the analysis service.
// Read-only input to the normalizer.
type RawDiagnostic struct {
	Description Description `json:"description"`
	Locations   []Location  `json:"locations"`
	Severity    string      `json:"severity"`
	SwcID       string      `json:"swcID"`
	SwcTitle    string      `json:"swcTitle"`
}

// Batch is one analysis response: the raw issues plus the tags describing
// what their locations are relative to.
type Batch struct {
	Issues       []RawDiagnostic `json:"issues"`
	SourceFormat string          `json:"sourceFormat"`
	SourceType   string          `json:"sourceType"`
	SourceList   []string        `json:"sourceList"`
}

// Diagnostic is the canonical, resolved form of one finding, ready for
// grouping and rendering. Line -1 marks a finding whose location could not
// be resolved; such findings are kept, not dropped. Fatal is reserved for a
// parse-failure class the pipeline does not currently produce.
type Diagnostic struct {
	RuleID   string   `json:"ruleId"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	EndLine  int      `json:"endLine,omitempty"`
	EndCol   int      `json:"endCol,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Fatal    bool     `json:"fatal"`
	FilePath string   `json:"filePath"`
}
