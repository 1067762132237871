package report

import (
	"fmt"
	"strings"
)

// Formatter renders a grouped report in one output style. A formatter is
// resolved by name once at start-up and injected into whatever prints the
// report; the core never consults global state to pick one.
type Formatter interface {
	Render(report *GroupedReport) (string, error)
}

// Known style names.
const (
	StyleStylish = "stylish"
	StyleJSON    = "json"
	StyleCompact = "compact"
	StyleSARIF   = "sarif"
)

// Styles lists the known style names in display order.
func Styles() []string {
	return []string{StyleStylish, StyleJSON, StyleCompact, StyleSARIF}
}

// NewFormatter resolves a style name to its formatter. An empty name selects
// the default stylish table.
func NewFormatter(style string) (Formatter, error) {
	switch style {
	case "", StyleStylish:
		return &StylishFormatter{}, nil
	case StyleJSON:
		return &JSONFormatter{}, nil
	case StyleCompact:
		return &CompactFormatter{}, nil
	case StyleSARIF:
		return &SARIFFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown report style %q (known styles: %s)", style, strings.Join(Styles(), ", "))
	}
}
