package sourcemap

// Position is a point in source text: 1-based line, 0-based column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Less reports whether p orders strictly before q under (line, column).
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Span marks the inclusive start and exclusive end of a diagnostic's source
// range. End is nil when the range could not be resolved; an entirely
// unresolvable span carries the sentinel start line -1.
type Span struct {
	Start Position  `json:"start"`
	End   *Position `json:"end,omitempty"`
}

// NoLocation is the sentinel span for offsets that map to no source text:
// out-of-range offsets, compiler-generated code, or lookups that miss an
// instruction boundary.
func NoLocation() Span {
	return Span{Start: Position{Line: -1, Column: 0}}
}

// Located reports whether the span points at real source text.
func (s Span) Located() bool {
	return s.Start.Line >= 0
}
