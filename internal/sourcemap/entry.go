package sourcemap

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one decoded source-map tuple, aligned 1:1 with a bytecode
// instruction: byte range (Start, Length) in the source identified by
// FileIndex. FileIndex -1 marks compiler-generated code with no source
// origin. Jump and ModifierDepth are carried through from the compiler but
// play no part in resolution.
type Entry struct {
	Start         int
	Length        int
	FileIndex     int
	Jump          string
	ModifierDepth int
}

// FormatError reports a textual source-map entry that could not be parsed.
// It is local to the single location that carried the entry; callers must
// not let it abort sibling locations.
type FormatError struct {
	Entry  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed source map entry %q: %s", e.Entry, e.Reason)
}

// ParseEntry parses a textual "start:length:fileIndex" entry. Fields beyond
// the third are ignored; fewer than three fields or a non-numeric field is a
// FormatError.
func ParseEntry(entry string) (Entry, error) {
	fields := strings.Split(entry, ":")
	if len(fields) < 3 {
		return Entry{}, &FormatError{Entry: entry, Reason: "expected at least 3 fields"}
	}

	var parsed [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return Entry{}, &FormatError{Entry: entry, Reason: fmt.Sprintf("field %d is not a number", i)}
		}
		parsed[i] = n
	}

	return Entry{Start: parsed[0], Length: parsed[1], FileIndex: parsed[2]}, nil
}

// DecodeEntries decompresses a full compiler source map into its entry list.
// Entries are ";"-separated; inside an entry, empty ":"-fields inherit the
// value of the previous entry, so each decoded entry starts as a copy of its
// predecessor.
func DecodeEntries(compressed string) ([]Entry, error) {
	if compressed == "" {
		return nil, nil
	}

	raw := strings.Split(compressed, ";")
	entries := make([]Entry, 0, len(raw))
	var prev Entry

	for i, item := range raw {
		entry := prev
		for j, field := range strings.Split(item, ":") {
			if field == "" {
				continue
			}
			if j == 3 {
				entry.Jump = field
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("source map entry %d: field %d: %w", i, j, err)
			}
			switch j {
			case 0:
				entry.Start = n
			case 1:
				entry.Length = n
			case 2:
				entry.FileIndex = n
			case 4:
				entry.ModifierDepth = n
			}
		}
		entries = append(entries, entry)
		prev = entry
	}

	return entries, nil
}
