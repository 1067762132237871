package sourcemap

import "sort"

// Resolution is the outcome of resolving one location: the line/column span,
// the index of the file it falls in (per the contract's source list), and the
// underlying source byte range. FileIndex is -1 and the byte range is zero
// when the span is the sentinel.
type Resolution struct {
	Span      Span
	FileIndex int
	ByteStart int
	ByteLen   int
}

func noResolution() Resolution {
	return Resolution{Span: NoLocation(), FileIndex: -1}
}

// Resolver converts bytecode offsets and textual source-map entries into
// line/column spans for one contract. All inputs are immutable after
// construction, so a Resolver is safe for concurrent use.
type Resolver struct {
	entries []Entry
	files   map[int]LineBreakIndex

	// offsets[i] is the byte offset of the i-th instruction in the runtime
	// bytecode, built once by a forward scan that decodes push-data widths.
	offsets []int
}

// NewResolver builds a resolver from the runtime bytecode, the decoded
// source-map entries aligned with its instructions, and a line-break index
// per referenced file index.
func NewResolver(bytecode []byte, entries []Entry, files map[int]LineBreakIndex) *Resolver {
	return &Resolver{
		entries: entries,
		files:   files,
		offsets: instructionOffsets(bytecode),
	}
}

// instructionOffsets scans the bytecode forward once and records the byte
// offset of every instruction. PUSH1..PUSH32 (0x60..0x7f) carry 1..32 bytes
// of immediate data, so they advance the instruction pointer by more than
// one byte.
func instructionOffsets(bytecode []byte) []int {
	offsets := make([]int, 0, len(bytecode))
	for pc := 0; pc < len(bytecode); {
		offsets = append(offsets, pc)
		op := bytecode[pc]
		if op >= 0x60 && op <= 0x7f {
			pc += int(op-0x5f) + 1
		} else {
			pc++
		}
	}
	return offsets
}

// ResolveOffset maps a bytecode offset to a source span. The offset must be
// the exact start of an instruction; anything else (mid-instruction offsets,
// offsets past the end of the bytecode, instructions without a source-map
// entry, generated code with file index -1) yields the sentinel resolution,
// never an error.
func (r *Resolver) ResolveOffset(offset int) Resolution {
	if offset < 0 {
		return noResolution()
	}
	i := sort.SearchInts(r.offsets, offset)
	if i >= len(r.offsets) || r.offsets[i] != offset {
		return noResolution()
	}
	if i >= len(r.entries) {
		return noResolution()
	}
	return r.resolveEntry(r.entries[i])
}

// ResolveEntry parses a textual "start:length:fileIndex" entry and resolves
// it to a source span. Malformed text returns a FormatError; an entry that
// references no known file resolves to the sentinel.
func (r *Resolver) ResolveEntry(entry string) (Resolution, error) {
	parsed, err := ParseEntry(entry)
	if err != nil {
		return noResolution(), err
	}
	return r.resolveEntry(parsed), nil
}

// resolveEntry is the single conversion routine both lookup paths funnel
// through.
func (r *Resolver) resolveEntry(entry Entry) Resolution {
	if entry.FileIndex < 0 {
		return noResolution()
	}
	idx, ok := r.files[entry.FileIndex]
	if !ok {
		return noResolution()
	}

	start := idx.PositionAt(entry.Start)
	end := idx.PositionAt(entry.Start + entry.Length)
	return Resolution{
		Span:      Span{Start: start, End: &end},
		FileIndex: entry.FileIndex,
		ByteStart: entry.Start,
		ByteLen:   entry.Length,
	}
}
