package sourcemap

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LineBreakIndex holds the ascending byte offsets at which each line of a
// single source file begins. Offset 0 is always present; a file with k line
// terminators yields k+1 entries. The index is immutable once built and is
// only meaningful against the file it was built from.
type LineBreakIndex []int

// NewLineBreakIndex scans the raw source text once and records the start
// offset of every line.
func NewLineBreakIndex(text string) LineBreakIndex {
	offsets := make(LineBreakIndex, 1, 64)
	offsets[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// PositionAt converts a byte offset into a 1-based line and 0-based column.
// The line is the greatest entry whose start offset is <= offset.
func (idx LineBreakIndex) PositionAt(offset int) Position {
	line := sort.SearchInts(idx, offset+1) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line + 1, Column: offset - idx[line]}
}

// Lines returns the number of lines the index covers.
func (idx LineBreakIndex) Lines() int {
	return len(idx)
}

const defaultRegistrySize = 128

// Registry caches line-break indexes per file name so that contracts
// referencing the same source do not rebuild the index. Safe for concurrent
// use; the underlying cache is bounded.
type Registry struct {
	cache *lru.Cache[string, LineBreakIndex]
}

// NewRegistry creates a registry with the default cache size.
func NewRegistry() *Registry {
	cache, err := lru.New[string, LineBreakIndex](defaultRegistrySize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Registry{cache: cache}
}

// Index returns the cached index for filename, building it from text on a
// cache miss.
func (r *Registry) Index(filename, text string) LineBreakIndex {
	if idx, ok := r.cache.Get(filename); ok {
		return idx
	}
	idx := NewLineBreakIndex(text)
	r.cache.Add(filename, idx)
	return idx
}
