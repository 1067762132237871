package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineBreakIndexCountsTerminators(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LineBreakIndex
	}{
		{"empty file", "", LineBreakIndex{0}},
		{"no terminator", "a", LineBreakIndex{0}},
		{"trailing terminator", "a\n", LineBreakIndex{0, 2}},
		{"terminator mid file", "a\nb", LineBreakIndex{0, 2}},
		{"only terminators", "\n\n", LineBreakIndex{0, 1, 2}},
		{"multi line", "abc\ndefgh\n", LineBreakIndex{0, 4, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLineBreakIndex(tt.text))
		})
	}
}

func TestPositionAt(t *testing.T) {
	idx := NewLineBreakIndex("abc\ndefgh\n")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 0}},
		{3, Position{Line: 1, Column: 3}},
		{4, Position{Line: 2, Column: 0}},
		{9, Position{Line: 2, Column: 5}},
		{10, Position{Line: 3, Column: 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.PositionAt(tt.offset), "offset %d", tt.offset)
	}
}

// Every line start the builder reports must resolve back to column 0 on that
// line.
func TestLineStartsRoundTrip(t *testing.T) {
	text := "pragma solidity ^0.5.0;\ncontract Wallet {\n    uint[] ids;\n}\n"
	idx := NewLineBreakIndex(text)

	for i, offset := range idx {
		pos := idx.PositionAt(offset)
		assert.Equal(t, i+1, pos.Line)
		assert.Equal(t, 0, pos.Column)
	}
}

// Resolving a smaller offset never yields a greater (line, column) pair.
func TestPositionAtMonotonic(t *testing.T) {
	text := "one\ntwo lines\n\nfour\n"
	idx := NewLineBreakIndex(text)

	prev := idx.PositionAt(0)
	for offset := 1; offset <= len(text); offset++ {
		cur := idx.PositionAt(offset)
		if cur.Less(prev) {
			t.Fatalf("offset %d resolved to %+v, before %+v", offset, cur, prev)
		}
		prev = cur
	}
}

func TestRegistryReusesIndexes(t *testing.T) {
	registry := NewRegistry()

	first := registry.Index("wallet.sol", "a\nb\n")
	second := registry.Index("wallet.sol", "ignored on cache hit")

	require.Equal(t, first, second)
	assert.Equal(t, LineBreakIndex{0, 2, 4}, second)

	other := registry.Index("other.sol", "x")
	assert.Equal(t, LineBreakIndex{0}, other)
}
