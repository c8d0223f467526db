package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/pkg/token"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/shapes.hl"
	content := "fun area(r) => r * r"

	doc := store.Open(uri, content, 1)
	assert.Same(t, doc, store.Get(uri))
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/shapes.hl"
	old := store.Open(uri, "let x = 1", 1)

	require.True(t, store.Update(uri, "let x = 2", 2))
	doc := store.Get(uri)
	assert.Equal(t, "let x = 2", doc.Content)
	assert.Equal(t, 2, doc.Version)

	// Documents are snapshots.
	assert.Equal(t, "let x = 1", old.Content)

	assert.False(t, store.Update(uri, "let x = 0", 2), "same version")
	assert.False(t, store.Update(uri, "let x = 0", 1), "older version")
	assert.False(t, store.Update("file:///missing.hl", "x", 5), "not open")
	assert.Equal(t, "let x = 2", store.Get(uri).Content)
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///c.hl", "c", 1)
	store.Open("file:///a.hl", "a", 1)
	store.Open("file:///b.hl", "b", 1)

	assert.Equal(t, []string{"file:///a.hl", "file:///b.hl", "file:///c.hl"}, store.List())
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"a\nb\nc", []int{0, 2, 4}},
		{"\n\n\n", []int{0, 1, 2, 3}},
		{"line1\nline2\nline3", []int{0, 6, 12}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, computeLineOffsets(tt.content), "content %q", tt.content)
	}
}

func TestDocument_PositionToOffset(t *testing.T) {
	doc := newDocument("", "line0\nline1\nline2", 1)

	tests := []struct {
		name     string
		pos      Position
		expected int
	}{
		{"start", Position{Line: 0, Character: 0}, 0},
		{"middle", Position{Line: 0, Character: 3}, 3},
		{"line end", Position{Line: 0, Character: 5}, 5},
		{"second line", Position{Line: 1, Character: 0}, 6},
		{"second line middle", Position{Line: 1, Character: 4}, 10},
		{"last line end", Position{Line: 2, Character: 5}, 17},
		{"line beyond document", Position{Line: 100, Character: 0}, 17},
		{"character beyond line", Position{Line: 0, Character: 100}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, doc.PositionToOffset(tt.pos))
		})
	}
}

func TestDocument_OffsetToPosition(t *testing.T) {
	doc := newDocument("", "line0\nline1\nline2", 1)

	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{Line: 0, Character: 0}},
		{3, Position{Line: 0, Character: 3}},
		{5, Position{Line: 0, Character: 5}},
		{6, Position{Line: 1, Character: 0}},
		{10, Position{Line: 1, Character: 4}},
		{12, Position{Line: 2, Character: 0}},
		{17, Position{Line: 2, Character: 5}},
		{-1, Position{Line: 0, Character: 0}},
		{100, Position{Line: 2, Character: 5}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
	}
}

func TestDocument_UTF16Positions(t *testing.T) {
	doc := newDocument("", "let é = \"😀\"\nx", 1)

	tests := []struct {
		offset int
		pos    Position
	}{
		{6, Position{Line: 0, Character: 5}},   // after é
		{10, Position{Line: 0, Character: 9}},  // before the emoji
		{14, Position{Line: 0, Character: 11}}, // the emoji is a surrogate pair
		{16, Position{Line: 1, Character: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos), "position %v", tt.pos)
	}

	// A position inside a surrogate pair maps to the start of the rune.
	assert.Equal(t, 10, doc.PositionToOffset(Position{Line: 0, Character: 10}))
}

func TestDocument_SpanToRange(t *testing.T) {
	doc := newDocument("", "fun f()\n    x\n", 1)
	span := token.Span{
		Start: token.Position{Line: 2, Column: 5, Offset: 12},
		End:   token.Position{Line: 2, Column: 6, Offset: 13},
	}
	assert.Equal(t, Range{Start: Position{Line: 1, Character: 4}, End: Position{Line: 1, Character: 5}}, doc.SpanToRange(span))
}

func TestDocument_GetLine(t *testing.T) {
	doc := newDocument("", "first\nsecond\n\nfourth", 1)

	assert.Equal(t, "first", doc.GetLine(0))
	assert.Equal(t, "second", doc.GetLine(1))
	assert.Equal(t, "", doc.GetLine(2))
	assert.Equal(t, "fourth", doc.GetLine(3))
	assert.Equal(t, "", doc.GetLine(4))
	assert.Equal(t, "", doc.GetLine(-1))
}

func TestDocument_GetWordAtPosition(t *testing.T) {
	doc := newDocument("", "let total = base_price * 2", 1)

	word, rng := doc.GetWordAtPosition(Position{Line: 0, Character: 14})
	assert.Equal(t, "base_price", word)
	assert.Equal(t, Range{Start: Position{Character: 12}, End: Position{Character: 22}}, rng)

	word, _ = doc.GetWordAtPosition(Position{Line: 0, Character: 26})
	assert.Equal(t, "2", word)

	word, rng = doc.GetWordAtPosition(Position{Line: 0, Character: 10})
	assert.Equal(t, "", word)
	assert.Equal(t, Range{Start: Position{Character: 10}, End: Position{Character: 10}}, rng)
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/src/main.hl", URIToPath("file:///src/main.hl"))
	assert.Equal(t, "main.hl", URIToPath("main.hl"))
	assert.Equal(t, "file:///src/main.hl", PathToURI("/src/main.hl"))
	assert.Equal(t, "file:///src/main.hl", PathToURI("file:///src/main.hl"))
}

func TestRange(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 4}, End: Position{Line: 2, Character: 0}}

	assert.True(t, r.Contains(Position{Line: 1, Character: 4}))
	assert.True(t, r.Contains(Position{Line: 1, Character: 80}))
	assert.True(t, r.Contains(Position{Line: 2, Character: 0}))
	assert.False(t, r.Contains(Position{Line: 1, Character: 3}))
	assert.False(t, r.Contains(Position{Line: 2, Character: 1}))

	assert.True(t, r.Overlaps(Range{Start: Position{Line: 0}, End: Position{Line: 1, Character: 4}}))
	assert.False(t, r.Overlaps(Range{Start: Position{Line: 2, Character: 1}, End: Position{Line: 3}}))
}
