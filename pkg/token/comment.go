package token

import "strings"

// CommentKind distinguishes line, block and doc comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // // comment
	BlockComment                    // (* comment *)
	DocComment                      // /// comment
)

// Comment represents a source comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (//, ///, (* *))
	Span Span
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// IsDocComment returns true if this is a /// doc comment.
func (c *Comment) IsDocComment() bool {
	return c.Kind == DocComment
}

// DocText returns the comment text without the /// marker and one leading space.
func (c *Comment) DocText() string {
	text := strings.TrimPrefix(c.Text, "///")
	return strings.TrimPrefix(text, " ")
}
