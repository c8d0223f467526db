package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"fun", FUN},
		{"def", DEF},
		{"match", MATCH},
		{"internal", INTERNAL},
		{"true", TRUE},
		{"Fun", IDENT},
		{"get", IDENT},
		{"begin", IDENT},
		{"_", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.ident))
		})
	}
}

func TestKeywords(t *testing.T) {
	kws := Keywords()
	assert.Len(t, kws, 24)
	assert.Equal(t, "as", kws[0])
	for _, kw := range kws {
		assert.True(t, Lookup(kw).IsKeyword(), kw)
		assert.Equal(t, kw, Lookup(kw).String())
	}
}

func TestKind_Classes(t *testing.T) {
	assert.True(t, PLUS.IsOperator())
	assert.True(t, RBRACE.IsOperator())
	assert.False(t, FUN.IsOperator())
	assert.True(t, FSTRING_MID.IsLiteral())
	assert.False(t, IDENT.IsLiteral())
	assert.True(t, OUTDENT.IsLayout())
	assert.False(t, EOF.IsLayout())
	assert.True(t, PUB.StartsDecl())
	assert.False(t, LET.StartsDecl())
	assert.Equal(t, "TOKEN(9999)", Kind(9999).String())
}

func TestKind_Precedence(t *testing.T) {
	assert.Less(t, OR.Precedence(), AND.Precedence())
	assert.Less(t, AND.Precedence(), EQ.Precedence())
	assert.Less(t, NE.Precedence(), LT.Precedence())
	assert.Less(t, GE.Precedence(), PLUS.Precedence())
	assert.Less(t, MINUS.Precedence(), STAR.Precedence())
	assert.Equal(t, PERCENT.Precedence(), SLASH.Precedence())
	assert.Equal(t, PrecedenceNone, ASSIGN.Precedence())
	assert.Equal(t, PrecedenceNone, BANG.Precedence())
}

func TestToken_Describe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: EOF}, "end of file"},
		{Token{Kind: IDENT, Lexeme: "x"}, "identifier `x`"},
		{Token{Kind: INT, Lexeme: "42"}, "literal `42`"},
		{Token{Kind: FUN, Lexeme: "fun"}, "keyword `fun`"},
		{Token{Kind: LPAREN, Lexeme: "("}, "`(`"},
		{Token{Kind: OUTDENT}, "dedent"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tok.Describe())
	}
}

func TestSpan(t *testing.T) {
	a := Span{Start: Position{Line: 1, Column: 1, Offset: 0}, End: Position{Line: 1, Column: 4, Offset: 3}}
	b := Span{Start: Position{Line: 1, Column: 6, Offset: 5}, End: Position{Line: 2, Column: 2, Offset: 9}}

	assert.True(t, a.Contains(0))
	assert.False(t, a.Contains(3))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, Span{Start: a.Start, End: b.End}, a.To(b))
	assert.Equal(t, a, a.To(Span{}))
	assert.Equal(t, b, Span{}.To(b))
	assert.Equal(t, "1:1-1:4", a.String())
	assert.Equal(t, "-", Position{}.String())
}

func TestComment_DocText(t *testing.T) {
	c := &Comment{Kind: DocComment, Text: "/// Returns the area."}
	assert.True(t, c.IsDocComment())
	assert.Equal(t, "Returns the area.", c.DocText())
	assert.Equal(t, "", (&Comment{Text: "///"}).DocText())
}
