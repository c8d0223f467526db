// Package token defines the token kinds, keyword table and source positions
// for the Helios language.
//
// The keyword table is fixed for a given KeywordTableVersion. Changing the
// language surface means editing the table and the grammar productions that
// branch on it, never the scanner or parser algorithms.
package token

import "fmt"

// KeywordTableVersion identifies the revision of the reserved-word table.
const KeywordTableVersion = 3

// Kind represents the kind of a lexical token.
type Kind int32

//nolint:revive // ALL_CAPS kind names follow the token naming used across the parser
const (
	// Special tokens
	EOF Kind = iota
	ILLEGAL

	// Layout
	NEWLINE
	INDENT
	OUTDENT

	// Literals
	IDENT
	INT
	FLOAT
	CHAR
	STRING        // "static"
	RAW_STRING    // r"raw"
	FSTRING_START // f"text{   or f"text when there is no hole
	FSTRING_MID   // }text{
	FSTRING_END   // }text"  or "

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	EQ       // ==
	NE       // !=
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
	BANG     // !
	AND      // &&
	OR       // ||
	ASSIGN   // =
	FATARROW // =>
	ARROW    // ->

	// Punctuation
	COLON    // :
	COMMA    // ,
	SEMI     // ;
	DOT      // .
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }

	// Keywords (alphabetical)
	keywordStart
	AS
	CASE
	DEF
	ELSE
	ENUM
	FALSE
	FOR
	FUN
	IF
	IMPORT
	IN
	INTERNAL
	LET
	MATCH
	MODULE
	PUB
	PUBLIC
	STRUCT
	THEN
	TRUE
	TYPE
	USING
	VAR
	WHILE
	keywordEnd

	kindCount
)

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		if name := kindNames[k]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("TOKEN(%d)", k)
}

// kindNames maps token kinds to their string representations.
var kindNames = [...]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	NEWLINE: "NEWLINE",
	INDENT:  "INDENT",
	OUTDENT: "OUTDENT",

	IDENT:         "IDENT",
	INT:           "INT",
	FLOAT:         "FLOAT",
	CHAR:          "CHAR",
	STRING:        "STRING",
	RAW_STRING:    "RAW_STRING",
	FSTRING_START: "FSTRING_START",
	FSTRING_MID:   "FSTRING_MID",
	FSTRING_END:   "FSTRING_END",

	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	EQ:       "==",
	NE:       "!=",
	LT:       "<",
	LE:       "<=",
	GT:       ">",
	GE:       ">=",
	BANG:     "!",
	AND:      "&&",
	OR:       "||",
	ASSIGN:   "=",
	FATARROW: "=>",
	ARROW:    "->",

	COLON:    ":",
	COMMA:    ",",
	SEMI:     ";",
	DOT:      ".",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",

	AS:       "as",
	CASE:     "case",
	DEF:      "def",
	ELSE:     "else",
	ENUM:     "enum",
	FALSE:    "false",
	FOR:      "for",
	FUN:      "fun",
	IF:       "if",
	IMPORT:   "import",
	IN:       "in",
	INTERNAL: "internal",
	LET:      "let",
	MATCH:    "match",
	MODULE:   "module",
	PUB:      "pub",
	PUBLIC:   "public",
	STRUCT:   "struct",
	THEN:     "then",
	TRUE:     "true",
	TYPE:     "type",
	USING:    "using",
	VAR:      "var",
	WHILE:    "while",

	keywordStart: "",
	keywordEnd:   "",
}

// keywords maps keyword strings to their token kinds. Built once at init and
// only read afterwards, so lookups are safe from any goroutine.
var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordStart)
	for k := keywordStart + 1; k < keywordEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

// Lookup returns the token kind for the given identifier.
// If the identifier is a keyword, the keyword kind is returned.
// Otherwise, IDENT is returned. Keywords are case-sensitive.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// Keywords returns the reserved words in table order.
func Keywords() []string {
	out := make([]string, 0, keywordEnd-keywordStart-1)
	for k := keywordStart + 1; k < keywordEnd; k++ {
		out = append(out, kindNames[k])
	}
	return out
}

// IsKeyword returns true if the token kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsOperator returns true if the token kind is an operator or punctuation.
func (k Kind) IsOperator() bool {
	return k >= PLUS && k <= RBRACE
}

// IsLiteral returns true for literal kinds, including interpolation pieces.
func (k Kind) IsLiteral() bool {
	return k >= INT && k <= FSTRING_END
}

// IsLayout returns true for NEWLINE, INDENT and OUTDENT.
func (k Kind) IsLayout() bool {
	return k == NEWLINE || k == INDENT || k == OUTDENT
}

// Operator precedence levels. All binary operators are left-associative.
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceEquality
	PrecedenceComparison
	PrecedenceAddition
	PrecedenceMultiply
)

// Precedence returns the precedence of k as a binary operator, or
// PrecedenceNone if k is not one.
func (k Kind) Precedence() int {
	switch k {
	case OR:
		return PrecedenceOr
	case AND:
		return PrecedenceAnd
	case EQ, NE:
		return PrecedenceEquality
	case LT, LE, GT, GE:
		return PrecedenceComparison
	case PLUS, MINUS:
		return PrecedenceAddition
	case STAR, SLASH, PERCENT:
		return PrecedenceMultiply
	}
	return PrecedenceNone
}

// StartsDecl returns true for kinds that can begin a declaration.
func (k Kind) StartsDecl() bool {
	switch k {
	case FUN, DEF, MODULE, TYPE, USING, IMPORT, PUB, PUBLIC, INTERNAL:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
type Token struct {
	Kind   Kind
	Lexeme string     // raw source text
	Value  string     // decoded value for literals
	Span   Span       // source range; zero-width only for EOF, OUTDENT and synthetic recovery tokens
	Doc    []*Comment // doc comments immediately preceding the token
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return t.Span.Start
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Describe returns a short description of the token for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case NEWLINE:
		return "newline"
	case INDENT:
		return "indent"
	case OUTDENT:
		return "dedent"
	case IDENT:
		return fmt.Sprintf("identifier `%s`", t.Lexeme)
	case INT, FLOAT, CHAR, STRING, RAW_STRING:
		return fmt.Sprintf("literal `%s`", t.Lexeme)
	case FSTRING_START, FSTRING_MID, FSTRING_END:
		return "interpolated string"
	case ILLEGAL:
		return fmt.Sprintf("invalid token `%s`", t.Lexeme)
	}
	if t.Kind.IsKeyword() {
		return fmt.Sprintf("keyword `%s`", t.Kind)
	}
	return fmt.Sprintf("`%s`", t.Kind)
}
