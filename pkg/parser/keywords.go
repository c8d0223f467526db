package parser

import "github.com/leapstack-labs/helios/pkg/token"

// Soft keywords are identifiers that have special meaning in specific contexts.
// They are not reserved words and can be used as identifiers elsewhere.
// Example: "get" introduces an accessor inside a field's accessor block but is
// an ordinary name in "let get = 1".
const (
	SoftKeywordGet = "get"
	SoftKeywordSet = "set"
)

// isSoft reports whether tok is the identifier word.
func isSoft(tok token.Token, word string) bool {
	return tok.Kind == token.IDENT && tok.Lexeme == word
}

// isAccessorStart reports whether tok begins an accessor.
func isAccessorStart(tok token.Token) bool {
	return isSoft(tok, SoftKeywordGet) || isSoft(tok, SoftKeywordSet)
}

// isVisibility reports whether k is a visibility modifier.
func isVisibility(k token.Kind) bool {
	return k == token.PUB || k == token.PUBLIC || k == token.INTERNAL
}
