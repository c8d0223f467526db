package ast

import "github.com/leapstack-labs/helios/pkg/token"

// BindingPattern binds the matched value to Name.
type BindingPattern struct {
	NodeInfo
	Name *Ident
}

// LiteralPattern matches a literal value. Negative is set for -N.
type LiteralPattern struct {
	NodeInfo
	Negative bool
	Kind     token.Kind
	Raw      string
	Value    string
}

// WildcardPattern is _.
type WildcardPattern struct {
	NodeInfo
}

// EnumCasePattern matches an enum case, optionally destructuring its payload.
type EnumCasePattern struct {
	NodeInfo
	Path   *Path
	Parens bool // written with a parenthesized argument list
	Args   []Pattern
}

// BadPattern stands in for a pattern that could not be parsed.
type BadPattern struct {
	NodeInfo
}

func (*BindingPattern) patternNode()  {}
func (*LiteralPattern) patternNode()  {}
func (*WildcardPattern) patternNode() {}
func (*EnumCasePattern) patternNode() {}
func (*BadPattern) patternNode()      {}
