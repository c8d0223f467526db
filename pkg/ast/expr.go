package ast

import "github.com/leapstack-labs/helios/pkg/token"

// BindingExpr is let/var Pattern [: Type] = Value.
type BindingExpr struct {
	NodeInfo
	Mutable bool // var
	Pattern Pattern
	Type    TypeExpr
	Value   Expr
}

// BlockExpr is a sequence of items. Tail is the final expression when the
// block ends with one not followed by ';'.
type BlockExpr struct {
	NodeInfo
	Braced bool
	Stmts  []Item
	Tail   Expr
}

// IfExpr is if Cond then/Block [else ...]. Else is nil when absent.
type IfExpr struct {
	NodeInfo
	Cond        Expr
	Then        Expr // *BlockExpr unless ThenKeyword
	ThenKeyword bool
	Else        Expr // nil, *IfExpr, *BlockExpr or any expression
}

// ForExpr is for Pattern in Iter Block.
type ForExpr struct {
	NodeInfo
	Pattern Pattern
	Iter    Expr
	Body    *BlockExpr
}

// WhileExpr is while Cond Block.
type WhileExpr struct {
	NodeInfo
	Cond Expr
	Body *BlockExpr
}

// MatchExpr is match Subject followed by a block of cases.
type MatchExpr struct {
	NodeInfo
	Subject Expr
	Braced  bool
	Cases   []*CaseClause
}

// CaseClause is one match arm.
type CaseClause struct {
	NodeInfo
	Keyword   bool // written with the case keyword
	Pattern   Pattern
	Guard     Expr // nil when absent
	Body      Expr
	BlockBody bool // -> Block rather than => Expr
}

// BinaryExpr is Left Op Right.
type BinaryExpr struct {
	NodeInfo
	Op    token.Kind
	Left  Expr
	Right Expr
}

// UnaryExpr is a prefix operator applied to X.
type UnaryExpr struct {
	NodeInfo
	Op token.Kind
	X  Expr
}

// LiteralExpr is a number, character, string or boolean literal.
type LiteralExpr struct {
	NodeInfo
	Kind  token.Kind // INT, FLOAT, CHAR, STRING, RAW_STRING, TRUE or FALSE
	Raw   string     // source text
	Value string     // decoded value
}

// InterpolatedExpr is f"text{hole}text". Texts has one more element than
// Holes; Texts[i] precedes Holes[i].
type InterpolatedExpr struct {
	NodeInfo
	Texts  []string // raw source text of each literal segment
	Values []string // decoded literal segments
	Holes  []Expr
}

// CallExpr is Fun(Args).
type CallExpr struct {
	NodeInfo
	Fun  Expr
	Args []Expr
}

// MemberExpr is X.Name.
type MemberExpr struct {
	NodeInfo
	X    Expr
	Name *Ident
}

// GroupExpr is a parenthesized expression.
type GroupExpr struct {
	NodeInfo
	X Expr
}

// TupleExpr is (a, b). The unit value () has no elements and a one-element
// tuple is written (a,).
type TupleExpr struct {
	NodeInfo
	Elems []Expr
}

// ArrayExpr is [a, b].
type ArrayExpr struct {
	NodeInfo
	Elems []Expr
}

// BadExpr stands in for an expression that could not be parsed.
type BadExpr struct {
	NodeInfo
}

func (*BindingExpr) itemNode()      {}
func (*BlockExpr) itemNode()        {}
func (*IfExpr) itemNode()           {}
func (*ForExpr) itemNode()          {}
func (*WhileExpr) itemNode()        {}
func (*MatchExpr) itemNode()        {}
func (*BinaryExpr) itemNode()       {}
func (*UnaryExpr) itemNode()        {}
func (*LiteralExpr) itemNode()      {}
func (*InterpolatedExpr) itemNode() {}
func (*Ident) itemNode()            {}
func (*CallExpr) itemNode()         {}
func (*MemberExpr) itemNode()       {}
func (*GroupExpr) itemNode()        {}
func (*TupleExpr) itemNode()        {}
func (*ArrayExpr) itemNode()        {}
func (*BadExpr) itemNode()          {}

func (*BindingExpr) exprNode()      {}
func (*BlockExpr) exprNode()        {}
func (*IfExpr) exprNode()           {}
func (*ForExpr) exprNode()          {}
func (*WhileExpr) exprNode()        {}
func (*MatchExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*UnaryExpr) exprNode()        {}
func (*LiteralExpr) exprNode()      {}
func (*InterpolatedExpr) exprNode() {}
func (*Ident) exprNode()            {}
func (*CallExpr) exprNode()         {}
func (*MemberExpr) exprNode()       {}
func (*GroupExpr) exprNode()        {}
func (*TupleExpr) exprNode()        {}
func (*ArrayExpr) exprNode()        {}
func (*BadExpr) exprNode()          {}
