// Package ast declares the syntax tree produced by the Helios parser.
//
// The node set is closed: the category interfaces carry unexported marker
// methods, so only this package can add variants. Nodes form a plain tree in
// which every parent exclusively owns its children.
package ast

import "github.com/leapstack-labs/helios/pkg/token"

// Node is any syntax tree node.
type Node interface {
	GetSpan() token.Span
	node()
}

// Item is a top-level or block-level element: a declaration or an expression.
type Item interface {
	Node
	itemNode()
}

// Decl is a declaration.
type Decl interface {
	Item
	declNode()
}

// Expr is an expression.
type Expr interface {
	Item
	exprNode()
}

// Pattern appears in bindings, for loops and match cases.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a type annotation.
type TypeExpr interface {
	Node
	typeNode()
}

// TypeDef is the right-hand side of a type declaration.
type TypeDef interface {
	Node
	typeDefNode()
}

// NodeInfo provides the source span common to all nodes.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

func (*NodeInfo) node() {}

// File is the root of a parsed source unit.
type File struct {
	NodeInfo
	URI   string
	Items []Item
}

// Decls returns the top-level declarations in source order.
func (f *File) Decls() []Decl {
	var out []Decl
	for _, it := range f.Items {
		if d, ok := it.(Decl); ok {
			out = append(out, d)
		}
	}
	return out
}

// Ident is a name. It is also an expression.
type Ident struct {
	NodeInfo
	Name string
}

// Path is a dot-separated name such as std.io.File.
type Path struct {
	NodeInfo
	Parts []*Ident
}

// String returns the path joined with dots.
func (p *Path) String() string {
	s := ""
	for i, id := range p.Parts {
		if i > 0 {
			s += "."
		}
		s += id.Name
	}
	return s
}

// Last returns the final path segment.
func (p *Path) Last() *Ident {
	if len(p.Parts) == 0 {
		return nil
	}
	return p.Parts[len(p.Parts)-1]
}

// Visibility is a declaration's access level.
type Visibility int

// Visibility levels. Private is the default when no modifier is written.
const (
	Private Visibility = iota
	Pub
	Public
	Internal
)

func (v Visibility) String() string {
	switch v {
	case Pub:
		return "pub"
	case Public:
		return "public"
	case Internal:
		return "internal"
	}
	return "private"
}
