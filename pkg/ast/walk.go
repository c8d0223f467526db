package ast

import "fmt"

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a tree in depth-first source order.
// It panics on a node type it does not know.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		walkItems(n.Items, v)

	// Declarations
	case *FunDecl:
		walkIdent(n.Name, v)
		if n.Generics != nil {
			Walk(n.Generics, v)
		}
		if n.Params != nil {
			Walk(n.Params, v)
		}
		walkType(n.Result, v)
		walkExpr(n.Body, v)

	case *GenericList:
		for _, p := range n.Params {
			Walk(p, v)
		}

	case *GenericParam:
		walkIdent(n.Name, v)
		walkTypes(n.Bounds, v)

	case *ParamList:
		for _, p := range n.Params {
			Walk(p, v)
		}

	case *Param:
		walkIdent(n.Name, v)
		walkType(n.Type, v)

	case *ModuleDecl:
		walkPath(n.Path, v)
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *DeclBlock:
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *TypeDecl:
		walkIdent(n.Name, v)
		if n.Generics != nil {
			Walk(n.Generics, v)
		}
		if n.Def != nil {
			Walk(n.Def, v)
		}

	case *AliasDef:
		walkType(n.Type, v)

	case *EnumDef:
		for _, c := range n.Cases {
			Walk(c, v)
		}

	case *EnumCase:
		walkIdent(n.Name, v)
		walkTypes(n.Fields, v)

	case *StructDef:
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *Field:
		walkIdent(n.Name, v)
		walkType(n.Type, v)
		walkExpr(n.Default, v)
		if n.Accessors != nil {
			Walk(n.Accessors, v)
		}

	case *AccessorBlock:
		for _, a := range n.Accessors {
			Walk(a, v)
		}

	case *Accessor:
		walkIdent(n.Param, v)
		walkExpr(n.Body, v)

	case *UsingDecl:
		walkPath(n.Path, v)
		walkIdent(n.Alias, v)
		for _, m := range n.Members {
			Walk(m, v)
		}

	case *ImportMember:
		walkIdent(n.Name, v)
		walkIdent(n.Alias, v)

	// Expressions
	case *BindingExpr:
		walkPattern(n.Pattern, v)
		walkType(n.Type, v)
		walkExpr(n.Value, v)

	case *BlockExpr:
		walkItems(n.Stmts, v)
		walkExpr(n.Tail, v)

	case *IfExpr:
		walkExpr(n.Cond, v)
		walkExpr(n.Then, v)
		walkExpr(n.Else, v)

	case *ForExpr:
		walkPattern(n.Pattern, v)
		walkExpr(n.Iter, v)
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *WhileExpr:
		walkExpr(n.Cond, v)
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *MatchExpr:
		walkExpr(n.Subject, v)
		for _, c := range n.Cases {
			Walk(c, v)
		}

	case *CaseClause:
		walkPattern(n.Pattern, v)
		walkExpr(n.Guard, v)
		walkExpr(n.Body, v)

	case *BinaryExpr:
		walkExpr(n.Left, v)
		walkExpr(n.Right, v)

	case *UnaryExpr:
		walkExpr(n.X, v)

	case *InterpolatedExpr:
		walkExprs(n.Holes, v)

	case *CallExpr:
		walkExpr(n.Fun, v)
		walkExprs(n.Args, v)

	case *MemberExpr:
		walkExpr(n.X, v)
		walkIdent(n.Name, v)

	case *GroupExpr:
		walkExpr(n.X, v)

	case *TupleExpr:
		walkExprs(n.Elems, v)

	case *ArrayExpr:
		walkExprs(n.Elems, v)

	// Patterns
	case *BindingPattern:
		walkIdent(n.Name, v)

	case *EnumCasePattern:
		walkPath(n.Path, v)
		for _, a := range n.Args {
			walkPattern(a, v)
		}

	// Types
	case *NamedType:
		walkPath(n.Path, v)
		walkTypes(n.Args, v)

	case *ArrayType:
		walkType(n.Elem, v)

	case *FuncType:
		walkType(n.Param, v)
		walkType(n.Result, v)

	case *TupleType:
		walkTypes(n.Elems, v)

	case *Path:
		for _, id := range n.Parts {
			Walk(id, v)
		}

	// Leaves
	case *Ident, *LiteralExpr, *LiteralPattern, *WildcardPattern,
		*BadDecl, *BadExpr, *BadPattern, *BadType:

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
}

// Inspect traverses a tree and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

func walkItems(items []Item, v Visitor) {
	for _, it := range items {
		if it != nil {
			Walk(it, v)
		}
	}
}

func walkExprs(exprs []Expr, v Visitor) {
	for _, e := range exprs {
		walkExpr(e, v)
	}
}

func walkTypes(types []TypeExpr, v Visitor) {
	for _, t := range types {
		walkType(t, v)
	}
}

func walkExpr(e Expr, v Visitor) {
	if e != nil {
		Walk(e, v)
	}
}

func walkType(t TypeExpr, v Visitor) {
	if t != nil {
		Walk(t, v)
	}
}

func walkPattern(p Pattern, v Visitor) {
	if p != nil {
		Walk(p, v)
	}
}

func walkIdent(id *Ident, v Visitor) {
	if id != nil {
		Walk(id, v)
	}
}

func walkPath(p *Path, v Visitor) {
	if p != nil {
		Walk(p, v)
	}
}
