package ast

// NamedType is a possibly qualified, possibly generic type name.
type NamedType struct {
	NodeInfo
	Path *Path
	Args []TypeExpr
}

// ArrayType is [Elem].
type ArrayType struct {
	NodeInfo
	Elem TypeExpr
}

// FuncType is Param -> Result. The arrow is right-associative.
type FuncType struct {
	NodeInfo
	Param  TypeExpr
	Result TypeExpr
}

// TupleType is (A, B). The unit type () has no elements and a one-element
// tuple is written (A,).
type TupleType struct {
	NodeInfo
	Elems []TypeExpr
}

// BadType stands in for a type that could not be parsed.
type BadType struct {
	NodeInfo
}

func (*NamedType) typeNode() {}
func (*ArrayType) typeNode() {}
func (*FuncType) typeNode()  {}
func (*TupleType) typeNode() {}
func (*BadType) typeNode()   {}
