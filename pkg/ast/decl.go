package ast

import "github.com/leapstack-labs/helios/pkg/token"

// FunDecl is a function declaration introduced by fun or def.
type FunDecl struct {
	NodeInfo
	Doc        []*token.Comment
	Visibility Visibility
	Def        bool // declared with def rather than fun
	Name       *Ident
	Generics   *GenericList // nil when absent
	Params     *ParamList
	Result     TypeExpr // nil when absent
	Body       Expr     // *BlockExpr unless ExprBody
	ExprBody   bool     // body written as => Expr
}

// GenericList is <T, U: Bound + Other>.
type GenericList struct {
	NodeInfo
	Params []*GenericParam
}

// GenericParam is one generic parameter with optional bounds.
type GenericParam struct {
	NodeInfo
	Name   *Ident
	Bounds []TypeExpr
}

// ParamList is a parenthesized parameter list. Bad is set when a parameter
// could not be parsed and was skipped.
type ParamList struct {
	NodeInfo
	Params []*Param
	Bad    bool
}

// Param is a function parameter.
type Param struct {
	NodeInfo
	Name *Ident
	Type TypeExpr // nil when absent
}

// ModuleDecl declares a module, optionally with a body of declarations.
type ModuleDecl struct {
	NodeInfo
	Doc        []*token.Comment
	Visibility Visibility
	Path       *Path
	Body       *DeclBlock // nil when absent
}

// DeclBlock is a block that may only contain declarations.
type DeclBlock struct {
	NodeInfo
	Braced bool
	Decls  []Decl
}

// TypeDecl is type Name<Generics> = Def.
type TypeDecl struct {
	NodeInfo
	Doc        []*token.Comment
	Visibility Visibility
	Name       *Ident
	Generics   *GenericList
	Def        TypeDef
}

// AliasDef names another type.
type AliasDef struct {
	NodeInfo
	Type TypeExpr
}

// EnumDef is a closed set of cases.
type EnumDef struct {
	NodeInfo
	Braced bool
	Cases  []*EnumCase
}

// EnumCase is one case of an enum, with optional payload types.
type EnumCase struct {
	NodeInfo
	Doc     []*token.Comment
	Keyword bool // written with the case keyword
	Name    *Ident
	Fields  []TypeExpr // nil when the case has no payload
}

// StructDef is a record of fields.
type StructDef struct {
	NodeInfo
	Braced bool
	Fields []*Field
}

// Field is a struct field. A field has a Type, a Default, or both; Accessors
// are only allowed after a Type.
type Field struct {
	NodeInfo
	Doc        []*token.Comment
	Visibility Visibility
	Name       *Ident
	Type       TypeExpr
	Default    Expr
	Accessors  *AccessorBlock
}

// AccessorBlock holds a field's get and set accessors.
type AccessorBlock struct {
	NodeInfo
	Braced    bool
	Accessors []*Accessor
}

// AccessorKind distinguishes getters from setters.
type AccessorKind int

// Accessor kinds.
const (
	Getter AccessorKind = iota
	Setter
)

func (k AccessorKind) String() string {
	if k == Setter {
		return "set"
	}
	return "get"
}

// Accessor is get Body or set(v) Body.
type Accessor struct {
	NodeInfo
	Visibility Visibility
	Kind       AccessorKind
	Param      *Ident // setter parameter; nil when omitted
	Body       Expr
	ExprBody   bool
}

// UsingDecl imports a path, optionally renamed or restricted to members.
type UsingDecl struct {
	NodeInfo
	Doc        []*token.Comment
	Visibility Visibility
	Import     bool // written with import rather than using
	Path       *Path
	Alias      *Ident          // using a.b as c
	Members    []*ImportMember // using a.b.{x, y as z}; nil when absent
}

// ImportMember is one member of a using member list.
type ImportMember struct {
	NodeInfo
	Name  *Ident
	Alias *Ident
}

// BadDecl stands in for a declaration that could not be parsed.
type BadDecl struct {
	NodeInfo
}

func (*FunDecl) itemNode()    {}
func (*ModuleDecl) itemNode() {}
func (*TypeDecl) itemNode()   {}
func (*UsingDecl) itemNode()  {}
func (*BadDecl) itemNode()    {}

func (*FunDecl) declNode()    {}
func (*ModuleDecl) declNode() {}
func (*TypeDecl) declNode()   {}
func (*UsingDecl) declNode()  {}
func (*BadDecl) declNode()    {}

func (*AliasDef) typeDefNode()  {}
func (*EnumDef) typeDefNode()   {}
func (*StructDef) typeDefNode() {}
