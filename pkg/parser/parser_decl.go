package parser

import (
	"fmt"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Declaration parsing.
//
// Grammar:
//
//	decl        → [visibility] ( fun_decl | module_decl | type_decl | using_decl )
//	visibility  → "pub" | "public" | "internal"
//	fun_decl    → ("fun" | "def") IDENT [generics] "(" [param {"," param} [","]] ")" [":" type] body
//	generics    → "<" generic {"," generic} ">"
//	generic     → IDENT [":" type {"+" type}]
//	param       → IDENT [":" type]
//	body        → "=>" expr | block
//	module_decl → "module" path [block of decl]
//	type_decl   → "type" IDENT [generics] "=" ( "enum" block of enum_case | "struct" block of field | type )
//	enum_case   → ["case"] IDENT ["(" type {"," type} ")"]
//	field       → [visibility] IDENT ( ":" type [ "=" expr | accessors ] | "=" expr )
//	accessors   → block of ( [visibility] ( "get" | "set" ["(" IDENT ")"] ) body )
//	using_decl  → ("using" | "import") path [ "as" IDENT | "." "{" member {"," member} "}" ]
//	member      → IDENT ["as" IDENT]

// parseItem parses a declaration or an expression.
func (p *Parser) parseItem() ast.Item {
	tok := p.tok()
	if tok.Kind.StartsDecl() {
		return p.parseDecl()
	}
	if bad, ok := p.parseMisspelledDecl(); ok {
		return bad
	}
	return p.parseExpr()
}

// parseMisspelledDecl recognizes `fn name(` and similar, where an identifier
// close to a declaration keyword is followed by a name.
func (p *Parser) parseMisspelledDecl() (ast.Decl, bool) {
	tok := p.tok()
	if tok.Kind != token.IDENT || p.peek(1).Kind != token.IDENT {
		return nil, false
	}
	switch p.peek(2).Kind {
	case token.LPAREN, token.LT, token.ASSIGN, token.DOT, token.NEWLINE, token.EOF:
	default:
		return nil, false
	}
	if _, ok := diag.SuggestKeyword(tok.Lexeme); !ok {
		return nil, false
	}
	d := diag.Diagnostic{
		Severity: diag.Error,
		Category: diag.SyntaxError,
		Code:     diag.CodeUnexpectedToken,
		Message:  fmt.Sprintf(ErrUnknownKeyword, tok.Lexeme),
		Span:     tok.Span,
	}
	p.report(diag.WithKeywordFix(d, tok.Lexeme, tok.Span))
	p.sync()
	return &ast.BadDecl{NodeInfo: ast.NodeInfo{Span: p.spanFrom(tok.Span.Start)}}, true
}

// parseDecl parses a declaration starting at a visibility modifier or
// declaration keyword.
func (p *Parser) parseDecl() ast.Decl {
	first := p.tok()
	start, doc := first.Span.Start, first.Doc
	vis := p.parseVisibility()

	switch p.tok().Kind {
	case token.FUN, token.DEF:
		return p.parseFunDecl(start, doc, vis)
	case token.MODULE:
		return p.parseModuleDecl(start, doc, vis)
	case token.TYPE:
		return p.parseTypeDecl(start, doc, vis)
	case token.USING, token.IMPORT:
		return p.parseUsingDecl(start, doc, vis)
	}
	p.errorExpected("declaration")
	p.sync()
	return &ast.BadDecl{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}}
}

func (p *Parser) parseVisibility() ast.Visibility {
	switch p.tok().Kind {
	case token.PUB:
		p.next()
		return ast.Pub
	case token.PUBLIC:
		p.next()
		return ast.Public
	case token.INTERNAL:
		p.next()
		return ast.Internal
	}
	return ast.Private
}

// ---------- Functions ----------

func (p *Parser) parseFunDecl(start token.Position, doc []*token.Comment, vis ast.Visibility) *ast.FunDecl {
	fn := &ast.FunDecl{Doc: doc, Visibility: vis}
	fn.Def = p.next().Kind == token.DEF
	fn.Name = p.parseIdent("function name")
	if p.at(token.LT) {
		fn.Generics = p.parseGenerics()
	}
	fn.Params = p.parseParamList()
	if p.accept(token.COLON) {
		fn.Result = p.parseType()
	}
	fn.Body, fn.ExprBody = p.parseBody()
	fn.Span = p.spanFrom(start)
	return fn
}

// parseBody parses "=>" expr or a block.
func (p *Parser) parseBody() (ast.Expr, bool) {
	if p.accept(token.FATARROW) {
		return p.parseExpr(), true
	}
	if p.atBlockStart() {
		return p.parseBlock(), false
	}
	p.errorExpected("`=>` or block")
	return p.badExpr(), true
}

func (p *Parser) parseGenerics() *ast.GenericList {
	start := p.next().Span.Start // <
	list := &ast.GenericList{}
	for !p.at(token.GT, token.EOF) {
		if !p.at(token.IDENT) {
			p.errorExpected("generic parameter")
			p.syncList(token.GT)
		} else {
			list.Params = append(list.Params, p.parseGenericParam())
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	if len(list.Params) == 0 && p.at(token.GT) {
		p.errorAt(p.spanFrom(start).To(p.tok().Span), diag.CodeEmptyGenerics, ErrEmptyGenerics)
	}
	p.expect(token.GT, "`>`")
	list.Span = p.spanFrom(start)
	return list
}

func (p *Parser) parseGenericParam() *ast.GenericParam {
	start := p.tok().Span.Start
	gp := &ast.GenericParam{Name: p.parseIdent("generic parameter")}
	if p.accept(token.COLON) {
		gp.Bounds = append(gp.Bounds, p.parseType())
		for p.accept(token.PLUS) {
			gp.Bounds = append(gp.Bounds, p.parseType())
		}
	}
	gp.Span = p.spanFrom(start)
	return gp
}

// parseParamList parses a parenthesized parameter list. A malformed
// parameter is reported once and skipped; the list is then marked Bad.
func (p *Parser) parseParamList() *ast.ParamList {
	start := p.tok().Span.Start
	list := &ast.ParamList{}
	if !p.expect(token.LPAREN, "`(`") {
		list.Bad = true
		list.Span = p.tok().Span
		return list
	}
	for !p.at(token.RPAREN, token.EOF) {
		if p.at(token.IDENT) {
			list.Params = append(list.Params, p.parseParam())
		} else {
			p.errorExpected("parameter name")
			list.Bad = true
			p.syncList(token.RPAREN)
		}
		if p.accept(token.COMMA) {
			continue
		}
		if !p.at(token.RPAREN) {
			p.errorExpected("`,` or `)`")
			list.Bad = true
			p.syncList(token.RPAREN)
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "`)`")
	list.Span = p.spanFrom(start)
	return list
}

func (p *Parser) parseParam() *ast.Param {
	start := p.tok().Span.Start
	param := &ast.Param{Name: p.parseIdent("parameter name")}
	if p.accept(token.COLON) {
		param.Type = p.parseType()
	}
	param.Span = p.spanFrom(start)
	return param
}

// ---------- Modules ----------

func (p *Parser) parseModuleDecl(start token.Position, doc []*token.Comment, vis ast.Visibility) *ast.ModuleDecl {
	p.next() // module
	mod := &ast.ModuleDecl{Doc: doc, Visibility: vis, Path: p.parsePath("module name")}
	if p.atBlockStart() {
		body := &ast.DeclBlock{}
		info := p.parseBlockOf("module body", func() {
			if !p.tok().Kind.StartsDecl() {
				p.errorExpected("declaration")
				p.sync()
				return
			}
			body.Decls = append(body.Decls, p.parseDecl())
		}, nil)
		body.Braced, body.Span = info.braced, info.span
		mod.Body = body
	}
	mod.Span = p.spanFrom(start)
	return mod
}

// ---------- Types ----------

func (p *Parser) parseTypeDecl(start token.Position, doc []*token.Comment, vis ast.Visibility) *ast.TypeDecl {
	p.next() // type
	td := &ast.TypeDecl{Doc: doc, Visibility: vis, Name: p.parseIdent("type name")}
	if p.at(token.LT) {
		td.Generics = p.parseGenerics()
	}
	if !p.expect(token.ASSIGN, "`=`") {
		p.sync()
		td.Def = &ast.AliasDef{NodeInfo: ast.NodeInfo{Span: p.here()}, Type: p.badType()}
		td.Span = p.spanFrom(start)
		return td
	}

	switch p.tok().Kind {
	case token.ENUM:
		td.Def = p.parseEnumDef()
	case token.STRUCT:
		td.Def = p.parseStructDef()
	default:
		defStart := p.tok().Span.Start
		alias := &ast.AliasDef{Type: p.parseType()}
		alias.Span = p.spanFrom(defStart)
		td.Def = alias
	}
	td.Span = p.spanFrom(start)
	return td
}

func (p *Parser) parseEnumDef() *ast.EnumDef {
	kw := p.next() // enum
	def := &ast.EnumDef{}
	info := p.parseBlockOf("enum body", func() {
		def.Cases = append(def.Cases, p.parseEnumCase())
	}, func(tok token.Token) bool { return tok.Kind == token.CASE })
	def.Braced = info.braced
	if info.ok && len(def.Cases) == 0 {
		p.errorAt(kw.Span.To(info.span), diag.CodeEmptyEnum, ErrEmptyEnum)
	}
	def.Span = p.spanFrom(kw.Span.Start)
	return def
}

func (p *Parser) parseEnumCase() *ast.EnumCase {
	first := p.tok()
	ec := &ast.EnumCase{Doc: first.Doc}
	ec.Keyword = p.accept(token.CASE)
	ec.Name = p.parseIdent("enum case name")
	if p.accept(token.LPAREN) {
		ec.Fields = []ast.TypeExpr{}
		for !p.at(token.RPAREN, token.EOF) {
			ec.Fields = append(ec.Fields, p.parseType())
			if !p.accept(token.COMMA) {
				break
			}
		}
		if len(ec.Fields) == 0 {
			p.errorExpected("payload type")
		}
		if !p.at(token.RPAREN) {
			p.errorExpected("`,` or `)`")
			p.syncList(token.RPAREN)
		}
		p.expect(token.RPAREN, "`)`")
	}
	ec.Span = p.spanFrom(first.Span.Start)
	return ec
}

func (p *Parser) parseStructDef() *ast.StructDef {
	kw := p.next() // struct
	def := &ast.StructDef{}
	info := p.parseBlockOf("struct body", func() {
		def.Fields = append(def.Fields, p.parseField())
	}, nil)
	def.Braced = info.braced
	if info.ok && len(def.Fields) == 0 {
		p.errorAt(kw.Span.To(info.span), diag.CodeEmptyStruct, ErrEmptyStruct)
	}
	def.Span = p.spanFrom(kw.Span.Start)
	return def
}

func (p *Parser) parseField() *ast.Field {
	first := p.tok()
	f := &ast.Field{Doc: first.Doc}
	f.Visibility = p.parseVisibility()
	f.Name = p.parseIdent("field name")

	switch {
	case p.accept(token.COLON):
		f.Type = p.parseType()
		if p.accept(token.ASSIGN) {
			f.Default = p.parseExpr()
		} else if p.atAccessors() {
			f.Accessors = p.parseAccessors()
		}
	case p.accept(token.ASSIGN):
		f.Default = p.parseExpr()
		if p.atAccessors() {
			p.errorAt(p.tok().Span, diag.CodeInvalidField, ErrAccessorsNeedType)
			p.parseAccessors()
		}
	default:
		if f.Name.Name != "" {
			p.errorAt(f.Name.Span, diag.CodeInvalidField, ErrFieldNeedsType, f.Name.Name)
			p.sync()
		}
	}
	f.Span = p.spanFrom(first.Span.Start)
	return f
}

// atAccessors looks past the block opener and any visibility modifier for
// get or set. The stream is restored before returning.
func (p *Parser) atAccessors() bool {
	m := p.ts.Mark()
	defer func() {
		p.ts.Reset(m)
		p.ts.Release(m)
	}()

	switch {
	case p.ts.Peek(0).Kind == token.LBRACE, p.ts.Peek(0).Kind == token.INDENT:
		p.ts.Advance()
	case p.ts.Peek(0).Kind == token.NEWLINE && p.ts.Peek(1).Kind == token.INDENT:
		p.ts.Advance()
		p.ts.Advance()
	default:
		return false
	}
	for p.ts.Peek(0).Kind == token.NEWLINE {
		p.ts.Advance()
	}
	if isVisibility(p.ts.Peek(0).Kind) {
		p.ts.Advance()
	}
	return isAccessorStart(p.ts.Peek(0))
}

func (p *Parser) parseAccessors() *ast.AccessorBlock {
	blk := &ast.AccessorBlock{}
	info := p.parseBlockOf("accessor block", func() {
		blk.Accessors = append(blk.Accessors, p.parseAccessor())
	}, func(tok token.Token) bool {
		return isAccessorStart(tok) || isVisibility(tok.Kind)
	})
	blk.Braced, blk.Span = info.braced, info.span
	return blk
}

func (p *Parser) parseAccessor() *ast.Accessor {
	start := p.tok().Span.Start
	acc := &ast.Accessor{Visibility: p.parseVisibility()}
	tok := p.tok()
	switch {
	case isSoft(tok, SoftKeywordGet):
		p.next()
		acc.Kind = ast.Getter
	case isSoft(tok, SoftKeywordSet):
		p.next()
		acc.Kind = ast.Setter
		if p.accept(token.LPAREN) {
			acc.Param = p.parseIdent("setter parameter")
			p.expect(token.RPAREN, "`)`")
		}
	default:
		p.errorExpected("`get` or `set`")
		p.sync()
		acc.Body = p.badExpr()
		acc.Span = p.spanFrom(start)
		return acc
	}
	acc.Body, acc.ExprBody = p.parseBody()
	acc.Span = p.spanFrom(start)
	return acc
}

// ---------- Using ----------

func (p *Parser) parseUsingDecl(start token.Position, doc []*token.Comment, vis ast.Visibility) *ast.UsingDecl {
	u := &ast.UsingDecl{Doc: doc, Visibility: vis}
	u.Import = p.next().Kind == token.IMPORT
	u.Path = p.parsePath("import path")

	switch {
	case p.at(token.DOT) && p.peek(1).Kind == token.LBRACE:
		p.next()
		u.Members = p.parseImportMembers()
	case p.accept(token.AS):
		u.Alias = p.parseIdent("alias")
	}
	u.Span = p.spanFrom(start)
	return u
}

func (p *Parser) parseImportMembers() []*ast.ImportMember {
	open := p.next() // {
	members := []*ast.ImportMember{}
	for {
		p.skipNewlines()
		if p.at(token.RBRACE, token.EOF) {
			break
		}
		if p.at(token.IDENT) {
			start := p.tok().Span.Start
			m := &ast.ImportMember{Name: p.parseIdent("member name")}
			if p.accept(token.AS) {
				m.Alias = p.parseIdent("alias")
			}
			m.Span = p.spanFrom(start)
			members = append(members, m)
		} else {
			p.errorExpected("member name")
			p.syncList(token.RBRACE)
		}
		p.skipNewlines()
		if p.accept(token.COMMA) {
			continue
		}
		if p.at(token.RBRACE) {
			break
		}
		p.errorExpected("`,` or `}`")
		p.syncList(token.RBRACE)
		if !p.accept(token.COMMA) {
			break
		}
	}
	if len(members) == 0 && p.at(token.RBRACE) {
		p.errorAt(open.Span.To(p.tok().Span), diag.CodeEmptyImportList, ErrEmptyImportList)
	}
	p.expect(token.RBRACE, "`}`")
	return members
}

// ---------- Names ----------

// parseIdent parses an identifier. On error it returns an empty-named
// placeholder at the current token.
func (p *Parser) parseIdent(what string) *ast.Ident {
	tok := p.tok()
	if tok.Kind != token.IDENT {
		p.errorExpected(what)
		return &ast.Ident{NodeInfo: ast.NodeInfo{Span: p.here()}}
	}
	p.next()
	return &ast.Ident{NodeInfo: ast.NodeInfo{Span: tok.Span}, Name: tok.Lexeme}
}

// parsePath parses IDENT {"." IDENT}. A '.' not followed by an identifier is
// left for the caller.
func (p *Parser) parsePath(what string) *ast.Path {
	start := p.tok().Span.Start
	path := &ast.Path{Parts: []*ast.Ident{p.parseIdent(what)}}
	for p.at(token.DOT) && p.peek(1).Kind == token.IDENT {
		p.next()
		path.Parts = append(path.Parts, p.parseIdent(what))
	}
	path.Span = p.spanFrom(start)
	return path
}

func (p *Parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.next()
	}
}
