package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/parser"
	"github.com/leapstack-labs/helios/pkg/token"
)

func parseOK(t *testing.T, src string) *parser.Result {
	t.Helper()
	res := parser.Parse(token.NewSource("test.hl", src))
	require.Empty(t, res.Diagnostics, "diagnostics for %q", src)
	return res
}

func TestSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "expression body",
			input:    "fun add(a: Int, b: Int): Int => a + b",
			expected: "fun add(a: Int, b: Int): Int => a + b\n",
		},
		{
			name:     "braced enum",
			input:    "type Color = enum { case Red case Green case Blue }",
			expected: "type Color = enum { case Red case Green case Blue }\n",
		},
		{
			name:     "enum without case keywords",
			input:    "type Color = enum {Red;Green}",
			expected: "type Color = enum { Red; Green }\n",
		},
		{
			name:     "reindent",
			input:    "fun  f( x )\n        x",
			expected: "fun f(x)\n    x\n",
		},
		{
			name:     "if without else",
			input:    "if x then 1",
			expected: "if x then 1\n",
		},
		{
			name:     "items on one line",
			input:    "let x=1;let y=2",
			expected: "let x = 1\nlet y = 2\n",
		},
		{
			name:     "braced tail",
			input:    "fun f() {a;b}",
			expected: "fun f() { a; b }\n",
		},
		{
			name:     "braced without tail",
			input:    "fun f() {\n  a\n  b;\n}",
			expected: "fun f() { a; b; }\n",
		},
		{
			name:     "indented if else",
			input:    "if x\n  1\nelse\n  2\n",
			expected: "if x\n    1\nelse\n    2\n",
		},
		{
			name:     "indented match",
			input:    "match c\n  case Red => 1\n  _ ->\n    0\n",
			expected: "match c\n    case Red => 1\n    _ ->\n        0\n",
		},
		{
			name:     "import members",
			input:    "using std.math.{ sin,cos as c }",
			expected: "using std.math.{sin, cos as c}\n",
		},
		{
			name:     "doc comment",
			input:    "/// Adds.\npub   fun f() => 1",
			expected: "/// Adds.\npub fun f() => 1\n",
		},
		{
			name:     "blank line between declarations",
			input:    "fun a() => 1\nfun b() => 2\nx\ny",
			expected: "fun a() => 1\n\nfun b() => 2\n\nx\ny\n",
		},
		{
			name:     "interpolation",
			input:    `f"a{ x }b{{c}}"`,
			expected: "f\"a{x}b{{c}}\"\n",
		},
		{
			name:     "tuples and calls",
			input:    "f ( a , (1,) , () )",
			expected: "f(a, (1,), ())\n",
		},
		{
			name:     "function type",
			input:    "type F = (Int->Int)->Int",
			expected: "type F = (Int -> Int) -> Int\n",
		},
		{
			name:     "multiline array",
			input:    "let xs = [\n1,\n2,\n]",
			expected: "let xs = [1, 2]\n",
		},
		{
			name:     "braced struct",
			input:    "type P = struct {x: Int; pub y: Int = 0}",
			expected: "type P = struct { x: Int; pub y: Int = 0 }\n",
		},
		{
			name:     "group kept",
			input:    "(a + b) * -c",
			expected: "(a + b) * -c\n",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseOK(t, tt.input)
			assert.Equal(t, tt.expected, Source(res.File))
		})
	}
}

func TestSource_Struct(t *testing.T) {
	input := "type P = struct\n" +
		"  /// The x coordinate.\n" +
		"  x: Int\n" +
		"  n: Int\n" +
		"    get => 1\n" +
		"    internal set(v) => v\n"
	expected := "type P = struct\n" +
		"    /// The x coordinate.\n" +
		"    x: Int\n" +
		"    n: Int\n" +
		"        get => 1\n" +
		"        internal set(v) => v\n"
	assert.Equal(t, expected, Source(parseOK(t, input).File))
}

func TestSource_BracedDocsGoMultiline(t *testing.T) {
	input := "type Color = enum {\n    /// Warm.\n    case Red\n    case Blue\n}\n"
	assert.Equal(t, input, Source(parseOK(t, input).File))
}

func ident(name string) *ast.Ident {
	return &ast.Ident{Name: name}
}

func lit(raw string) *ast.LiteralExpr {
	return &ast.LiteralExpr{Kind: token.INT, Raw: raw, Value: raw}
}

func bin(op token.Kind, l, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func named(name string) *ast.NamedType {
	return &ast.NamedType{Path: &ast.Path{Parts: []*ast.Ident{ident(name)}}}
}

func TestSource_InsertsParentheses(t *testing.T) {
	tests := []struct {
		name     string
		item     ast.Item
		expected string
	}{
		{
			name:     "lower precedence left",
			item:     bin(token.STAR, bin(token.PLUS, ident("a"), ident("b")), ident("c")),
			expected: "(a + b) * c",
		},
		{
			name:     "same precedence right",
			item:     bin(token.MINUS, ident("a"), bin(token.MINUS, ident("b"), ident("c"))),
			expected: "a - (b - c)",
		},
		{
			name:     "left associative chain",
			item:     bin(token.MINUS, bin(token.MINUS, ident("a"), ident("b")), ident("c")),
			expected: "a - b - c",
		},
		{
			name:     "member of binary",
			item:     &ast.MemberExpr{X: bin(token.PLUS, ident("a"), ident("b")), Name: ident("x")},
			expected: "(a + b).x",
		},
		{
			name:     "unary of binary",
			item:     &ast.UnaryExpr{Op: token.BANG, X: bin(token.AND, ident("a"), ident("b"))},
			expected: "!(a && b)",
		},
		{
			name: "open-ended if as operand",
			item: bin(token.PLUS,
				&ast.IfExpr{Cond: ident("c"), Then: lit("1"), ThenKeyword: true, Else: lit("2")},
				lit("3")),
			expected: "(if c then 1 else 2) + 3",
		},
		{
			name: "dangling else",
			item: &ast.IfExpr{
				Cond:        ident("c"),
				Then:        &ast.IfExpr{Cond: ident("d"), Then: lit("1"), ThenKeyword: true},
				ThenKeyword: true,
				Else:        lit("2"),
			},
			expected: "if c then (if d then 1) else 2",
		},
		{
			name: "binding as operand",
			item: &ast.CallExpr{
				Fun:  &ast.BindingExpr{Pattern: &ast.BindingPattern{Name: ident("f")}, Value: ident("g")},
				Args: []ast.Expr{lit("1")},
			},
			expected: "(let f = g)(1)",
		},
		{
			name: "function type parameter",
			item: &ast.TypeDecl{
				Name: ident("T"),
				Def: &ast.AliasDef{Type: &ast.FuncType{
					Param:  &ast.FuncType{Param: named("A"), Result: named("B")},
					Result: &ast.FuncType{Param: named("C"), Result: named("D")},
				}},
			},
			expected: "type T = (A -> B) -> C -> D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &ast.File{Items: []ast.Item{tt.item}}
			out := Source(file)
			assert.Equal(t, tt.expected+"\n", out)

			// The inserted parentheses must keep the printed form parseable.
			res := parser.Parse(token.NewSource("test.hl", out))
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestWithComments(t *testing.T) {
	input := "// header\nfun f() => 1 // trailing\n\n(* block *)\nlet x = 2\n// end"
	res := parseOK(t, input)

	expected := "// header\nfun f() => 1\n\n// trailing\n(* block *)\nlet x = 2\n// end\n"
	assert.Equal(t, expected, WithComments(res.File, res.Comments))

	// Without comments only the declaration docs survive.
	assert.Equal(t, "fun f() => 1\n\nlet x = 2\n", Source(res.File))
}

func TestWithComments_DocsNotDuplicated(t *testing.T) {
	input := "/// Doc.\nfun f() => 1\n"
	res := parseOK(t, input)
	assert.Equal(t, input, WithComments(res.File, res.Comments))
}

var roundTripPrograms = []string{
	"fun add(a: Int, b: Int): Int => a + b",
	"type Color = enum { case Red case Green case Blue }",
	"def f<T: Ord + Show, U>(x: T, y: U): [T] => [x, x]",
	"fun f(x)\n    let y = x * 2\n    var z: Int = y\n    z\n",
	"fun f() { a; b; }",
	"fun f()\n    g()\n    h();\n",
	"fun f()\n    while x\n        step(x)\n    ;\n",
	"if x then 1",
	"if x then 1 else if y then 2 else 3",
	"if x { a } else { b }",
	"if x\n    a\nelse\n    b\n",
	"if x then\n    a\n",
	"let v = if c\n    1\nelse\n    2\n",
	"if c\n    a\n+ 1\n",
	"match c\n    case Red => 1\n    Color.Green if x > 0 => 2\n    Some(v, _) ->\n        v\n    -1 => 0\n",
	"match n { case 0 => a case _ => b }",
	"match n { Some(x) => x; None -> { 0 } }",
	"for i in xs\n    print(i)\n",
	"for a in pairs(xs) { print(a) }",
	"module geo.shapes\n    pub fun area(r) => r * r\n    internal type R = Float\n",
	"module m { fun f() => 1; type T = Int }",
	"type Shape = enum\n    Circle(Float)\n    case Rect(Float, Float)\n    /// Nothing.\n    Empty\n",
	"type P<T> = struct\n    x: T\n    pub y: Int = 0\n    label = \"p\"\n    n: Int\n        get => 1\n        set(v) => v\n",
	"type P = struct { n: Int { get => 1; public set => 2 }; m: Int }",
	"type F = (Int -> Int) -> Int -> ()",
	"type M = std.Map<String, [(Int, Bool,)]>",
	"using std.io\nimport std.collections as col\nusing std.math.{sin, cos as cosine}",
	`let s = f"a{x}b{ {y} }c{{d}}"`,
	`let t = (1, 'c', "s", r"raw\n", 0xff, 1_000, 2.5e3, true, false)`,
	"!a && -b || c == d != e < f + g * h % i / j - k",
	"f(a)(b).c.d(e, [1, 2,])",
	"(a)\n(a,)\n()\n{ x }",
	"/// Docs.\n/// More.\npub fun f() => 1\n\n/// Module docs.\nmodule m\n    /// Inner.\n    fun g() => 2\n",
}

func TestSource_RoundTrip(t *testing.T) {
	for _, src := range roundTripPrograms {
		name := src
		if len(name) > 40 {
			name = name[:40]
		}
		t.Run(strings.ReplaceAll(name, "\n", "_"), func(t *testing.T) {
			first := parseOK(t, src)
			out := Source(first.File)

			second := parser.Parse(token.NewSource("test.hl", out))
			require.Empty(t, second.Diagnostics, "formatted:\n%s", out)

			diff := cmp.Diff(first.File, second.File,
				cmpopts.IgnoreTypes(token.Span{}),
				cmpopts.EquateEmpty())
			assert.Empty(t, diff, "formatted:\n%s", out)

			assert.Equal(t, out, Source(second.File), "formatting is not idempotent")
		})
	}
}

func TestWithComments_RoundTrip(t *testing.T) {
	src := "// a\nfun f()\n    // b\n    x\n    (* c *) y\n// d\n"
	first := parseOK(t, src)
	out := WithComments(first.File, first.Comments)

	second := parseOK(t, out)
	assert.Empty(t, cmp.Diff(first.File, second.File, cmpopts.IgnoreTypes(token.Span{}), cmpopts.EquateEmpty()))

	texts := func(cs []*token.Comment) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Text)
		}
		return out
	}
	assert.Equal(t, texts(first.Comments), texts(second.Comments))
}
