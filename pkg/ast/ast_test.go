package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/parser"
	"github.com/leapstack-labs/helios/pkg/token"
)

func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	res := parser.Parse(token.NewSource("test.hl", src))
	require.Empty(t, res.Diagnostics, "unexpected diagnostics for %q", src)
	return res.File
}

func identNames(n ast.Node) []string {
	var names []string
	ast.Inspect(n, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	return names
}

func TestInspect_SourceOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"binding", "let x = a + b * c", []string{"x", "a", "b", "c"}},
		{"call", "f(a, g(b)).c", []string{"f", "a", "g", "b", "c"}},
		{"function", "fun f(a: Int): Int => a", []string{"f", "a", "Int", "Int", "a"}},
		{"match", "match v\n    Some(x) => x\n    _ => d", []string{"v", "Some", "x", "x", "d"}},
		{"interpolation", `f"{a} and {b}"`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identNames(parseFile(t, tt.src)))
		})
	}
}

func TestInspect_Prune(t *testing.T) {
	file := parseFile(t, "f(a, b)\ng(c)")

	var visited []string
	ast.Inspect(file, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			if id, ok := call.Fun.(*ast.Ident); ok {
				visited = append(visited, id.Name)
				return id.Name != "f"
			}
		}
		if id, ok := n.(*ast.Ident); ok {
			visited = append(visited, id.Name)
		}
		return true
	})

	assert.Equal(t, []string{"f", "g", "g", "c"}, visited)
}

func TestWalk_NilNode(t *testing.T) {
	calls := 0
	ast.Walk(nil, func(ast.Node) bool {
		calls++
		return true
	})
	assert.Zero(t, calls)
}

type strayNode struct {
	ast.NodeInfo
}

func TestWalk_UnknownNodePanics(t *testing.T) {
	assert.Panics(t, func() {
		ast.Walk(&strayNode{}, func(ast.Node) bool { return true })
	})
}

func TestChildren(t *testing.T) {
	file := parseFile(t, "a + b")
	require.Len(t, file.Items, 1)

	bin, ok := file.Items[0].(*ast.BinaryExpr)
	require.True(t, ok, "item is %T", file.Items[0])

	children := ast.Children(bin)
	require.Len(t, children, 2)
	assert.Same(t, bin.Left, children[0])
	assert.Same(t, bin.Right, children[1])
}

func TestChildrenWithinParentSpan(t *testing.T) {
	file := parseFile(t, "fun f(a: Int)\n    let b = [a, (a, 2)]\n    if b then a else { 3 }\n")

	ast.Inspect(file, func(n ast.Node) bool {
		parent := n.GetSpan()
		for _, c := range ast.Children(n) {
			child := c.GetSpan()
			assert.LessOrEqual(t, parent.Start.Offset, child.Start.Offset, "%T inside %T", c, n)
			assert.GreaterOrEqual(t, parent.End.Offset, child.End.Offset, "%T inside %T", c, n)
		}
		return true
	})
}

func TestFile_Decls(t *testing.T) {
	file := parseFile(t, "using std.io\nlet x = 1\nfun f() => x\ntype T = Int")

	decls := file.Decls()
	require.Len(t, decls, 3)
	assert.IsType(t, &ast.UsingDecl{}, decls[0])
	assert.IsType(t, &ast.FunDecl{}, decls[1])
	assert.IsType(t, &ast.TypeDecl{}, decls[2])
}

func TestPath(t *testing.T) {
	file := parseFile(t, "using std.collections.map")
	using := file.Items[0].(*ast.UsingDecl)

	assert.Equal(t, "std.collections.map", using.Path.String())
	assert.Equal(t, "map", using.Path.Last().Name)
	assert.Nil(t, (&ast.Path{}).Last())
}

func TestVisibility_String(t *testing.T) {
	assert.Equal(t, "private", ast.Private.String())
	assert.Equal(t, "pub", ast.Pub.String())
	assert.Equal(t, "public", ast.Public.String())
	assert.Equal(t, "internal", ast.Internal.String())
}

func TestDump(t *testing.T) {
	file := parseFile(t, "pub fun f(a: Int) => a + 1")
	out := ast.Dump(file, ast.DumpOptions{})

	assert.Equal(t, "File", out["node"])
	assert.NotContains(t, out, "span")

	items, ok := out["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	fun := items[0].(map[string]any)
	assert.Equal(t, "FunDecl", fun["node"])
	assert.Equal(t, "pub", fun["visibility"])
	assert.Equal(t, map[string]any{"node": "Ident", "name": "f"}, fun["name"])

	body := fun["body"].(map[string]any)
	assert.Equal(t, "BinaryExpr", body["node"])
	assert.Equal(t, "+", body["op"])
	assert.Equal(t, map[string]any{
		"node":  "LiteralExpr",
		"kind":  "INT",
		"raw":   "1",
		"value": "1",
	}, body["right"])
}

func TestDump_OmitsZeroFields(t *testing.T) {
	file := parseFile(t, "let x = 1")
	binding := ast.Dump(file.Items[0], ast.DumpOptions{})

	assert.Equal(t, "BindingExpr", binding["node"])
	assert.NotContains(t, binding, "mutable")
	assert.NotContains(t, binding, "type")
}

func TestDump_Spans(t *testing.T) {
	file := parseFile(t, "x")
	out := ast.Dump(file, ast.DumpOptions{Spans: true})

	assert.Equal(t, file.Span.String(), out["span"])
	item := out["items"].([]any)[0].(map[string]any)
	assert.Equal(t, file.Items[0].GetSpan().String(), item["span"])
}

func TestDump_Nil(t *testing.T) {
	assert.Nil(t, ast.Dump(nil, ast.DumpOptions{}))
	assert.Nil(t, ast.Dump((*ast.File)(nil), ast.DumpOptions{}))
}

func TestSprint(t *testing.T) {
	file := parseFile(t, "a * 2")
	out := ast.Sprint(file)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "File @")
	assert.Contains(t, lines[1], "  BinaryExpr * @")
	assert.Contains(t, lines[2], `    Ident "a" @`)
	assert.Contains(t, lines[3], "    LiteralExpr 2 @")
	assert.Empty(t, ast.Sprint(nil))
}
