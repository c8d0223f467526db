package ast

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/helios/pkg/token"
)

var (
	nodeType    = reflect.TypeOf((*Node)(nil)).Elem()
	kindType    = reflect.TypeOf(token.Kind(0))
	commentType = reflect.TypeOf([]*token.Comment(nil))
	spanType    = reflect.TypeOf(token.Span{})
)

// DumpOptions controls Dump.
type DumpOptions struct {
	Spans bool // include "span" entries
}

// Dump converts a tree into nested maps and slices suitable for JSON, YAML or
// CBOR encoding. Each node becomes a map with a "node" entry naming its type;
// zero-valued fields are omitted.
func Dump(n Node, opts DumpOptions) map[string]any {
	if n == nil {
		return nil
	}
	rv := reflect.ValueOf(n)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	rv = reflect.Indirect(rv)

	out := map[string]any{"node": rv.Type().Name()}
	if opts.Spans {
		out["span"] = n.GetSpan().String()
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Type().Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if val, ok := dumpValue(rv.Field(i), opts); ok {
			out[lowerFirst(f.Name)] = val
		}
	}
	return out
}

func dumpValue(v reflect.Value, opts DumpOptions) (any, bool) {
	switch {
	case v.Type() == kindType:
		return token.Kind(v.Int()).String(), true
	case v.Type() == commentType:
		if v.Len() == 0 {
			return nil, false
		}
		var lines []string
		for _, c := range v.Interface().([]*token.Comment) {
			lines = append(lines, c.Text)
		}
		return lines, true
	case v.Type() == spanType:
		return nil, false
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil, false
		}
		if v.Type().Implements(nodeType) || v.Elem().Type().Implements(nodeType) {
			return Dump(v.Interface().(Node), opts), true
		}
		return dumpValue(v.Elem(), opts)
	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, ok := dumpValue(v.Index(i), opts)
			if !ok {
				item = nil
			}
			items = append(items, item)
		}
		return items, true
	case reflect.String:
		if v.Len() == 0 {
			return nil, false
		}
		return v.String(), true
	case reflect.Bool:
		return v.Bool(), v.Bool()
	case reflect.Int, reflect.Int32, reflect.Int64:
		if v.Int() == 0 {
			return nil, false
		}
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
		return v.Int(), true
	}
	return nil, false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	Walk(n, func(c Node) bool {
		if c == n {
			return true
		}
		out = append(out, c)
		return false
	})
	return out
}

// Sprint renders a tree as an indented outline, one node per line.
func Sprint(n Node) string {
	var sb strings.Builder
	var write func(Node, int)
	write = func(n Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(describe(n))
		sb.WriteByte('\n')
		for _, c := range Children(n) {
			write(c, depth+1)
		}
	}
	if n != nil {
		write(n, 0)
	}
	return sb.String()
}

func describe(n Node) string {
	name := reflect.Indirect(reflect.ValueOf(n)).Type().Name()
	span := n.GetSpan()
	switch n := n.(type) {
	case *Ident:
		return fmt.Sprintf("%s %q @%s", name, n.Name, span)
	case *LiteralExpr:
		return fmt.Sprintf("%s %s @%s", name, n.Raw, span)
	case *LiteralPattern:
		return fmt.Sprintf("%s %s @%s", name, n.Raw, span)
	case *BinaryExpr:
		return fmt.Sprintf("%s %s @%s", name, n.Op, span)
	case *UnaryExpr:
		return fmt.Sprintf("%s %s @%s", name, n.Op, span)
	}
	return fmt.Sprintf("%s @%s", name, span)
}
