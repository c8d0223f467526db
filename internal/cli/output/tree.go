package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// TreeFormat selects the encoding of a dumped syntax tree.
type TreeFormat string

// Tree formats.
const (
	TreeText TreeFormat = "tree"
	TreeJSON TreeFormat = "json"
	TreeYAML TreeFormat = "yaml"
	TreeCBOR TreeFormat = "cbor"
)

// TreeFormats lists the accepted tree formats.
var TreeFormats = []string{string(TreeText), string(TreeJSON), string(TreeYAML), string(TreeCBOR)}

// Tree writes a dumped tree (see ast.Dump) in the given format.
func (r *Renderer) Tree(dump map[string]any, format TreeFormat) error {
	return EncodeTree(r.w, dump, format)
}

// EncodeTree writes dump to w in the given format.
func EncodeTree(w io.Writer, dump map[string]any, format TreeFormat) error {
	switch format {
	case TreeJSON:
		return (&Renderer{w: w}).JSON(dump)
	case TreeYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	case TreeCBOR:
		em, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return fmt.Errorf("failed to create CBOR encoder: %w", err)
		}
		return em.NewEncoder(w).Encode(dump)
	case TreeText, "":
		writeTree(w, dump, 0)
		return nil
	}
	return fmt.Errorf("unknown tree format %q (valid: %s)", format, strings.Join(TreeFormats, ", "))
}

// writeTree prints one node per line: the node name, then its scalar
// fields, then child nodes indented beneath it.
func writeTree(w io.Writer, node map[string]any, depth int) {
	indent := strings.Repeat("  ", depth)
	name, _ := node["node"].(string)

	keys := make([]string, 0, len(node))
	for k := range node {
		if k != "node" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var attrs []string
	var children []string
	for _, k := range keys {
		switch node[k].(type) {
		case map[string]any, []any:
			children = append(children, k)
		default:
			attrs = append(attrs, fmt.Sprintf("%s=%v", k, node[k]))
		}
	}

	line := indent + name
	if len(attrs) > 0 {
		line += " " + strings.Join(attrs, " ")
	}
	_, _ = fmt.Fprintln(w, line)

	for _, k := range children {
		switch v := node[k].(type) {
		case map[string]any:
			_, _ = fmt.Fprintf(w, "%s  %s:\n", indent, k)
			writeTree(w, v, depth+2)
		case []any:
			_, _ = fmt.Fprintf(w, "%s  %s:\n", indent, k)
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					writeTree(w, m, depth+2)
				} else {
					_, _ = fmt.Fprintf(w, "%s    %v\n", indent, item)
				}
			}
		}
	}
}
