package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/leapstack-labs/helios/pkg/token"
)

// snippet is a declaration template offered next to its keyword.
type snippet struct {
	keyword string
	label   string
	body    string
}

var snippets = []snippet{
	{keyword: "fun", label: "fun (expression body)", body: "fun ${1:name}(${2}) => ${0}"},
	{keyword: "fun", label: "fun (block body)", body: "fun ${1:name}(${2})\n    ${0}"},
	{keyword: "type", label: "type enum", body: "type ${1:Name} = enum\n    case ${0}"},
	{keyword: "type", label: "type struct", body: "type ${1:Name} = struct\n    ${2:field}: ${0:Type}"},
	{keyword: "match", label: "match", body: "match ${1:value}\n    case ${2:pattern} => ${0}"},
	{keyword: "module", label: "module", body: "module ${1:name}\n    ${0}"},
}

// Complete returns keyword and snippet completions for the word being typed
// at pos. Nothing is offered inside a line comment.
func Complete(doc *Document, pos Position) CompletionList {
	list := CompletionList{Items: []CompletionItem{}}
	if doc == nil {
		return list
	}

	before := doc.GetTextBefore(pos)
	if strings.Contains(before[lineStartIn(before):], "//") {
		return list
	}

	prefix, rng := prefixAt(doc, pos)
	keywords := token.Keywords()

	var matches []string
	if prefix == "" {
		matches = keywords
	} else {
		ranks := fuzzy.RankFindFold(prefix, keywords)
		sort.Sort(ranks)
		for _, r := range ranks {
			matches = append(matches, r.Target)
		}
	}

	for i, kw := range matches {
		list.Items = append(list.Items, CompletionItem{
			Label:    kw,
			Kind:     CompletionItemKindKeyword,
			SortText: fmt.Sprintf("0%03d", i),
			TextEdit: &TextEdit{Range: rng, NewText: kw},
		})
	}
	for i, s := range snippets {
		if !strings.HasPrefix(s.keyword, strings.ToLower(prefix)) {
			continue
		}
		list.Items = append(list.Items, CompletionItem{
			Label:            s.label,
			Kind:             CompletionItemKindSnippet,
			Detail:           "snippet",
			SortText:         fmt.Sprintf("1%03d", i),
			InsertTextFormat: InsertTextFormatSnippet,
			TextEdit:         &TextEdit{Range: rng, NewText: s.body},
		})
	}
	return list
}

// prefixAt returns the word fragment ending at pos and its range.
func prefixAt(doc *Document, pos Position) (string, Range) {
	end := doc.PositionToOffset(pos)
	start := end
	for start > 0 && isWordChar(doc.Content[start-1]) {
		start--
	}
	return doc.Content[start:end], Range{Start: doc.OffsetToPosition(start), End: doc.OffsetToPosition(end)}
}

func lineStartIn(text string) int {
	return strings.LastIndexByte(text, '\n') + 1
}
