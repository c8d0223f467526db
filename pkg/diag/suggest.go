package diag

import (
	"sort"

	"github.com/leapstack-labs/helios/pkg/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// declKeywords are the keywords a misspelled declaration most likely meant.
var declKeywords = []string{"fun", "def", "module", "type", "using", "import", "public", "internal", "enum", "struct", "match", "while"}

// maxSuggestDistance bounds how different a word may be from a keyword.
const maxSuggestDistance = 3

// SuggestKeyword returns the declaration keyword closest to word, if any is
// close enough to be a plausible typo.
func SuggestKeyword(word string) (string, bool) {
	if word == "" || token.Lookup(word) != token.IDENT {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, kw := range declKeywords {
		d := fuzzy.LevenshteinDistance(word, kw)
		if d < bestDist && d < len(kw) {
			best, bestDist = kw, d
		}
	}
	// Prefix and subsequence matches ("fn" for "fun", "func" for "fun") rank
	// ahead of raw edit distance.
	if ranks := fuzzy.RankFindFold(word, declKeywords); len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance <= bestDist {
			best, bestDist = ranks[0].Target, ranks[0].Distance
		}
	}
	if best == "" || bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}

// WithKeywordFix attaches a replacement fix to d when word looks like a
// misspelled keyword at span.
func WithKeywordFix(d Diagnostic, word string, span token.Span) Diagnostic {
	kw, ok := SuggestKeyword(word)
	if !ok {
		return d
	}
	d.Fix = &Fix{
		Message:     "did you mean `" + kw + "`?",
		Span:        span,
		Replacement: kw,
	}
	return d
}
