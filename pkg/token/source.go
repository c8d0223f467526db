package token

// Source is a unit of source text handed to the scanner: an identifier
// (file path or document URI) and the full text.
type Source struct {
	URI  string
	Text string
}

// NewSource creates a Source.
func NewSource(uri, text string) Source {
	return Source{URI: uri, Text: text}
}
