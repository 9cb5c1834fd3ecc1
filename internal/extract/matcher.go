package extract

import "strings"

// Matcher selects texts containing any of a fixed set of keywords
type Matcher struct {
	keywords      []string
	caseSensitive bool
}

// NewMatcher creates a matcher over a copy of keywords.
// In case-insensitive mode the copy is lowercased once here.
func NewMatcher(keywords []string, caseSensitive bool) *Matcher {
	kw := make([]string, len(keywords))
	for i, k := range keywords {
		if caseSensitive {
			kw[i] = k
		} else {
			kw[i] = strings.ToLower(k)
		}
	}
	return &Matcher{
		keywords:      kw,
		caseSensitive: caseSensitive,
	}
}

// Match reports whether any keyword is a substring of text.
// An empty keyword set never matches.
func (m *Matcher) Match(text string) bool {
	if !m.caseSensitive {
		text = strings.ToLower(text)
	}
	for _, keyword := range m.keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Keywords returns the normalized keywords the matcher compares against
func (m *Matcher) Keywords() []string {
	out := make([]string, len(m.keywords))
	copy(out, m.keywords)
	return out
}
