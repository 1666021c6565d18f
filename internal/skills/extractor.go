package skills

import (
	"sort"
	"strings"
	"unicode"
)

// Extract returns the canonical skills whose surface forms occur in the text.
// Matching is case-insensitive and token-boundary aware: "java" never matches
// inside "javascript" because tokens are compared whole. The result is sorted
// so callers get a deterministic set regardless of text order.
func (t *Taxonomy) Extract(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	// Index unigram positions once; multi-token synonyms are verified against
	// the token sequence from each start position.
	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	var out []string
	for canonical, forms := range t.synonyms {
		for _, form := range forms {
			if matchForm(tokens, positions, form) {
				out = append(out, canonical)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

func matchForm(tokens []string, positions map[string][]int, form string) bool {
	formTokens := Tokenize(form)
	if len(formTokens) == 0 {
		return false
	}
	starts, ok := positions[formTokens[0]]
	if !ok {
		return false
	}
	if len(formTokens) == 1 {
		return true
	}
	for _, start := range starts {
		if start+len(formTokens) > len(tokens) {
			continue
		}
		matched := true
		for j := 1; j < len(formTokens); j++ {
			if tokens[start+j] != formTokens[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// Tokenize lowercases the text and cuts it into tokens of letters, digits,
// and the symbol suffixes that distinguish skills like "c++" and "c#".
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
