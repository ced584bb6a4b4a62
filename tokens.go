// Tokenization is deliberately thin: every detector receives text that is
// already normalized (spec.md §1/§9 — stopwording, lemmatization, and
// casing are an outer collaborator's job). Grounded on
// original_source's streaming/utils/token_handler.py
// split_preprocessed_tokens, which does nothing more than split on
// whitespace and drop empties.
package streamsketch

import "strings"

// tokenize splits text on whitespace into non-empty tokens.
func tokenize(text string) []string {
	return strings.Fields(text)
}

// distinctTokens returns the set of distinct tokens in text, preserving
// first-seen order (useful for deterministic test fixtures).
func distinctTokens(text string) []string {
	fields := tokenize(text)
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// shingles produces overlapping k-token windows joined by a single space
// (spec.md §4.7). If k <= 1, shingles are the tokens themselves. If fewer
// than k tokens exist, the result is empty.
func shingles(text string, k int) []string {
	toks := tokenize(text)
	if k <= 1 {
		out := make([]string, len(toks))
		copy(out, toks)
		return out
	}
	if len(toks) < k {
		return nil
	}
	out := make([]string, 0, len(toks)-k+1)
	for i := 0; i+k <= len(toks); i++ {
		out = append(out, strings.Join(toks[i:i+k], " "))
	}
	return out
}
