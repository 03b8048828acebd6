package agents

import (
	"strings"
	"unicode"
)

// sentence is one sentence of the document with its byte offset, so all
// scanners can report matches ordered by position.
type sentence struct {
	Text  string
	Start int
}

// splitSentences cuts text on ., ! and ? boundaries. Good enough for
// the heuristics here; no attempt at abbreviation handling.
func splitSentences(text string) []sentence {
	var out []sentence
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			raw := text[start : i+1]
			if s := strings.TrimSpace(raw); s != "" {
				out = append(out, sentence{Text: s, Start: start + leadingSpace(raw)})
			}
			start = i + 1
		}
	}
	if start < len(text) {
		raw := text[start:]
		if s := strings.TrimSpace(raw); s != "" {
			out = append(out, sentence{Text: s, Start: start + leadingSpace(raw)})
		}
	}
	return out
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t\n\r"))
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "has": {}, "have": {},
	"was": {}, "were": {}, "with": {}, "this": {}, "that": {}, "from": {},
	"they": {}, "will": {}, "would": {}, "there": {}, "their": {},
	"what": {}, "which": {}, "when": {}, "been": {}, "more": {},
	"also": {}, "into": {}, "than": {}, "then": {}, "them": {},
	"these": {}, "those": {}, "such": {}, "each": {}, "other": {},
	"about": {}, "after": {}, "before": {}, "between": {}, "during": {},
	"should": {}, "could": {}, "must": {}, "its": {}, "our": {}, "due": {},
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// stopwords and words shorter than three runes.
func tokenize(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		w := b.String()
		b.Reset()
		if len(w) < 3 {
			return
		}
		if _, skip := stopwords[w]; skip {
			return
		}
		out = append(out, w)
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return out
}

// tokenSet returns the distinct tokens of text.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range tokenize(text) {
		set[w] = struct{}{}
	}
	return set
}

// sharedTokens counts distinct tokens present in both texts.
func sharedTokens(a, b string) int {
	sa := tokenSet(a)
	n := 0
	for w := range tokenSet(b) {
		if _, ok := sa[w]; ok {
			n++
		}
	}
	return n
}

// clip bounds a snippet for storage and display.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > max/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
