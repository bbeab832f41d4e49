// Package keywords ranks the most salient terms of a document using
// term-frequency scoring with language-specific tokenization and
// stopword filtering.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"github.com/briefd/briefd/internal/sentence"
)

// Extract returns up to topN keywords for text, ordered by score.
func Extract(text string, lang sentence.Language, topN int) []string {
	if topN <= 0 {
		return nil
	}

	var terms []string
	if lang == sentence.Chinese {
		terms = tokenizeHan(text)
	} else {
		terms = tokenizeLatin(text)
	}
	if len(terms) == 0 {
		return nil
	}

	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}

	type scored struct {
		term  string
		score float64
	}
	ranked := make([]scored, 0, len(counts))
	total := float64(len(terms))
	for term, n := range counts {
		// Term frequency weighted by term length: longer terms carry
		// more signal than high-frequency short ones.
		w := float64(n) / total * (1 + 0.1*float64(len([]rune(term))))
		ranked = append(ranked, scored{term: term, score: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	out := make([]string, topN)
	for i := range out {
		out[i] = ranked[i].term
	}
	return out
}

// tokenizeLatin lowercases, splits on non-letter/digit runes and drops
// stopwords and single-character terms.
func tokenizeLatin(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var terms []string
	for _, f := range fields {
		if len(f) < 2 || englishStopwords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// tokenizeHan emits overlapping Han bigrams plus embedded Latin/digit
// words. Without a dictionary segmenter, bigrams are the standard
// approximation for Chinese term extraction.
func tokenizeHan(text string) []string {
	var terms []string
	var hanRun []rune
	var latin strings.Builder

	flushHan := func() {
		for i := 0; i+1 < len(hanRun); i++ {
			bg := string(hanRun[i : i+2])
			if chineseStopwords[string(hanRun[i])] || chineseStopwords[string(hanRun[i+1])] {
				continue
			}
			terms = append(terms, bg)
		}
		hanRun = hanRun[:0]
	}
	flushLatin := func() {
		if w := strings.ToLower(latin.String()); len(w) >= 2 && !englishStopwords[w] {
			terms = append(terms, w)
		}
		latin.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushLatin()
			hanRun = append(hanRun, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushHan()
			latin.WriteRune(r)
		default:
			flushHan()
			flushLatin()
		}
	}
	flushHan()
	flushLatin()
	return terms
}
