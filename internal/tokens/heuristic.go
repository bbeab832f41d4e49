package tokens

import (
	"strings"
	"unicode"
)

// HeuristicCodec approximates token counts from word counts. It exists so
// chunking keeps working when a BPE encoding cannot be materialized
// (offline environments, unknown vocabularies).
type HeuristicCodec struct{}

// tokensPerWord is the rough English subword expansion factor.
const tokensPerWord = 1.33

// unit is one countable piece of text: a whitespace-delimited word or a
// single CJK rune. Count and Slice price units the same way, so a window
// cut by Slice never exceeds its width under Count.
type unit struct {
	text string
	cjk  bool
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r)
}

func heuristicUnits(text string) []unit {
	var units []unit
	var word []rune
	flush := func() {
		if len(word) > 0 {
			units = append(units, unit{text: string(word)})
			word = word[:0]
		}
	}
	for _, r := range text {
		switch {
		case isCJK(r):
			flush()
			units = append(units, unit{text: string(r), cjk: true})
		case unicode.IsSpace(r):
			flush()
		default:
			word = append(word, r)
		}
	}
	flush()
	return units
}

func (HeuristicCodec) Count(text string) int {
	if text == "" {
		return 0
	}
	words, cjk := 0, 0
	for _, u := range heuristicUnits(text) {
		if u.cjk {
			cjk++
		} else {
			words++
		}
	}
	n := int(float64(words)*tokensPerWord) + cjk
	if n < 1 {
		n = 1
	}
	return n
}

func (HeuristicCodec) Slice(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	units := heuristicUnits(text)
	if len(units) == 0 {
		return nil
	}

	var windows []string
	var b strings.Builder
	cost := 0.0
	prevWord := false
	flush := func() {
		if b.Len() > 0 {
			windows = append(windows, b.String())
			b.Reset()
			cost = 0
			prevWord = false
		}
	}
	for _, u := range units {
		c := 1.0
		if !u.cjk {
			c = tokensPerWord
		}
		if cost > 0 && cost+c > float64(width) {
			flush()
		}
		if prevWord && !u.cjk {
			b.WriteByte(' ')
		}
		b.WriteString(u.text)
		cost += c
		prevWord = !u.cjk
	}
	flush()
	return windows
}

func (HeuristicCodec) Name() string {
	return "heuristic"
}
