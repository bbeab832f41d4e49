// Package sentence splits text into sentence units using punctuation rules.
package sentence

import "strings"

// Language selects the sentence-boundary rules.
type Language string

const (
	English Language = "english"
	Chinese Language = "chinese"
)

// ParseLanguage maps a user-supplied language string to a Language.
// Unknown values default to English.
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(Chinese)) {
		return Chinese
	}
	return English
}

// Split breaks text into trimmed, non-empty sentences.
//
// English mode splits at whitespace following '.', '!' or '?', keeping the
// punctuation attached to its sentence. Chinese mode splits on the
// full-width marks 。！？ and discards the mark itself.
func Split(text string, lang Language) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if lang == Chinese {
		return splitCJK(text)
	}
	return splitLatin(text)
}

func splitLatin(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Boundary only when the punctuation is followed by whitespace.
		if i+1 < len(runes) && isSpace(runes[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func splitCJK(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '。' || r == '！' || r == '？'
	})
	var sentences []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
