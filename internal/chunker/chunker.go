// Package chunker packs text into token-budget-respecting chunks.
package chunker

import (
	"log/slog"
	"strings"

	"github.com/briefd/briefd/internal/sentence"
	"github.com/briefd/briefd/internal/tokens"
)

// Chunker splits text under a token budget using a tokenizer codec.
type Chunker struct {
	codec tokens.Codec
	log   *slog.Logger
}

// New creates a Chunker. A nil codec falls back to the word-count
// heuristic; a nil logger discards.
func New(codec tokens.Codec, log *slog.Logger) *Chunker {
	if codec == nil {
		codec = tokens.HeuristicCodec{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Chunker{codec: codec, log: log}
}

// PackSentences splits text into sentences and greedily packs them into
// chunks whose encoded token length stays within maxTokens. Sentences are
// never split across chunks; joining the chunks in order reproduces the
// original sentence sequence.
//
// A single sentence longer than the budget becomes its own over-budget
// chunk. It is logged, not truncated; generation-side truncation is the
// backstop for such chunks.
func (c *Chunker) PackSentences(text string, maxTokens int, lang sentence.Language) []string {
	if maxTokens <= 0 {
		return nil
	}
	// Zero sentences is not a dead end: punctuation-only or otherwise
	// unsegmentable text falls through to the window fallback below.
	sentences := sentence.Split(text, lang)

	var chunks []string
	var current []string
	currentTokens := 0

	for _, s := range sentences {
		sentTokens := c.codec.Count(s)
		if sentTokens > maxTokens {
			c.log.Warn("sentence exceeds token budget, emitting over-budget chunk",
				"sentence_tokens", sentTokens, "max_tokens", maxTokens)
		}
		if currentTokens+sentTokens > maxTokens && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{s}
			currentTokens = sentTokens
		} else {
			current = append(current, s)
			currentTokens += sentTokens
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	if len(chunks) == 0 && strings.TrimSpace(text) != "" {
		// Packing produced nothing usable; fall back to coarse
		// word-window slicing before declaring failure.
		c.log.Warn("sentence packing produced no chunks, using heuristic windows")
		return tokens.HeuristicCodec{}.Slice(text, maxTokens)
	}
	return chunks
}

// Windows slices text into raw token windows of at most maxTokens each,
// irrespective of sentence boundaries. Used for compressing an
// already-produced summary, where re-segmentation buys nothing.
func (c *Chunker) Windows(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		return nil
	}
	windows := c.codec.Slice(text, maxTokens)
	if len(windows) == 0 && strings.TrimSpace(text) != "" {
		c.log.Warn("token-window slicing produced no windows, using heuristic windows")
		return tokens.HeuristicCodec{}.Slice(text, maxTokens)
	}
	return windows
}

// Count reports the encoded token length of text under the active codec.
func (c *Chunker) Count(text string) int {
	return c.codec.Count(text)
}
