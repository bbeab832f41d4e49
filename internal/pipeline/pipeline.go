// Package pipeline orchestrates multi-pass document summarization:
// chunk the input under the model's token budget, summarize each chunk,
// recombine, optionally compress with a second pass, and format the
// result to the requested sentence count.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/briefd/briefd/internal/chunker"
	"github.com/briefd/briefd/internal/keywords"
	"github.com/briefd/briefd/internal/model"
	"github.com/briefd/briefd/internal/sentence"
)

// Text processing limits, matching the catalog's intended use.
const (
	MinTextLength = 50
	MaxTextLength = 100000

	MinSentences = 1
	MaxSentences = 50

	// Chunks shorter than this many tokens are noise, not worth a
	// model call.
	minChunkTokens = 10
)

// Options tune pipeline execution.
type Options struct {
	// MaxConcurrentChunks bounds parallel chunk summarization.
	MaxConcurrentChunks int
	// KeywordCount is how many keywords to extract; 0 disables.
	KeywordCount int
}

func DefaultOptions() Options {
	return Options{
		MaxConcurrentChunks: 4,
		KeywordCount:        15,
	}
}

// Request is one summarization call.
type Request struct {
	Text         string
	MaxSentences int
	Model        string
	Language     sentence.Language

	// OnProgress, when set, is called after each chunk finishes.
	OnProgress func(done, total int)
}

// Result is the pipeline's externally visible artifact.
type Result struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords,omitempty"`

	Model        string `json:"model"`
	Chunks       int    `json:"chunks"`
	FailedChunks int    `json:"failed_chunks"`
	Reduced      bool   `json:"reduced"`
	Cached       bool   `json:"cached,omitempty"`
}

// Pipeline runs summarization requests against cached model handles.
type Pipeline struct {
	models model.Loader
	stats  *model.CallStats
	log    *slog.Logger
	opts   Options
}

// New creates a Pipeline. stats may be nil to disable latency tracking.
func New(models model.Loader, stats *model.CallStats, log *slog.Logger, opts Options) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.MaxConcurrentChunks <= 0 {
		opts.MaxConcurrentChunks = 4
	}
	return &Pipeline{models: models, stats: stats, log: log, opts: opts}
}

// Validate checks the request without doing any model work.
func (p *Pipeline) Validate(req Request) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return ErrEmptyText
	}
	if n := utf8.RuneCountInString(text); n < MinTextLength {
		return fmt.Errorf("%w (minimum %d characters)", ErrTextTooShort, MinTextLength)
	} else if n > MaxTextLength {
		return fmt.Errorf("%w of %d characters", ErrTextTooLong, MaxTextLength)
	}
	if req.MaxSentences < MinSentences || req.MaxSentences > MaxSentences {
		return fmt.Errorf("%w, got %d", ErrMaxSentencesRange, req.MaxSentences)
	}
	if strings.TrimSpace(req.Model) == "" {
		return ErrModelRequired
	}
	return nil
}

// Summarize runs the full pipeline:
// validate, load model, chunk, summarize chunks, combine, maybe reduce,
// format.
func (p *Pipeline) Summarize(ctx context.Context, req Request) (Result, error) {
	if err := p.Validate(req); err != nil {
		return Result{}, err
	}
	text := strings.TrimSpace(req.Text)
	log := p.log.With("model", req.Model, "language", req.Language)

	h, err := p.models.Get(ctx, req.Model)
	if err != nil {
		return Result{}, fmt.Errorf("load model %q: %w", req.Model, err)
	}

	ch := chunker.New(h.Codec, p.log)
	budget := h.Info.ChunkBudget()
	chunks := ch.PackSentences(text, budget, req.Language)
	if len(chunks) == 0 {
		return Result{}, ErrNoChunks
	}
	log.Info("chunked input", "chunks", len(chunks), "budget", budget)

	partials, failed := p.summarizeChunks(ctx, h, ch, chunks, req.OnProgress)
	if len(partials) == 0 {
		if failed > 0 {
			return Result{}, fmt.Errorf("%w (%d of %d chunks failed)", ErrNoPartialSummaries, failed, len(chunks))
		}
		return Result{}, ErrNoPartialSummaries
	}

	combined, reduced := p.reduce(ctx, h, ch, partials, budget, log)

	summary, err := format(combined, req.MaxSentences, req.Language)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Summary:      summary,
		Model:        req.Model,
		Chunks:       len(chunks),
		FailedChunks: failed,
		Reduced:      reduced,
	}
	if p.opts.KeywordCount > 0 {
		res.Keywords = keywords.Extract(text, req.Language, p.opts.KeywordCount)
	}
	return res, nil
}

// summarizeChunks runs one model call per chunk with bounded concurrency.
// Partials come back in chunk order regardless of completion order.
// Failing or too-short chunks are skipped, never fatal here.
func (p *Pipeline) summarizeChunks(ctx context.Context, h *model.Handle, ch *chunker.Chunker, chunks []string, onProgress func(done, total int)) ([]string, int) {
	type chunkResult struct {
		idx     int
		summary string
		failed  bool
	}
	results := make(chan chunkResult, len(chunks))
	sem := make(chan struct{}, p.opts.MaxConcurrentChunks)

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(i int, chunk string) {
			defer func() { <-sem }()

			if n := ch.Count(chunk); n < minChunkTokens {
				p.log.Debug("skipping chunk below noise floor", "chunk", i, "tokens", n)
				results <- chunkResult{idx: i}
				return
			}

			out, err := p.generate(ctx, h, chunk, h.Info.ChunkParams)
			if err != nil {
				p.log.Warn("chunk summarization failed, skipping", "chunk", i, "error", err)
				results <- chunkResult{idx: i, failed: true}
				return
			}
			if out == "" {
				p.log.Warn("chunk produced empty summary, skipping", "chunk", i)
				results <- chunkResult{idx: i, failed: true}
				return
			}
			results <- chunkResult{idx: i, summary: out}
		}(i, chunk)
	}

	ordered := make([]string, len(chunks))
	failed := 0
	for done := range len(chunks) {
		r := <-results
		if r.failed {
			failed++
		}
		ordered[r.idx] = r.summary
		if onProgress != nil {
			onProgress(done+1, len(chunks))
		}
	}

	var partials []string
	for _, s := range ordered {
		if s != "" {
			partials = append(partials, s)
		}
	}
	return partials, failed
}

// reduce joins the partials and, when the result still exceeds the token
// budget, compresses it with one more summarization pass. The second pass
// is best-effort: on failure the uncompressed combination is returned.
func (p *Pipeline) reduce(ctx context.Context, h *model.Handle, ch *chunker.Chunker, partials []string, budget int, log *slog.Logger) (string, bool) {
	combined := strings.Join(partials, " ")
	if ch.Count(combined) <= budget {
		return combined, false
	}

	log.Info("combined summary over budget, running second pass",
		"tokens", ch.Count(combined), "budget", budget)

	windows := ch.Windows(combined, budget)
	if len(windows) == 0 {
		return combined, false
	}
	var compressed []string
	for i, w := range windows {
		out, err := p.generate(ctx, h, w, h.Info.ReduceParams)
		if err != nil || out == "" {
			log.Warn("second-pass summarization failed, keeping uncompressed summary",
				"window", i, "error", err)
			return combined, false
		}
		compressed = append(compressed, out)
	}
	return strings.Join(compressed, " "), true
}

// format splits the summary into at most maxSentences sentences and
// renders either plain prose or a Markdown bullet list.
func format(summary string, maxSentences int, lang sentence.Language) (string, error) {
	sentences := sentence.Split(summary, lang)
	if len(sentences) == 0 {
		return "", ErrNoSentences
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	if len(sentences) == 1 {
		return sentences[0], nil
	}
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(s)
	}
	return b.String(), nil
}
