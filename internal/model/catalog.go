package model

import "github.com/briefd/briefd/internal/sentence"

// Supported model identifiers.
const (
	BARTLargeCNN = "facebook/bart-large-cnn"
	T5Large      = "t5-large"
	ChineseBART  = "uer/bart-base-chinese-cluecorpussmall"
)

// Params are the generation parameters for one summarization call.
type Params struct {
	MaxLength   int
	MinLength   int
	DoSample    bool
	TopP        float64
	Temperature float64
}

// Info describes a supported summarization model: its context budget,
// tokenizer encoding and per-pass generation presets.
type Info struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Description string            `json:"description"`
	BestFor     string            `json:"best_for"`
	Language    sentence.Language `json:"language"`

	// MaxInputTokens is the model context budget. Chunking reserves
	// specialTokenMargin below it for special tokens.
	MaxInputTokens int    `json:"max_input_tokens"`
	Encoding       string `json:"-"`

	ChunkParams  Params `json:"-"`
	ReduceParams Params `json:"-"`
}

// specialTokenMargin is subtracted from the context budget during
// chunking so BOS/EOS and similar markers never push a chunk over.
const specialTokenMargin = 32

// ChunkBudget is the per-chunk token budget for sentence packing.
func (i Info) ChunkBudget() int {
	return i.MaxInputTokens - specialTokenMargin
}

var catalog = map[string]Info{
	BARTLargeCNN: {
		Name:           BARTLargeCNN,
		DisplayName:    "BART-CNN",
		Description:    "High-quality CNN-style summarization",
		BestFor:        "News articles, formal documents",
		Language:       sentence.English,
		MaxInputTokens: 1024,
		Encoding:       "cl100k_base",
		ChunkParams:    Params{MaxLength: 150, MinLength: 40, DoSample: true, TopP: 0.9, Temperature: 0.8},
		ReduceParams:   Params{MaxLength: 150, MinLength: 50, DoSample: true, TopP: 0.9, Temperature: 0.8},
	},
	T5Large: {
		Name:           T5Large,
		DisplayName:    "T5-Large",
		Description:    "Google's T5 model for text-to-text tasks",
		BestFor:        "Diverse content types",
		Language:       sentence.English,
		MaxInputTokens: 1024,
		Encoding:       "cl100k_base",
		ChunkParams:    Params{MaxLength: 200, MinLength: 25},
		ReduceParams:   Params{MaxLength: 200, MinLength: 25},
	},
	ChineseBART: {
		Name:           ChineseBART,
		DisplayName:    "Chinese BART",
		Description:    "Chinese BART model trained on CLUE corpus",
		BestFor:        "Chinese text processing",
		Language:       sentence.Chinese,
		MaxInputTokens: 800,
		Encoding:       "cl100k_base",
		ChunkParams:    Params{MaxLength: 150, MinLength: 30},
		ReduceParams:   Params{MaxLength: 150, MinLength: 30},
	},
}

// Lookup returns catalog info for a model name.
func Lookup(name string) (Info, bool) {
	info, ok := catalog[name]
	return info, ok
}

// Available lists the catalog models for a language.
func Available(lang sentence.Language) []Info {
	var out []Info
	for _, name := range []string{BARTLargeCNN, T5Large, ChineseBART} {
		if catalog[name].Language == lang {
			out = append(out, catalog[name])
		}
	}
	return out
}

// DefaultFor returns the default model name for a language.
func DefaultFor(lang sentence.Language) string {
	if lang == sentence.Chinese {
		return ChineseBART
	}
	return BARTLargeCNN
}
