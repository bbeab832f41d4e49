package pipeline

import "errors"

// Validation and stage-failure sentinels. Each stage error names the
// macro-stage that produced nothing usable; callers match with errors.Is.
var (
	ErrEmptyText         = errors.New("input text is empty")
	ErrTextTooShort      = errors.New("input text is too short for meaningful summarization")
	ErrTextTooLong       = errors.New("input text exceeds the maximum length")
	ErrMaxSentencesRange = errors.New("max_sentences must be between 1 and 50")
	ErrModelRequired     = errors.New("model name is required")

	ErrNoChunks           = errors.New("chunking produced no usable chunks")
	ErrNoPartialSummaries = errors.New("summarization produced no partial summaries")
	ErrNoSentences        = errors.New("formatting produced no sentences in final summary")
)

// IsValidationError reports whether err is a caller mistake rather than a
// processing failure. The API layer maps these to 400s.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrTextTooShort) ||
		errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrMaxSentencesRange) ||
		errors.Is(err, ErrModelRequired)
}
