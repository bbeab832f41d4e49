package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/briefd/briefd/internal/model"
)

const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *model.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// generate runs one model call, retrying transient backend failures and
// recording call latency.
func (p *Pipeline) generate(ctx context.Context, h *model.Handle, input string, params model.Params) (string, error) {
	var out string
	var lastErr error
	for attempt := range MaxRetries {
		start := time.Now()
		out, lastErr = h.Generate(ctx, input, params)
		if p.stats != nil {
			p.stats.Record(h.Info.Name, time.Since(start), lastErr == nil)
		}
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		if attempt == MaxRetries-1 {
			break
		}
		p.log.Warn("retryable model error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return strings.TrimSpace(out), lastErr
}
