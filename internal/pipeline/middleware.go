package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/briefd/briefd/internal/cache"
)

// Func is the summarization call signature middleware wraps.
type Func func(ctx context.Context, req Request) (Result, error)

// Middleware wraps a Func with cross-cutting behavior.
type Middleware func(Func) Func

// Chain composes middleware around f; the first middleware listed is the
// outermost. The intended ordering is
// WithValidation -> WithTiming -> WithMemoryGuard -> WithCache -> core.
func Chain(f Func, mw ...Middleware) Func {
	for i := len(mw) - 1; i >= 0; i-- {
		f = mw[i](f)
	}
	return f
}

// WithValidation rejects bad requests before any downstream work.
func WithValidation(p *Pipeline) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, req Request) (Result, error) {
			if err := p.Validate(req); err != nil {
				return Result{}, err
			}
			return next(ctx, req)
		}
	}
}

// WithTiming logs request duration and outcome.
func WithTiming(log *slog.Logger) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, req Request) (Result, error) {
			start := time.Now()
			res, err := next(ctx, req)
			attrs := []any{
				"model", req.Model,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				log.Warn("summarization failed", append(attrs, "error", err)...)
			} else {
				log.Info("summarization complete", append(attrs,
					"chunks", res.Chunks, "reduced", res.Reduced, "cached", res.Cached)...)
			}
			return res, err
		}
	}
}

// WithMemoryGuard nudges the runtime to collect when the heap crosses the
// threshold before a request runs. Requests are never rejected; chunked
// processing keeps peak usage bounded.
func WithMemoryGuard(maxHeapBytes uint64, log *slog.Logger) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, req Request) (Result, error) {
			if maxHeapBytes > 0 {
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				if ms.HeapAlloc > maxHeapBytes {
					log.Warn("heap above threshold, forcing collection",
						"heap_alloc", ms.HeapAlloc, "threshold", maxHeapBytes)
					runtime.GC()
				}
			}
			return next(ctx, req)
		}
	}
}

// WithCache serves repeated requests from an LRU keyed by the request
// fingerprint. Hits are marked Cached.
func WithCache(store *cache.Store[Result]) Middleware {
	return func(next Func) Func {
		return func(ctx context.Context, req Request) (Result, error) {
			key := cacheKey(req)
			if res, ok := store.Get(key); ok {
				res.Cached = true
				return res, nil
			}
			res, err := next(ctx, req)
			if err == nil {
				store.Add(key, res)
			}
			return res, err
		}
	}
}

func cacheKey(req Request) string {
	return cache.Key(req.Text, req.Model, string(req.Language), strconv.Itoa(req.MaxSentences))
}
