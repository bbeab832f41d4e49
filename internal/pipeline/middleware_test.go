package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/briefd/briefd/internal/cache"
	"github.com/briefd/briefd/internal/model"
	"github.com/briefd/briefd/internal/sentence"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestChainOrdering(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next Func) Func {
			return func(ctx context.Context, req Request) (Result, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}
	core := func(context.Context, Request) (Result, error) {
		order = append(order, "core")
		return Result{}, nil
	}

	f := Chain(core, mw("outer"), mw("inner"))
	if _, err := f(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer", "inner", "core"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestWithValidationBlocksBadRequests(t *testing.T) {
	p, _ := testPipeline(t, 0, mockSummary)
	called := false
	f := Chain(func(context.Context, Request) (Result, error) {
		called = true
		return Result{}, nil
	}, WithValidation(p))

	_, err := f(context.Background(), Request{Text: ""})
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("error = %v, want ErrEmptyText", err)
	}
	if called {
		t.Error("invalid request must not reach downstream")
	}
}

func TestWithCache(t *testing.T) {
	store, err := cache.New[Result](10)
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	f := Chain(func(context.Context, Request) (Result, error) {
		calls++
		return Result{Summary: "cached output"}, nil
	}, WithCache(store))

	req := Request{Text: "same text", Model: model.BARTLargeCNN, MaxSentences: 5, Language: sentence.English}

	first, err := f(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first call should not be cached")
	}

	second, err := f(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second call should be served from cache")
	}
	if second.Summary != "cached output" {
		t.Errorf("cached summary = %q", second.Summary)
	}
	if calls != 1 {
		t.Errorf("core invoked %d times, want 1", calls)
	}

	// A different parameter set misses.
	req.MaxSentences = 6
	if _, err := f(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("core invoked %d times after parameter change, want 2", calls)
	}
}

func TestWithCacheDoesNotStoreFailures(t *testing.T) {
	store, err := cache.New[Result](10)
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	f := Chain(func(context.Context, Request) (Result, error) {
		calls++
		return Result{}, ErrNoChunks
	}, WithCache(store))

	req := Request{Text: "failing text", Model: model.BARTLargeCNN, MaxSentences: 5}
	for range 2 {
		if _, err := f(context.Background(), req); !errors.Is(err, ErrNoChunks) {
			t.Fatalf("error = %v, want ErrNoChunks", err)
		}
	}
	if calls != 2 {
		t.Errorf("failed results must not be cached, core invoked %d times", calls)
	}
}

func TestWithTimingPassesThrough(t *testing.T) {
	f := Chain(func(context.Context, Request) (Result, error) {
		return Result{Summary: "ok"}, nil
	}, WithTiming(discardLogger()))

	res, err := f(context.Background(), Request{})
	if err != nil || res.Summary != "ok" {
		t.Fatalf("got (%v, %v)", res, err)
	}
}

func TestWithMemoryGuardPassesThrough(t *testing.T) {
	// A one-byte threshold forces the collection path; the request
	// must still run.
	f := Chain(func(context.Context, Request) (Result, error) {
		return Result{Summary: "ok"}, nil
	}, WithMemoryGuard(1, discardLogger()))

	res, err := f(context.Background(), Request{})
	if err != nil || res.Summary != "ok" {
		t.Fatalf("got (%v, %v)", res, err)
	}
}
