package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/briefd/briefd/internal/tokens"
)

// Handle is a loaded model: catalog info, tokenizer codec and backend.
type Handle struct {
	Info    Info
	Codec   tokens.Codec
	backend Backend
}

// NewHandle builds a handle directly, bypassing the cache. Intended for
// tests and embedding.
func NewHandle(info Info, codec tokens.Codec, backend Backend) *Handle {
	if codec == nil {
		codec = tokens.HeuristicCodec{}
	}
	return &Handle{Info: info, Codec: codec, backend: backend}
}

// Generate runs one summarization call against the handle's model.
func (h *Handle) Generate(ctx context.Context, input string, p Params) (string, error) {
	return h.backend.Generate(ctx, h.Info.Name, input, p)
}

// Loader resolves a model name to a usable handle.
type Loader interface {
	Get(ctx context.Context, name string) (*Handle, error)
}

// Cache memoizes handle construction per model name. Tokenizer setup is
// the expensive part (BPE rank tables), so repeated requests reuse it.
// Safe for concurrent use; a duplicate load under contention is wasteful
// but harmless (last writer wins).
type Cache struct {
	mu      sync.RWMutex
	handles map[string]*Handle
	backend Backend
	log     *slog.Logger
}

func NewCache(backend Backend, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		handles: make(map[string]*Handle),
		backend: backend,
		log:     log,
	}
}

// Get returns a cached handle or loads one.
func (c *Cache) Get(ctx context.Context, name string) (*Handle, error) {
	c.mu.RLock()
	h, ok := c.handles[name]
	c.mu.RUnlock()
	if ok {
		return h, nil
	}

	info, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown model %q", name)
	}

	codec, err := tokens.NewBPECodec(info.Encoding)
	if err != nil {
		// Counting still has to work; chunk with the word heuristic.
		c.log.Warn("bpe codec unavailable, using heuristic token counts",
			"model", name, "error", err)
		h = NewHandle(info, tokens.HeuristicCodec{}, c.backend)
	} else {
		h = NewHandle(info, codec, c.backend)
	}

	c.mu.Lock()
	if existing, ok := c.handles[name]; ok {
		h = existing
	} else {
		c.handles[name] = h
	}
	c.mu.Unlock()

	c.log.Info("model handle loaded", "model", name, "codec", h.Codec.Name())
	return h, nil
}

// Len reports the number of cached handles.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}
