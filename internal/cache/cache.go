// Package cache provides a bounded LRU store for summarization results.
package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is a fixed-capacity LRU keyed by request fingerprint.
type Store[V any] struct {
	lru *lru.Cache[string, V]
}

func New[V any](size int) (*Store[V], error) {
	l, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Store[V]{lru: l}, nil
}

func (s *Store[V]) Get(key string) (V, bool) {
	return s.lru.Get(key)
}

func (s *Store[V]) Add(key string, v V) {
	s.lru.Add(key, v)
}

func (s *Store[V]) Len() int {
	return s.lru.Len()
}

// Key fingerprints the request parts into a stable cache key.
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return fmt.Sprintf("%x", h[:])
}
