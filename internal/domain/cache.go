package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when nothing is cached under the requested key.
const ErrCacheMiss = CacheError("cache: key not found")

// QuestionCache holds a snapshot of the full question list.
// Implementations must treat the snapshot as opaque: a hit returns exactly
// what was stored, in the same order.
type QuestionCache interface {
	// GetQuestions returns the cached list or ErrCacheMiss.
	GetQuestions(ctx context.Context) ([]*Question, error)

	// SetQuestions replaces the cached list. A ttl of 0 keeps it until
	// Invalidate is called.
	SetQuestions(ctx context.Context, questions []*Question, ttl time.Duration) error

	// Invalidate drops the cached list. A missing entry is not an error.
	Invalidate(ctx context.Context) error

	// Ping checks that the cache backend is reachable.
	Ping(ctx context.Context) error
}
