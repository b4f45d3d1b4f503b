package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. ulid.Make is safe for concurrent use
// and monotonic within the same millisecond.
func NewULID() string {
	return ulid.Make().String()
}

// RequestIDOrNew returns candidate when it is a well-formed ULID and a fresh
// ULID otherwise.
func RequestIDOrNew(candidate string) string {
	if candidate != "" {
		if id, err := ulid.ParseStrict(candidate); err == nil {
			return id.String()
		}
	}
	return NewULID()
}
