package store

import (
	"context"
)

// Tier is one storage backend of the dual-tier store. Implementations swallow
// their backend's errors exactly once, at this boundary: a read that fails for
// any reason reports ok=false ("value absent"), a write that fails reports
// false. Nothing below this interface ever reaches a caller as an error —
// either tier may be slow, down, or missing without taking the register down.
type Tier interface {
	// TryGet returns the serialized envelope stored under key, if any.
	TryGet(ctx context.Context, key string) (raw string, ok bool)
	// TrySet stores the serialized envelope under key, reporting success.
	TrySet(ctx context.Context, key string, raw string) bool
	// TryDelete removes key, reporting success. Absent keys count as success.
	TryDelete(ctx context.Context, key string) bool
}
