package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Typed convenience wrappers over the base Get/Put contract. They hold no
// state of their own: every helper is read-modify-write on the resolved value.

// GetAs decodes the resolved value of key into T.
func GetAs[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var v T
	raw, ok := s.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("store: stored value does not decode, treating as absent")
		return v, false
	}
	return v, true
}

// Put marshals v and writes it under key.
func Put[T any](ctx context.Context, s *Store, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Error().Str("key", key).Err(err).Msg("store: value not marshalable, write dropped")
		return
	}
	s.Put(ctx, key, raw)
}

// ── Sequence helpers ─────────────────────────────────────────────────────────

// ListAdd appends item to the sequence stored under key.
func ListAdd[T any](ctx context.Context, s *Store, key string, item T) {
	list, _ := GetAs[[]T](ctx, s, key)
	Put(ctx, s, key, append(list, item))
}

// ListRemove deletes every element matching pred, returning how many went.
func ListRemove[T any](ctx context.Context, s *Store, key string, pred func(T) bool) int {
	list, ok := GetAs[[]T](ctx, s, key)
	if !ok {
		return 0
	}
	kept := list[:0]
	removed := 0
	for _, item := range list {
		if pred(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed > 0 {
		Put(ctx, s, key, kept)
	}
	return removed
}

// ListUpdate applies fn to every element matching pred, returning how many matched.
func ListUpdate[T any](ctx context.Context, s *Store, key string, pred func(T) bool, fn func(T) T) int {
	list, ok := GetAs[[]T](ctx, s, key)
	if !ok {
		return 0
	}
	updated := 0
	for i, item := range list {
		if pred(item) {
			list[i] = fn(item)
			updated++
		}
	}
	if updated > 0 {
		Put(ctx, s, key, list)
	}
	return updated
}

// ListClear writes an empty sequence under key.
func ListClear[T any](ctx context.Context, s *Store, key string) {
	Put(ctx, s, key, []T{})
}

// ── Record helpers ───────────────────────────────────────────────────────────

// RecordSetField sets a single field of the record stored under key.
func RecordSetField(ctx context.Context, s *Store, key, field string, value any) {
	RecordMerge(ctx, s, key, map[string]any{field: value})
}

// RecordMerge shallow-merges patch into the record stored under key.
// An absent or non-object value starts from an empty record.
func RecordMerge(ctx context.Context, s *Store, key string, patch map[string]any) {
	record, ok := GetAs[map[string]any](ctx, s, key)
	if !ok || record == nil {
		record = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		record[k] = v
	}
	Put(ctx, s, key, record)
}

// RecordReset writes the zero value of T under key.
func RecordReset[T any](ctx context.Context, s *Store, key string) {
	var zero T
	Put(ctx, s, key, zero)
}
