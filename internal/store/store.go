// Package store implements the dual-tier key-value layer of the register:
// a fast tier (Redis) read first for immediate availability, and a structured
// tier (the settings table) acting as the durable source of truth. The two
// tiers are independently writable; this package arbitrates conflicts by
// envelope timestamp and keeps them convergent by mirroring the winner.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Store exposes the per-key read/write contract over both tiers plus an
// in-memory resolved copy, so callers always see a value even when both
// backends are unavailable.
type Store struct {
	fast    Tier
	durable Tier
	now     func() time.Time

	mu  sync.RWMutex
	mem map[string]Envelope
}

func New(fast, durable Tier) *Store {
	return &Store{
		fast:    fast,
		durable: durable,
		now:     time.Now,
		mem:     make(map[string]Envelope),
	}
}

// Fast returns the fast tier for callers that manage raw fast-tier keys
// directly (invoice cache clearing during RAZ).
func (s *Store) Fast() Tier { return s.fast }

// Get returns the resolved value for key. The first access of a key runs the
// full two-tier reconciliation; later accesses are served from memory.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	s.mu.RLock()
	env, hit := s.mem[key]
	s.mu.RUnlock()
	if hit {
		return env.Data, true
	}

	env, ok := s.Reconcile(ctx, key)
	if !ok {
		return nil, false
	}
	return env.Data, true
}

// Put updates the in-memory state first — the caller-visible value must never
// be lost even if both tiers fail — then mirrors the fresh envelope to both.
func (s *Store) Put(ctx context.Context, key string, data json.RawMessage) {
	env := NewEnvelope(data, s.now().UnixMilli())

	s.mu.Lock()
	s.mem[key] = env
	s.mu.Unlock()

	raw := env.Encode()
	fastOK := s.fast.TrySet(ctx, key, raw)
	durableOK := s.durable.TrySet(ctx, key, raw)
	if !fastOK || !durableOK {
		log.Warn().Str("key", key).
			Bool("fast", fastOK).Bool("durable", durableOK).
			Msg("store: write not persisted on every tier")
	}
}

// Forget drops the in-memory copy of key, forcing the next Get to reconcile
// from the tiers again.
func (s *Store) Forget(key string) {
	s.mu.Lock()
	delete(s.mem, key)
	s.mu.Unlock()
}

// Delete removes key everywhere: memory and both tiers. Tier failures are
// tolerated the same way writes are.
func (s *Store) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.mem, key)
	s.mu.Unlock()

	fastOK := s.fast.TryDelete(ctx, key)
	durableOK := s.durable.TryDelete(ctx, key)
	if !fastOK || !durableOK {
		log.Warn().Str("key", key).
			Bool("fast", fastOK).Bool("durable", durableOK).
			Msg("store: delete not applied on every tier")
	}
}

// Reconcile resolves key across both tiers and converges them on the winner:
//
//  1. read both tiers, tolerating either failing (absent);
//  2. normalize raw values to envelope shape (legacy values get timestamp 0);
//  3. both present: the newer timestamp wins, the structured tier wins ties
//     so a stale fast-tier copy can never re-apply itself;
//  4. one present: use it;
//  5. structured winner strictly newer: mirror it down to the fast tier;
//  6. fast winner strictly newer: mirror it up to the structured tier;
//  7. structured tier empty: seed it from the winner;
//  8. publish the resolved envelope to memory — callers never see the loser.
func (s *Store) Reconcile(ctx context.Context, key string) (Envelope, bool) {
	fastRaw, fastOK := s.fast.TryGet(ctx, key)
	durableRaw, durableOK := s.durable.TryGet(ctx, key)

	if !fastOK && !durableOK {
		return Envelope{}, false
	}

	var winner Envelope
	switch {
	case fastOK && durableOK:
		fastEnv := ParseEnvelope(fastRaw)
		durableEnv := ParseEnvelope(durableRaw)
		if durableEnv.Timestamp >= fastEnv.Timestamp {
			winner = durableEnv
			if durableEnv.Timestamp > fastEnv.Timestamp {
				s.fast.TrySet(ctx, key, winner.Encode())
			}
		} else {
			winner = fastEnv
			s.durable.TrySet(ctx, key, winner.Encode())
		}
	case durableOK:
		winner = ParseEnvelope(durableRaw)
		s.fast.TrySet(ctx, key, winner.Encode())
	default: // fast only — seed the structured tier
		winner = ParseEnvelope(fastRaw)
		s.durable.TrySet(ctx, key, winner.Encode())
	}

	s.mu.Lock()
	s.mem[key] = winner
	s.mu.Unlock()
	return winner, true
}
