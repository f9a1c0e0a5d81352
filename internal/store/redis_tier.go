package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisTier is the fast tier: a synchronous-feeling key-value backend holding
// serialized envelopes as plain strings. Values never expire — the register's
// working set is tiny and lifecycle is managed by RAZ, not by TTLs.
type RedisTier struct {
	rdb *redis.Client
}

func NewRedisTier(rdb *redis.Client) *RedisTier { return &RedisTier{rdb: rdb} }

func (t *RedisTier) TryGet(ctx context.Context, key string) (string, bool) {
	raw, err := t.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Str("key", key).Err(err).Msg("fast tier: read failed, treating as absent")
		}
		return "", false
	}
	return raw, true
}

func (t *RedisTier) TrySet(ctx context.Context, key string, raw string) bool {
	if err := t.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("fast tier: write failed")
		return false
	}
	return true
}

func (t *RedisTier) TryDelete(ctx context.Context, key string) bool {
	if err := t.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("fast tier: delete failed")
		return false
	}
	return true
}
