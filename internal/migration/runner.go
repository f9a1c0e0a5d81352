// Package migration moves data the old register left in the fast tier into
// the structured tier, once. The run is gated by a persisted completion flag
// and must never block startup: every failure is logged and swallowed.
package migration

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/store"
)

// legacyKeys are the fast-tier keys the previous version persisted without a
// structured-tier counterpart. Keys absent from the fast tier are skipped.
var legacyKeys = []string{
	"settings.caisse",
	"settings.invoices",
	"settings.vendors",
	store.KeyCachedInvoices,
	store.KeyLastSyncTime,
	store.KeyProcessedInvoicesIDs,
	store.KeyPendingChecks,
	store.KeyCurrentCart,
	store.KeyPendingSales,
}

// Runner performs the one-time legacy transfer.
type Runner struct {
	fast    store.Tier
	durable store.Tier
	now     func() time.Time
}

func NewRunner(fast, durable store.Tier) *Runner {
	return &Runner{fast: fast, durable: durable, now: time.Now}
}

// RunOnce is idempotent and safe to call on every process start. Two
// concurrent startups may both observe "not done" and migrate twice — the
// transfer itself is a key-by-key copy, so repeating it is harmless.
func (r *Runner) RunOnce(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("migration: aborted, will retry next start")
		}
	}()

	if r.done(ctx) {
		return
	}

	migrated, failed := 0, 0
	for _, key := range legacyKeys {
		raw, ok := r.fast.TryGet(ctx, key)
		if !ok {
			continue
		}
		// Normalize before copying so legacy bare values land in the
		// settings table with proper envelope metadata.
		env := store.ParseEnvelope(raw)
		if r.durable.TrySet(ctx, key, env.Encode()) {
			migrated++
		} else {
			// Individual key failures do not abort the run.
			failed++
		}
	}

	r.markDone(ctx)
	log.Info().Int("migrated", migrated).Int("failed", failed).Msg("migration: legacy transfer complete")
}

func (r *Runner) done(ctx context.Context) bool {
	raw, ok := r.durable.TryGet(ctx, store.KeyMigrationDone)
	if !ok {
		return false
	}
	var flag bool
	if err := json.Unmarshal(store.ParseEnvelope(raw).Data, &flag); err != nil {
		return false
	}
	return flag
}

func (r *Runner) markDone(ctx context.Context) {
	env := store.NewEnvelope(json.RawMessage("true"), r.now().UnixMilli())
	if !r.durable.TrySet(ctx, store.KeyMigrationDone, env.Encode()) {
		log.Warn().Msg("migration: completion flag not persisted, run will repeat next start")
	}
}
