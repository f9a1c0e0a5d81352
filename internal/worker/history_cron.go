package worker

// history_cron.go
// Background goroutine that periodically prunes the RAZ history beyond the
// configured retention, so years of snapshots never bloat the database on an
// iPad that is almost never serviced.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
)

const historyTickInterval = 24 * time.Hour

// StartHistoryCron launches a goroutine that prunes old RAZ entries once at
// startup and then daily. It respects the context for graceful shutdown.
func StartHistoryCron(ctx context.Context, historySvc service.HistoryService, keepLast int) {
	go func() {
		ticker := time.NewTicker(historyTickInterval)
		defer ticker.Stop()

		log.Info().Int("keep_last", keepLast).Msg("history_cron: started")
		prune(ctx, historySvc, keepLast)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("history_cron: shutting down")
				return
			case <-ticker.C:
				prune(ctx, historySvc, keepLast)
			}
		}
	}()
}

func prune(ctx context.Context, historySvc service.HistoryService, keepLast int) {
	if _, err := historySvc.CleanOldHistory(ctx, keepLast); err != nil {
		log.Error().Err(err).Msg("history_cron: prune failed")
	}
}
