package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix namespaces the dead-letter list of each source queue (dlq:{queue}).
const DLQPrefix = "dlq:"

// DLQEntry is a job that exhausted its retries, parked for manual inspection.
// FailedAt is epoch milliseconds, like every other timestamp in this system.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	Attempts int             `json:"attempts"`
	FailedAt int64           `json:"failedAt"`
}

// sendToDLQ parks an exhausted job. Best-effort: a lost report job is
// recoverable (the snapshot stays in raz_history and can be re-sent), so a
// failure here only logs.
func sendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	entry := DLQEntry{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		Attempts: job.Attempts,
		FailedAt: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed, job lost")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed, job lost")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("dlq: job parked after exhausting retries")
}

// DLQLength reports how many jobs are parked for a queue. Surfaced by the
// health endpoint so a stuck SMTP relay shows up before anyone misses a
// feuille de caisse.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
