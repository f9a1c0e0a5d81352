package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/worker"
)

// Health reports the state of both persistence tiers plus the report DLQ
// depth. The iPad app polls it at launch to decide between live mode and its
// offline queue, so the payload stays flat and credential-free.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		durable := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			durable = "indisponible"
		}

		fast := "ok"
		if rdb.Ping(ctx).Err() != nil {
			fast = "indisponible"
		}

		status := http.StatusOK
		if durable != "ok" || fast != "ok" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":       status == http.StatusOK,
			"postgres": durable,
			"redis":    fast,
		}
		if fast == "ok" {
			if n, err := worker.DLQLength(ctx, rdb, worker.QueueRAZReport); err == nil {
				body["rapportsEnEchec"] = n
			}
		}

		c.JSON(status, body)
	}
}
