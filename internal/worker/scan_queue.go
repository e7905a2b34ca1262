package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
)

// QueueScanReplay holds scan payloads whose synchronous replay hit a
// transient backend failure. LPush + single BRPOP consumer keeps the replay
// FIFO in enqueue order, which the streak and achievement derivation depend
// on. Replaying an already-synced item is a no-op rejection at the
// idempotency guard, so the queue is safe to drain any number of times.
const QueueScanReplay = "jobs:scan_replay"

// EnqueueScan parks a scan payload for background replay.
func EnqueueScan(ctx context.Context, payload services.ScanPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return database.Redis.LPush(ctx, QueueScanReplay, data).Err()
}

// QueueDepth reports how many payloads are waiting for replay.
func QueueDepth(ctx context.Context) (int64, error) {
	return database.Redis.LLen(ctx, QueueScanReplay).Result()
}

// StartScanReplayWorker launches the single replay consumer. One consumer on
// purpose: FIFO order across queued payloads must match enqueue order.
func StartScanReplayWorker(ctx context.Context) {
	go runScanReplay(ctx)
	logger.Info().Msg("scan replay worker started")
}

func runScanReplay(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("scan replay worker shutting down")
			return
		default:
			// Blocking pop waits up to 5s then loops to check ctx
			result, err := database.Redis.BRPop(ctx, 5*time.Second, QueueScanReplay).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					logger.Warn().Err(err).Msg("scan replay pop failed")
					time.Sleep(time.Second)
				}
				continue
			}

			raw := result[1]
			if replayQueuedScan(ctx, raw) {
				// Transient failure: put the item back at the head so order
				// holds, then back off.
				if pushErr := database.Redis.RPush(ctx, QueueScanReplay, raw).Err(); pushErr != nil {
					logger.Error().Err(pushErr).Msg("failed to requeue scan")
				}
				time.Sleep(2 * time.Second)
			}
		}
	}
}

// replayQueuedScan replays one popped payload and reports whether it should
// go back on the queue. Malformed payloads and business rejections never
// succeed on retry, so only transient failures ask for a requeue.
func replayQueuedScan(ctx context.Context, raw string) bool {
	var payload services.ScanPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Error().Err(err).Str("payload", raw).Msg("dropping malformed queued scan")
		return false
	}

	if _, err := services.RecordScan(ctx, payload); err != nil {
		if apperrors.IsRejection(err) {
			// Duplicate or other business rejection: the item was already
			// synced or can never succeed. Drop it.
			logger.Debug().Err(err).Str("barcode", payload.Barcode).Msg("queued scan rejected")
			return false
		}
		return true
	}

	logger.Info().Str("barcode", payload.Barcode).Str("user_id", payload.UserID).Msg("queued scan replayed")
	return false
}
