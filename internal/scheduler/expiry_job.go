package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/siba18k/adbeam-rewards-backend/internal/config"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
)

// Start schedules the voucher expiry sweep. The sweep is advisory tidiness:
// redemption checks expiry on its own conditional update, so a missed run
// never lets an expired voucher through.
func Start() *cron.Cron {
	c := cron.New()

	schedule := config.AppConfig.ExpirySweepSchedule
	if _, err := c.AddFunc(schedule, sweepVouchers); err != nil {
		logger.Fatal().Err(err).Str("schedule", schedule).Msg("invalid expiry sweep schedule")
	}

	c.Start()
	logger.Info().Str("schedule", schedule).Msg("voucher expiry sweep scheduled")
	return c
}

func sweepVouchers() {
	n, err := services.SweepExpiredVouchers()
	if err != nil {
		logger.Error().Err(err).Msg("voucher expiry sweep failed")
		return
	}
	if n > 0 {
		logger.Info().Int64("expired", n).Msg("voucher expiry sweep complete")
	}
}
