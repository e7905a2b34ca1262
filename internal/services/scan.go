package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
	"gorm.io/gorm"
)

// ScanPayload is one validated barcode capture. Location comes pre-validated
// from the client-side validator; it is stored for audit, never re-checked.
type ScanPayload struct {
	Barcode      string    `json:"barcode"`
	UserID       string    `json:"userId"`
	MaterialType string    `json:"materialType"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LocationName string    `json:"locationName"`
	ScannedAt    time.Time `json:"scannedAt"`
}

// ScanResult is what an accepted scan reports back to the client.
type ScanResult struct {
	PointsAwarded   int                   `json:"pointsAwarded"`
	Snapshot        models.LedgerSnapshot `json:"snapshot"`
	Streak          int                   `json:"streak"`
	NewAchievements []models.Achievement  `json:"newAchievements"`
}

// RecordScan is the single entry point for converting a scan into a point
// award: idempotency guard, ledger update, streak and achievement derivation
// run in one transaction, notifications fire after it commits.
func RecordScan(ctx context.Context, payload ScanPayload) (*ScanResult, error) {
	if payload.Barcode == "" {
		return nil, apperrors.BadRequest("Barcode is required")
	}
	points, ok := MaterialPoints(payload.MaterialType)
	if !ok {
		return nil, apperrors.BadRequest("Unknown material type: " + payload.MaterialType)
	}

	at := payload.ScannedAt
	if at.IsZero() {
		at = time.Now()
	}

	var result ScanResult
	var streakChanged bool
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Idempotency guard. The barcode is the primary key, so this insert
		// is the atomic check-and-set: a concurrent or repeated scan of the
		// same item fails here with a unique violation and nothing else runs.
		scan := models.ScanRecord{
			Barcode:      payload.Barcode,
			UserID:       payload.UserID,
			MaterialType: payload.MaterialType,
			Points:       points,
			Latitude:     payload.Latitude,
			Longitude:    payload.Longitude,
			LocationName: payload.LocationName,
			CreatedAt:    at,
		}
		if err := tx.Create(&scan).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateScan
			}
			return err
		}

		streak, changed, err := applyScanAward(tx, payload.UserID, points, at)
		if err != nil {
			return err
		}
		streakChanged = changed

		var ledger models.UserLedger
		if err := tx.First(&ledger, "user_id = ?", payload.UserID).Error; err != nil {
			return err
		}

		newAchievements, err := EvaluateAchievements(tx, payload.UserID, ledger.Snapshot())
		if err != nil {
			return err
		}

		result = ScanResult{
			PointsAwarded:   points,
			Snapshot:        ledger.Snapshot(),
			Streak:          streak,
			NewAchievements: newAchievements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Advisory side effects after commit; failures never undo the award.
	// A same-day scan leaves the streak where it was, so it must not
	// re-announce a milestone already hit today.
	if streakChanged && IsStreakMilestone(result.Streak) {
		Notify(payload.UserID, models.NotificationTypeStreak,
			fmt.Sprintf("You're on a %d-day recycling streak!", result.Streak))
	}
	NotifyNewAchievements(payload.UserID, result.NewAchievements)

	logger.Debug().
		Str("user_id", payload.UserID).
		Str("barcode", payload.Barcode).
		Int("points", points).
		Int("streak", result.Streak).
		Msg("scan accepted")

	return &result, nil
}

// applyScanAward folds the point award and the streak update into one
// conditional UPDATE. Points, level and scan count are SQL expressions over
// the stored row; the streak is computed from a read and guarded by using
// last_scan_date as an optimistic concurrency token, retrying if another
// writer for the same user got there first. The second return reports
// whether the streak value moved, so the caller can tell a fresh milestone
// from a same-day repeat.
func applyScanAward(tx *gorm.DB, userID string, points int, at time.Time) (int, bool, error) {
	for attempt := 0; attempt < 3; attempt++ {
		var ledger models.UserLedger
		if err := tx.First(&ledger, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, false, apperrors.NotFound("User ledger not found")
			}
			return 0, false, err
		}

		newStreak := NextStreak(ledger.Streak, ledger.LastScanDate, at)

		q := tx.Model(&models.UserLedger{}).Where("user_id = ?", userID)
		if ledger.LastScanDate == nil {
			q = q.Where("last_scan_date IS NULL")
		} else {
			q = q.Where("last_scan_date = ?", *ledger.LastScanDate)
		}

		res := q.Updates(map[string]interface{}{
			"points":         gorm.Expr("points + ?", points),
			"level":          gorm.Expr("(points + ?) / 100 + 1", points),
			"total_scans":    gorm.Expr("total_scans + 1"),
			"streak":         newStreak,
			"last_scan_date": at,
			"updated_at":     time.Now(),
		})
		if res.Error != nil {
			return 0, false, res.Error
		}
		if res.RowsAffected == 1 {
			return newStreak, newStreak != ledger.Streak, nil
		}
		// Token moved under us; reread and retry.
	}
	return 0, false, apperrors.Internal("Ledger contention, scan award could not be applied")
}
