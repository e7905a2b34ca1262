package services

import (
	"errors"
	"time"

	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"gorm.io/gorm"
)

// EvaluateAchievements checks the static catalog against the user's ledger
// snapshot and awards every definition whose metric meets its threshold and
// is not already earned. Returns only the newly earned definitions.
//
// Idempotent by construction: already-earned ids are skipped up front, and
// the composite primary key on user_achievements turns a concurrent double
// award into a unique violation that is treated as "already earned".
//
// Bonus points go through the ledger in the same transaction, and this
// function runs exactly once per originating scan; the bonus never triggers a
// second evaluation pass.
func EvaluateAchievements(tx *gorm.DB, userID string, snapshot models.LedgerSnapshot) ([]models.Achievement, error) {
	var earnedIDs []string
	if err := tx.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &earnedIDs).Error; err != nil {
		return nil, err
	}

	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var catalog []models.Achievement
	if err := tx.Find(&catalog).Error; err != nil {
		return nil, err
	}

	var newlyEarned []models.Achievement
	bonus := 0

	for _, def := range catalog {
		if earned[def.ID] {
			continue
		}

		var metric int
		switch def.Type {
		case models.AchievementTypeScans:
			metric = snapshot.TotalScans
		case models.AchievementTypePoints:
			metric = snapshot.Points
		case models.AchievementTypeLevel:
			metric = snapshot.Level
		default:
			continue
		}

		if metric < def.Threshold {
			continue
		}

		ua := models.UserAchievement{
			UserID:        userID,
			AchievementID: def.ID,
			UnlockedAt:    time.Now(),
		}
		if err := tx.Create(&ua).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // lost a race, but the badge is earned either way
			}
			return nil, err
		}

		newlyEarned = append(newlyEarned, def)
		bonus += def.BonusPoints
	}

	if bonus > 0 {
		if err := AwardBonusPoints(tx, userID, bonus); err != nil {
			return nil, err
		}
	}

	return newlyEarned, nil
}
