package services

import (
	"time"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"gorm.io/gorm"
)

// The ledger is the primary contended record. Every mutation here is a single
// UPDATE with SQL expressions relative to the stored row, never a value
// computed from a stale read, so concurrent writers (live scans racing an
// offline replay) cannot lose updates.

// AwardBonusPoints credits points without touching the scan counter, used for
// achievement bonuses. Level is recomputed in the same statement.
func AwardBonusPoints(tx *gorm.DB, userID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	res := tx.Model(&models.UserLedger{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points + ?", amount),
			"level":      gorm.Expr("(points + ?) / 100 + 1", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("User ledger not found")
	}
	return nil
}

// DeductPoints subtracts amount from the user's balance. The points >= amount
// guard lives in the WHERE clause, so two concurrent redemptions cannot both
// pass a balance check and drive the balance negative: the second one simply
// matches zero rows.
func DeductPoints(tx *gorm.DB, userID string, amount int) error {
	if amount <= 0 {
		return apperrors.BadRequest("Deduction amount must be positive")
	}
	res := tx.Model(&models.UserLedger{}).
		Where("user_id = ? AND points >= ?", userID, amount).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points - ?", amount),
			"level":      gorm.Expr("(points - ?) / 100 + 1", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.UserLedger{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NotFound("User ledger not found")
		}
		return apperrors.ErrInsufficientFunds
	}
	return nil
}

// GetLedger loads a user's ledger record.
func GetLedger(userID string) (*models.UserLedger, error) {
	var ledger models.UserLedger
	if err := database.DB.First(&ledger, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("User ledger not found")
		}
		return nil, err
	}
	return &ledger, nil
}

// EnsureLedger creates the ledger row for a newly signed-in identity if it
// does not exist yet. Safe to call on every sign-in.
func EnsureLedger(userID, email, name string) (*models.UserLedger, error) {
	ledger := models.UserLedger{
		UserID: userID,
		Email:  email,
		Name:   name,
		Level:  1,
		Role:   models.RoleUser,
	}
	err := database.DB.Where("user_id = ?", userID).FirstOrCreate(&ledger).Error
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}
