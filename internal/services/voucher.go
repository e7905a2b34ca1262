package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siba18k/adbeam-rewards-backend/internal/config"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
	"github.com/siba18k/adbeam-rewards-backend/pkg/utils"
	"gorm.io/gorm"
)

// IssueVoucher exchanges points for a single-use voucher. The deduction and
// the voucher insert share one transaction: if the insert fails the deduction
// rolls back, so points can never be paid for a voucher that does not exist.
func IssueVoucher(ctx context.Context, userID, rewardID string) (*models.Voucher, error) {
	var reward models.Reward
	if err := database.DB.First(&reward, "id = ?", rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Reward not found")
		}
		return nil, err
	}
	if !reward.Available {
		return nil, apperrors.ErrRewardUnavailable
	}

	ttl := time.Duration(config.AppConfig.VoucherTTLDays) * 24 * time.Hour
	now := time.Now()

	var voucher models.Voucher
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := DeductPoints(tx, userID, reward.PointsCost); err != nil {
			return err
		}

		voucher = models.Voucher{
			Code:       utils.GenerateVoucherCode(),
			UserID:     userID,
			RewardID:   reward.ID,
			RewardName: reward.Name,
			PointsCost: reward.PointsCost,
			Status:     models.VoucherStatusActive,
			CreatedAt:  now,
			ExpiresAt:  now.Add(ttl),
		}
		// Savepoint so a code collision can be retried: postgres aborts the
		// whole transaction after a failed statement, and without rolling
		// back to here the second insert could never succeed.
		if err := tx.SavePoint("voucher_insert").Error; err != nil {
			return err
		}
		if err := tx.Create(&voucher).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := tx.RollbackTo("voucher_insert").Error; err != nil {
					return err
				}
				voucher.ID = ""
				voucher.Code = utils.GenerateVoucherCode()
				return tx.Create(&voucher).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	Notify(userID, models.NotificationTypeReward,
		fmt.Sprintf("Voucher for %s issued. Code: %s", voucher.RewardName, voucher.Code))

	logger.Info().
		Str("user_id", userID).
		Str("reward_id", rewardID).
		Str("voucher_id", voucher.ID).
		Int("points_cost", voucher.PointsCost).
		Msg("voucher issued")

	return &voucher, nil
}

// RedeemVoucher transitions a voucher from active to redeemed exactly once.
// The transition is a conditional UPDATE on status = ACTIVE and an unexpired
// expiry, so two staff scanning the same code concurrently produce one
// success; the loser's update matches zero rows and is classified below.
func RedeemVoucher(ctx context.Context, code, staffID, staffName string) (*models.Voucher, error) {
	now := time.Now()

	res := database.DB.WithContext(ctx).Model(&models.Voucher{}).
		Where("code = ? AND status = ? AND expires_at > ?", code, models.VoucherStatusActive, now).
		Updates(map[string]interface{}{
			"status":      models.VoucherStatusRedeemed,
			"redeemed_at": now,
			"redeemed_by": staffID,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var existing models.Voucher
		if err := database.DB.First(&existing, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrVoucherNotFound
			}
			return nil, err
		}
		switch existing.EffectiveStatus(now) {
		case models.VoucherStatusExpired:
			// Opportunistically persist the lazily observed expiry.
			database.DB.Model(&models.Voucher{}).
				Where("id = ? AND status = ?", existing.ID, models.VoucherStatusActive).
				Update("status", models.VoucherStatusExpired)
			return nil, apperrors.ErrVoucherExpired
		default:
			return nil, apperrors.ErrVoucherRedeemed
		}
	}

	var voucher models.Voucher
	if err := database.DB.First(&voucher, "code = ?", code).Error; err != nil {
		return nil, err
	}

	Notify(voucher.UserID, models.NotificationTypeVoucherRedeemed,
		fmt.Sprintf("Your voucher for %s was redeemed by %s", voucher.RewardName, staffName))

	logger.Info().
		Str("voucher_id", voucher.ID).
		Str("staff_id", staffID).
		Str("user_id", voucher.UserID).
		Msg("voucher redeemed")

	return &voucher, nil
}

// SweepExpiredVouchers bulk-marks active vouchers past their expiry. Called
// by the scheduler; redemption does not depend on it running.
func SweepExpiredVouchers() (int64, error) {
	res := database.DB.Model(&models.Voucher{}).
		Where("status = ? AND expires_at <= ?", models.VoucherStatusActive, time.Now()).
		Update("status", models.VoucherStatusExpired)
	return res.RowsAffected, res.Error
}
