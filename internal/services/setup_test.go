package services

import (
	"fmt"
	"testing"

	"github.com/siba18k/adbeam-rewards-backend/internal/config"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global DB at a fresh in-memory SQLite database named
// after the test, so tests do not bleed into each other. TranslateError is on
// because the idempotency guard depends on gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserLedger{},
		&models.ScanRecord{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Reward{},
		&models.Voucher{},
		&models.Notification{},
	))

	database.DB = db
	config.AppConfig = &config.Config{
		VoucherTTLDays:      30,
		ExpirySweepSchedule: "@hourly",
	}
}

func createTestUser(t *testing.T, userID string, points int) {
	t.Helper()
	ledger := models.UserLedger{
		UserID: userID,
		Email:  userID + "@example.com",
		Name:   "Test " + userID,
		Points: points,
		Level:  models.LevelFor(points),
		Role:   models.RoleUser,
	}
	require.NoError(t, database.DB.Create(&ledger).Error)
}

func loadLedger(t *testing.T, userID string) models.UserLedger {
	t.Helper()
	var ledger models.UserLedger
	require.NoError(t, database.DB.First(&ledger, "user_id = ?", userID).Error)
	return ledger
}
