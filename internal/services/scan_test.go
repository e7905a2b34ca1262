package services

import (
	"context"
	"testing"
	"time"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plasticScan(userID, barcode string) ScanPayload {
	return ScanPayload{
		Barcode:      barcode,
		UserID:       userID,
		MaterialType: "plastic",
		Latitude:     -33.96,
		Longitude:    18.46,
		LocationName: "Library bins",
	}
}

func TestRecordScan_AwardsPoints(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	result, err := RecordScan(context.Background(), plasticScan("u1", "BAR-001"))
	require.NoError(t, err)

	assert.Equal(t, 5, result.PointsAwarded)
	assert.Equal(t, 1, result.Snapshot.TotalScans)
	assert.Equal(t, 1, result.Streak)

	ledger := loadLedger(t, "u1")
	assert.Equal(t, 1, ledger.TotalScans)
	assert.NotNil(t, ledger.LastScanDate)

	var scan models.ScanRecord
	require.NoError(t, database.DB.First(&scan, "barcode = ?", "BAR-001").Error)
	assert.Equal(t, "u1", scan.UserID)
	assert.Equal(t, 5, scan.Points)
	assert.Equal(t, "Library bins", scan.LocationName)
}

func TestRecordScan_DuplicateBarcode(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	_, err := RecordScan(context.Background(), plasticScan("u1", "BAR-001"))
	require.NoError(t, err)
	before := loadLedger(t, "u1")

	_, err = RecordScan(context.Background(), plasticScan("u1", "BAR-001"))
	assert.Equal(t, apperrors.ErrDuplicateScan, err)

	// Exactly one scan record and no second award, even if another user
	// submits the same barcode.
	_, err = RecordScan(context.Background(), plasticScan("u2", "BAR-001"))
	assert.Equal(t, apperrors.ErrDuplicateScan, err)

	after := loadLedger(t, "u1")
	assert.Equal(t, before.Points, after.Points)
	assert.Equal(t, before.TotalScans, after.TotalScans)

	var count int64
	database.DB.Model(&models.ScanRecord{}).Where("barcode = ?", "BAR-001").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordScan_MaterialValues(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	expected := map[string]int{"plastic": 5, "glass": 10, "aluminum": 7, "paper": 3}
	total := 0
	i := 0
	for material, points := range expected {
		payload := plasticScan("u1", "MAT-"+material)
		payload.MaterialType = material
		result, err := RecordScan(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, points, result.PointsAwarded, material)
		total += points
		i++
	}

	ledger := loadLedger(t, "u1")
	assert.Equal(t, i, ledger.TotalScans)
	assert.Equal(t, total, ledger.Points)
}

func TestRecordScan_UnknownMaterial(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	payload := plasticScan("u1", "BAR-001")
	payload.MaterialType = "styrofoam"

	_, err := RecordScan(context.Background(), payload)
	require.Error(t, err)

	var count int64
	database.DB.Model(&models.ScanRecord{}).Count(&count)
	assert.Equal(t, int64(0), count, "rejected scan must leave no record")
}

func TestRecordScan_MissingBarcode(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	payload := plasticScan("u1", "")
	_, err := RecordScan(context.Background(), payload)
	require.Error(t, err)
}

func TestRecordScan_UnknownUserRollsBack(t *testing.T) {
	setupTestDB(t)

	_, err := RecordScan(context.Background(), plasticScan("ghost", "BAR-001"))
	require.Error(t, err)

	// The transaction must roll the idempotency record back, otherwise the
	// barcode would be burned without an award.
	var count int64
	database.DB.Model(&models.ScanRecord{}).Where("barcode = ?", "BAR-001").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRecordScan_LevelConsistency(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 97)

	result, err := RecordScan(context.Background(), plasticScan("u1", "BAR-001"))
	require.NoError(t, err)

	assert.Equal(t, models.LevelFor(result.Snapshot.Points), result.Snapshot.Level)

	ledger := loadLedger(t, "u1")
	assert.Equal(t, models.LevelFor(ledger.Points), ledger.Level)
	assert.Equal(t, 2, ledger.Level)
}

func TestRecordScan_StreakExtendsOnConsecutiveDay(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	last := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, database.DB.Model(&models.UserLedger{}).
		Where("user_id = ?", "u1").
		Updates(map[string]interface{}{"streak": 5, "last_scan_date": last}).Error)

	payload := plasticScan("u1", "BAR-002")
	payload.ScannedAt = time.Date(2024, time.January, 2, 14, 0, 0, 0, time.UTC)

	result, err := RecordScan(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Streak)
}

func TestRecordScan_StreakResetsAfterGap(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	last := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, database.DB.Model(&models.UserLedger{}).
		Where("user_id = ?", "u1").
		Updates(map[string]interface{}{"streak": 5, "last_scan_date": last}).Error)

	payload := plasticScan("u1", "BAR-002")
	payload.ScannedAt = time.Date(2024, time.January, 4, 14, 0, 0, 0, time.UTC)

	result, err := RecordScan(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestRecordScan_StreakSameDayUnchanged(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	day := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	first := plasticScan("u1", "BAR-001")
	first.ScannedAt = day
	result, err := RecordScan(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)

	second := plasticScan("u1", "BAR-002")
	second.ScannedAt = day.Add(6 * time.Hour)
	result, err = RecordScan(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak, "same calendar day must not double-count")
}

func TestRecordScan_StreakMilestoneNotification(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	last := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, database.DB.Model(&models.UserLedger{}).
		Where("user_id = ?", "u1").
		Updates(map[string]interface{}{"streak": 6, "last_scan_date": last}).Error)

	payload := plasticScan("u1", "BAR-001")
	payload.ScannedAt = time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)

	result, err := RecordScan(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, 7, result.Streak)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", "u1", models.NotificationTypeStreak).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordScan_SameDayScanDoesNotRepeatMilestone(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	last := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, database.DB.Model(&models.UserLedger{}).
		Where("user_id = ?", "u1").
		Updates(map[string]interface{}{"streak": 6, "last_scan_date": last}).Error)

	first := plasticScan("u1", "BAR-001")
	first.ScannedAt = time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	result, err := RecordScan(context.Background(), first)
	require.NoError(t, err)
	require.Equal(t, 7, result.Streak)

	// Second scan the same day: streak stays 7 and the milestone is not
	// announced again.
	second := plasticScan("u1", "BAR-002")
	second.ScannedAt = time.Date(2024, time.May, 2, 15, 0, 0, 0, time.UTC)
	result, err = RecordScan(context.Background(), second)
	require.NoError(t, err)
	require.Equal(t, 7, result.Streak)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", "u1", models.NotificationTypeStreak).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
