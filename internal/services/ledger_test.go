package services

import (
	"testing"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	apperrors "github.com/siba18k/adbeam-rewards-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeductPoints_Success(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 1000)

	err := DeductPoints(database.DB, "u1", 800)
	require.NoError(t, err)

	ledger := loadLedger(t, "u1")
	assert.Equal(t, 200, ledger.Points)
	assert.Equal(t, models.LevelFor(200), ledger.Level)
}

func TestDeductPoints_InsufficientFunds(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 100)

	err := DeductPoints(database.DB, "u1", 500)
	assert.Equal(t, apperrors.ErrInsufficientFunds, err)

	// No mutation on rejection
	ledger := loadLedger(t, "u1")
	assert.Equal(t, 100, ledger.Points)
}

func TestDeductPoints_ExactBalance(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 500)

	require.NoError(t, DeductPoints(database.DB, "u1", 500))

	ledger := loadLedger(t, "u1")
	assert.Equal(t, 0, ledger.Points)
	assert.Equal(t, 1, ledger.Level)
}

func TestDeductPoints_UnknownUser(t *testing.T) {
	setupTestDB(t)

	err := DeductPoints(database.DB, "ghost", 10)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ReasonNotFound, appErr.Reason)
}

func TestDeductPoints_NonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 100)

	assert.Error(t, DeductPoints(database.DB, "u1", 0))
	assert.Error(t, DeductPoints(database.DB, "u1", -5))
	assert.Equal(t, 100, loadLedger(t, "u1").Points)
}

// The balance must stay non-negative across any mix of awards and deductions;
// a failed deduction leaves the ledger exactly as it was.
func TestLedger_NonNegativeInvariant(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 0)

	steps := []struct {
		award  int
		deduct int
	}{
		{award: 50},
		{deduct: 100}, // rejected
		{award: 70},
		{deduct: 100},
		{deduct: 100}, // rejected
		{award: 30},
		{deduct: 50},
	}

	for i, s := range steps {
		if s.award > 0 {
			require.NoError(t, AwardBonusPoints(database.DB, "u1", s.award), "step %d", i)
		}
		if s.deduct > 0 {
			_ = DeductPoints(database.DB, "u1", s.deduct)
		}

		ledger := loadLedger(t, "u1")
		assert.GreaterOrEqual(t, ledger.Points, 0, "step %d", i)
		assert.Equal(t, models.LevelFor(ledger.Points), ledger.Level, "step %d", i)
	}

	assert.Equal(t, 0, loadLedger(t, "u1").Points)
}

func TestAwardBonusPoints_RecomputesLevel(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "u1", 95)

	require.NoError(t, AwardBonusPoints(database.DB, "u1", 10))

	ledger := loadLedger(t, "u1")
	assert.Equal(t, 105, ledger.Points)
	assert.Equal(t, 2, ledger.Level)
	assert.Equal(t, 0, ledger.TotalScans, "bonus must not count as a scan")
}

func TestEnsureLedger_Idempotent(t *testing.T) {
	setupTestDB(t)

	first, err := EnsureLedger("u1", "u1@example.com", "User One")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Level)

	require.NoError(t, AwardBonusPoints(database.DB, "u1", 40))

	second, err := EnsureLedger("u1", "u1@example.com", "User One")
	require.NoError(t, err)
	assert.Equal(t, 40, second.Points, "existing ledger must not be reset")
}
