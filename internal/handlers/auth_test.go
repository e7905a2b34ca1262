package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/middleware"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
	"github.com/siba18k/adbeam-rewards-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authRouter wires the real middleware chain the way the route registration
// does, so gating is exercised end to end rather than by calling handlers
// directly.
func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/users/me", middleware.AuthMiddleware(), GetMe)
	r.POST("/api/vouchers/redeem",
		middleware.AuthMiddleware(),
		middleware.RequireRole(models.RoleStaff),
		RedeemVoucher)
	return r
}

func serveWithToken(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AcceptsValidToken(t *testing.T) {
	SetupTestDB(t)
	database.DB.Create(&models.UserLedger{UserID: "u1", Email: "u1@example.com", Points: 42, Level: 1})

	token, err := utils.GenerateToken("u1")
	require.NoError(t, err)

	w := serveWithToken(t, authRouter(), "GET", "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RejectsGarbageToken(t *testing.T) {
	SetupTestDB(t)

	w := serveWithToken(t, authRouter(), "GET", "/api/users/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsMissingHeader(t *testing.T) {
	SetupTestDB(t)

	w := serveWithToken(t, authRouter(), "GET", "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsUnknownUser(t *testing.T) {
	SetupTestDB(t)

	// Valid token, but no ledger record behind it.
	token, err := utils.GenerateToken("ghost")
	require.NoError(t, err)

	w := serveWithToken(t, authRouter(), "GET", "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRedeemVoucher_RequiresStaffRole(t *testing.T) {
	SetupTestDB(t)
	database.DB.Create(&models.UserLedger{UserID: "u1", Email: "u1@example.com", Points: 1000, Level: 11})
	database.DB.Create(&models.UserLedger{UserID: "staff1", Email: "staff1@example.com", Name: "Staff One", Role: models.RoleStaff, Level: 1})
	database.DB.Create(&models.Reward{ID: "r1", Name: "Coffee Voucher", PointsCost: 150, Available: true})

	voucher, err := services.IssueVoucher(context.Background(), "u1", "r1")
	require.NoError(t, err)

	r := authRouter()
	body := map[string]string{"code": voucher.Code}

	// A plain user holding a valid voucher code still may not redeem it.
	userToken, err := utils.GenerateToken("u1")
	require.NoError(t, err)
	w := serveWithToken(t, r, "POST", "/api/vouchers/redeem", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Voucher
	require.NoError(t, database.DB.First(&stored, "code = ?", voucher.Code).Error)
	assert.Equal(t, models.VoucherStatusActive, stored.Status)

	// Staff pass the gate and the redemption goes through.
	staffToken, err := utils.GenerateToken("staff1")
	require.NoError(t, err)
	w = serveWithToken(t, r, "POST", "/api/vouchers/redeem", staffToken, body)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, database.DB.First(&stored, "code = ?", voucher.Code).Error)
	assert.Equal(t, models.VoucherStatusRedeemed, stored.Status)
}
