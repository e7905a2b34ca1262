package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
)

// RedeemReward POST /rewards/:id/redeem exchanges points for a voucher.
func RedeemReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rewardID := c.Param("id")

	voucher, err := services.IssueVoucher(c.Request.Context(), userID, rewardID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"voucher": voucher})
}

// GetMyVouchers GET /vouchers/me lists the caller's vouchers with expiry
// lazily observed, so an overdue ACTIVE row already reads as EXPIRED.
func GetMyVouchers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var vouchers []models.Voucher
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&vouchers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vouchers"})
		return
	}

	now := time.Now()
	for i := range vouchers {
		vouchers[i].Status = vouchers[i].EffectiveStatus(now)
	}

	c.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

type redeemVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemVoucher POST /vouchers/redeem is staff-side redemption by code.
func RedeemVoucher(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}
	staffName, _ := c.Get("userName")
	name, _ := staffName.(string)

	var req redeemVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voucher code is required"})
		return
	}

	voucher, err := services.RedeemVoucher(c.Request.Context(), req.Code, staffID, name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rewardName": voucher.RewardName,
		"userId":     voucher.UserID,
		"pointsCost": voucher.PointsCost,
		"redeemedAt": voucher.RedeemedAt,
	})
}
