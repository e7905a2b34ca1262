package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
)

type registerRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// RegisterUser POST /users/register creates the ledger record for a fresh
// identity-provider sign-in. Idempotent: an existing ledger is returned
// untouched.
func RegisterUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload: " + err.Error()})
		return
	}

	ledger, err := services.EnsureLedger(userID, req.Email, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ledger})
}

// GetMe GET /users/me
func GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ledger, err := services.GetLedger(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ledger})
}

// GetMyAchievements GET /users/me/achievements
func GetMyAchievements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var earned []models.UserAchievement
	if err := database.DB.Preload("Achievement").Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch achievements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": earned})
}

// GetLeaderboard GET /leaderboard
func GetLeaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := services.GetLeaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
