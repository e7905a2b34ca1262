package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/internal/services"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
)

const rewardsCacheKey = "cache:rewards:catalog"

// ListRewards GET /rewards, the catalog users can redeem against. The
// catalog only changes through the admin surface, so it is served from the
// redis cache and invalidated on every admin mutation.
func ListRewards(c *gin.Context) {
	if database.Redis != nil {
		var cached []models.Reward
		if err := database.CacheGet(rewardsCacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"rewards": cached})
			return
		}
	}

	var rewards []models.Reward
	if err := database.DB.Where("available = ?", true).Order("points_cost asc").Find(&rewards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}

	if database.Redis != nil {
		if err := database.CacheSet(rewardsCacheKey, rewards, 5*time.Minute); err != nil {
			logger.Warn().Err(err).Msg("failed to cache reward catalog")
		}
	}

	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

// invalidateRewardCache drops the cached catalog after an admin mutation.
func invalidateRewardCache() {
	if database.Redis == nil {
		return
	}
	if err := database.CacheInvalidate(rewardsCacheKey); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate reward catalog cache")
	}
}

type rewardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost" binding:"required,gt=0"`
	Stock       int    `json:"stock"`
	Available   *bool  `json:"available"`
}

// CreateReward POST /admin/rewards
func CreateReward(c *gin.Context) {
	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward payload: " + err.Error()})
		return
	}

	reward := models.Reward{
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Stock:       req.Stock,
		Available:   req.Available == nil || *req.Available,
	}
	if err := database.DB.Create(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}

	invalidateRewardCache()

	if reward.Available {
		go services.NotifyAll(models.NotificationTypeReward, "New reward available: "+reward.Name)
	}

	c.JSON(http.StatusCreated, gin.H{"reward": reward})
}

// UpdateReward PUT /admin/rewards/:id
func UpdateReward(c *gin.Context) {
	rewardID := c.Param("id")

	var reward models.Reward
	if err := database.DB.First(&reward, "id = ?", rewardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward payload: " + err.Error()})
		return
	}

	reward.Name = req.Name
	reward.Description = req.Description
	reward.PointsCost = req.PointsCost
	reward.Stock = req.Stock
	if req.Available != nil {
		reward.Available = *req.Available
	}
	if err := database.DB.Save(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		return
	}

	invalidateRewardCache()

	c.JSON(http.StatusOK, gin.H{"reward": reward})
}

// DeleteReward DELETE /admin/rewards/:id
func DeleteReward(c *gin.Context) {
	rewardID := c.Param("id")

	res := database.DB.Delete(&models.Reward{}, "id = ?", rewardID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reward"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	invalidateRewardCache()

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted"})
}

type setRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// SetUserRole PUT /admin/users/:id/role. Role management is an admin-only
// surface; the points pipeline never looks at role.
func SetUserRole(c *gin.Context) {
	targetID := c.Param("id")

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role payload: " + err.Error()})
		return
	}

	switch req.Role {
	case models.RoleUser, models.RoleStaff, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	res := database.DB.Model(&models.UserLedger{}).Where("user_id = ?", targetID).Update("role", req.Role)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}
