package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/pkg/errors"
)

// respondError renders an AppError with its stable reason code, or a generic
// 500 for anything else. Business rejections come back as plain JSON the
// client can branch on without string-matching.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Code, gin.H{
			"error":  appErr.Message,
			"reason": appErr.Reason,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":  "Internal server error",
		"reason": errors.ReasonInternal,
	})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID.(string), true
}
