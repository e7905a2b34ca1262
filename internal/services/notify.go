package services

import (
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/pkg/logger"
)

// Notify writes one notification row. Fire-and-forget: the sink is advisory,
// so persistence failures are logged and swallowed, never propagated into the
// transaction that triggered them.
func Notify(userID string, kind models.NotificationType, message string) {
	n := models.Notification{
		UserID:  userID,
		Type:    kind,
		Message: message,
	}
	if err := database.DB.Create(&n).Error; err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Str("type", string(kind)).Msg("failed to write notification")
	}
}

// NotifyAll fans a message out to every user. Used by the reward-creation
// admin flow; advisory like everything else in this file.
func NotifyAll(kind models.NotificationType, message string) {
	var userIDs []string
	if err := database.DB.Model(&models.UserLedger{}).Pluck("user_id", &userIDs).Error; err != nil {
		logger.Warn().Err(err).Msg("failed to list users for broadcast")
		return
	}
	for _, id := range userIDs {
		Notify(id, kind, message)
	}
}

// NotifyNewAchievements emits one notification per freshly earned achievement.
func NotifyNewAchievements(userID string, achievements []models.Achievement) {
	for _, a := range achievements {
		Notify(userID, models.NotificationTypeAchievement, "Achievement unlocked: "+a.Name)
	}
}
