package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/handlers"
	"github.com/siba18k/adbeam-rewards-backend/internal/middleware"
)

func RegisterNotificationRoutes(r gin.IRouter) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handlers.GetNotifications)
		notifications.GET("/unread-count", handlers.GetUnreadCount)
		notifications.PUT("/:id/read", handlers.MarkNotificationRead)
		notifications.PUT("/read-all", handlers.MarkAllNotificationsRead)
		notifications.DELETE("/:id", handlers.DeleteNotification)
	}
}
