package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/handlers"
	"github.com/siba18k/adbeam-rewards-backend/internal/middleware"
)

func RegisterScanRoutes(r gin.IRouter) {
	scans := r.Group("/scans")
	scans.Use(middleware.AuthMiddleware(), middleware.ScanRateLimit(), middleware.UserScanRateLimit())
	{
		scans.POST("", handlers.SubmitScan)
		scans.POST("/sync", handlers.SyncScans)
	}
}
