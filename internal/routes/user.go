package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/handlers"
	"github.com/siba18k/adbeam-rewards-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	// Registration only needs a valid token; the ledger row does not exist yet.
	r.POST("/users/register", middleware.TokenOnlyMiddleware(), handlers.RegisterUser)

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handlers.GetMe)
		users.GET("/me/scans", handlers.GetScanHistory)
		users.GET("/me/achievements", handlers.GetMyAchievements)
	}

	r.GET("/leaderboard", handlers.GetLeaderboard)
}
