package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/siba18k/adbeam-rewards-backend/internal/handlers"
	"github.com/siba18k/adbeam-rewards-backend/internal/middleware"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
)

func RegisterRewardRoutes(r gin.IRouter) {
	rewards := r.Group("/rewards")
	rewards.Use(middleware.AuthMiddleware())
	{
		rewards.GET("", handlers.ListRewards)
		rewards.POST("/:id/redeem", handlers.RedeemReward)
	}

	vouchers := r.Group("/vouchers")
	vouchers.Use(middleware.AuthMiddleware())
	{
		vouchers.GET("/me", handlers.GetMyVouchers)
		vouchers.POST("/redeem",
			middleware.RequireRole(models.RoleStaff),
			middleware.RedeemRateLimit(),
			handlers.RedeemVoucher)
	}
}

func RegisterAdminRoutes(r gin.IRouter) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/rewards", handlers.CreateReward)
		admin.PUT("/rewards/:id", handlers.UpdateReward)
		admin.DELETE("/rewards/:id", handlers.DeleteReward)
		admin.PUT("/users/:id/role", handlers.SetUserRole)
	}
}
