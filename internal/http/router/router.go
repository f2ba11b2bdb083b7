package router

import (
	"github.com/gin-gonic/gin"

	"github.com/promoshare/promocode-backend/internal/config"
	"github.com/promoshare/promocode-backend/internal/http/handlers"
	"github.com/promoshare/promocode-backend/internal/http/middleware"
	"github.com/promoshare/promocode-backend/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	promocodeHandler *handlers.PromocodeHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	contactHandler *handlers.ContactHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты
	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/categories/:slug/promocodes", catalogHandler.ListCategoryPromocodes)
	api.GET("/promocodes/:id", middleware.UUIDValidator("id"), promocodeHandler.GetPromocode)
	api.POST("/promocodes/:id/copy", middleware.UUIDValidator("id"), promocodeHandler.CopyPromocode)
	api.POST("/contact", middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod), contactHandler.SendMessage)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/promocodes", promocodeHandler.CreatePromocode)
		protected.GET("/promocodes/my", promocodeHandler.ListMyPromocodes)
		protected.PUT("/promocodes/:id", middleware.UUIDValidator("id"), promocodeHandler.UpdatePromocode)
		protected.DELETE("/promocodes/:id", middleware.UUIDValidator("id"), promocodeHandler.DeletePromocode)
		protected.POST("/reports", reportHandler.CreateReport)
	}

	// Панель модерации
	admin := api.Group("/admin")
	admin.GET("/ws", wsHandler.Handle)
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/reports", adminHandler.ListReports)
		admin.PATCH("/reports/:id", middleware.UUIDValidator("id"), adminHandler.UpdateReportStatus)
		admin.PATCH("/promocodes/:id", middleware.UUIDValidator("id"), adminHandler.UpdatePromocode)
		admin.DELETE("/promocodes/:id", middleware.UUIDValidator("id"), adminHandler.DeletePromocode)
	}

	return r
}
