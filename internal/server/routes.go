package server

import (
	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	transactionHandler *handlers.TransactionHandler,
	goalHandler *handlers.GoalHandler,
	summaryHandler *handlers.SummaryHandler,
	insightsHandler *handlers.InsightsHandler,
	notificationHandler *handlers.NotificationHandler,
	demoHandler *handlers.DemoHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	insightsRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	accounts := api.Group("/accounts", authMiddleware)
	accounts.GET("", accountHandler.List)
	accounts.POST("", accountHandler.Create)
	accounts.GET("/:id", accountHandler.Get)

	transactions := api.Group("/transactions", authMiddleware)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)
	transactions.GET("/category/:category", transactionHandler.ByCategory)
	transactions.DELETE("", transactionHandler.Clear)

	goals := api.Group("/goals", authMiddleware)
	goals.GET("", goalHandler.List)
	goals.POST("", goalHandler.Create)
	goals.GET("/:id", goalHandler.Get)
	goals.PUT("/:id", goalHandler.Update)
	goals.PATCH("/:id/progress", goalHandler.UpdateProgress)
	goals.DELETE("/:id", goalHandler.Delete)

	summary := api.Group("/summary", authMiddleware)
	summary.GET("", summaryHandler.Get)

	insights := api.Group("/insights", authMiddleware, insightsRateLimiter)
	insights.GET("/spending", insightsHandler.Spending)
	insights.POST("/investment-growth", insightsHandler.InvestmentGrowth)
	insights.POST("/savings-from-cuts", insightsHandler.SavingsFromCuts)
	insights.GET("/goals/:id/projection", insightsHandler.Projection)
	insights.POST("/goals/:id/forecast", insightsHandler.Forecast)
	insights.GET("/goals/:id/recommendations", insightsHandler.Recommendations)
	insights.POST("/goals/:id/impact", insightsHandler.Impact)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	demo := api.Group("/demo", authMiddleware)
	demo.POST("/seed", demoHandler.Seed)
}
