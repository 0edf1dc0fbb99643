package server

import (
	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	challengeHandler *handlers.ChallengeHandler,
	learnHandler *handlers.LearnHandler,
	expenseHandler *handlers.ExpenseHandler,
	bankHandler *handlers.BankHandler,
	aiHandler *handlers.AIHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/verify-otp", authHandler.VerifyOTP)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	gameGroup := api.Group("/game", authMiddleware)
	gameGroup.GET("/progress", gameHandler.GetProgress)
	gameGroup.POST("/progress/ack-level-up", gameHandler.AckLevelUp)
	gameGroup.GET("/questions", gameHandler.ListQuestions)
	gameGroup.POST("/questions/:id/answer", gameHandler.Answer)
	gameGroup.GET("/session", gameHandler.GetSession)
	gameGroup.POST("/session/move", gameHandler.Move)
	gameGroup.POST("/session/reset", gameHandler.ResetSession)
	gameGroup.GET("/daily-challenge", challengeHandler.Get)
	gameGroup.POST("/daily-challenge/complete", challengeHandler.Complete)
	gameGroup.GET("/tokens", learnHandler.Tokens)

	learn := api.Group("/learn", authMiddleware)
	learn.POST("/topics/:topicId/complete", learnHandler.CompleteTopic)

	expenses := api.Group("/expenses", authMiddleware)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/export/json", expenseHandler.ExportJSON)
	expenses.GET("/export/csv", expenseHandler.ExportCSV)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	budgets := api.Group("/budgets", authMiddleware)
	budgets.GET("", expenseHandler.ListBudgets)
	budgets.PUT("", expenseHandler.UpsertBudget)
	budgets.GET("/summary", expenseHandler.BudgetSummary)
	budgets.DELETE("/:category", expenseHandler.DeleteBudget)

	bank := api.Group("/bank", authMiddleware)
	bank.POST("/link-token", bankHandler.CreateLinkToken)
	bank.POST("/exchange", bankHandler.Exchange)
	bank.GET("/accounts", bankHandler.Accounts)
	bank.POST("/sync", bankHandler.Sync)
	bank.DELETE("/link", bankHandler.Unlink)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/spending-by-category", statsHandler.SpendingByCategory)
	stats.GET("/monthly-totals", statsHandler.MonthlyTotals)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/ai-requests", adminHandler.ListAIRequests)
	admin.GET("/usage", adminHandler.Usage)

	aiGroup := api.Group("/ai", authMiddleware, aiRateLimiter)
	aiGroup.POST("/chat", aiHandler.Chat)
	aiGroup.GET("/history", aiHandler.History)
}
