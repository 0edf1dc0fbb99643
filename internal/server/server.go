package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/finlit-quest/backend/internal/ai"
	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/banklink"
	"example.com/finlit-quest/backend/internal/config"
	"example.com/finlit-quest/backend/internal/game"
	"example.com/finlit-quest/backend/internal/handlers"
	"example.com/finlit-quest/backend/internal/notifications"
	"example.com/finlit-quest/backend/internal/otp"
	"example.com/finlit-quest/backend/internal/repository"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, cfg.Auth.PendingTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db, cfg.Game.StartingTokens)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	bankLinkRepo := repository.NewBankLinkRepository(db)
	chatRepo := repository.NewChatRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	aiRepo := repository.NewAIRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	notificationHub := notifications.NewHub()
	sessionManager := game.NewSessionManager(cfg.Game.StartingLives, cfg.Game.BoardSize)
	otpClient := otp.NewClient(cfg.OTP.BaseURL, cfg.OTP.APIKey, cfg.OTP.Timeout)
	bankClient := banklink.NewClient(cfg.BankLink.BaseURL, cfg.BankLink.ClientID, cfg.BankLink.Secret, cfg.BankLink.Timeout)

	var aiClient ai.Client
	switch strings.ToLower(cfg.AI.Provider) {
	case "gemini":
		aiClient = ai.NewGeminiClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxOutputTokens)
	default:
		aiClient = ai.NewGroqClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxOutputTokens)
	}
	aiService := ai.NewService(aiClient)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager, otpClient)
	gameHandler := handlers.NewGameHandler(progressRepo, questionRepo, sessionManager, notificationHub)
	challengeHandler := handlers.NewChallengeHandler(challengeRepo, notificationHub, cfg.Game.DailyChallengeXP)
	learnHandler := handlers.NewLearnHandler(ledgerRepo, cfg.Game.TopicRewardTokens)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo, budgetRepo, notificationHub)
	bankHandler := handlers.NewBankHandler(bankClient, bankLinkRepo, expenseRepo, budgetRepo, notificationHub)
	aiHandler := handlers.NewAIHandler(aiService, chatRepo, ledgerRepo, aiRepo, cfg.AI.Provider, cfg.AI.Model, cfg.AI.HistoryLimit)
	statsHandler := handlers.NewStatsHandler(statsRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)
	adminHandler := handlers.NewAdminHandler(adminRepo)

	registerRoutes(
		e,
		authHandler,
		gameHandler,
		challengeHandler,
		learnHandler,
		expenseHandler,
		bankHandler,
		aiHandler,
		statsHandler,
		notificationHandler,
		adminHandler,
		auth.JWTMiddleware(tokenManager),
		handlers.AdminMiddleware(userRepo, cfg.Admin.Emails),
		authRateLimiter(cfg.Auth),
		aiRateLimiter(cfg.AI),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
