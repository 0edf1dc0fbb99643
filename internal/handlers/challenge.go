package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/game"
	"example.com/finlit-quest/backend/internal/models"
	"example.com/finlit-quest/backend/internal/notifications"
	"example.com/finlit-quest/backend/internal/repository"
)

type ChallengeHandler struct {
	Challenges *repository.ChallengeRepository
	Hub        *notifications.Hub
	RewardXP   int
}

// NewChallengeHandler создает обработчик дневных испытаний.
func NewChallengeHandler(challenges *repository.ChallengeRepository, hub *notifications.Hub, rewardXP int) *ChallengeHandler {
	return &ChallengeHandler{
		Challenges: challenges,
		Hub:        hub,
		RewardXP:   rewardXP,
	}
}

type CompleteChallengeRequest struct {
	WasCorrect *bool `json:"was_correct" validate:"required"`
}

type ChallengeResponse struct {
	Challenge models.DailyChallenge `json:"challenge"`
	Question  models.Question       `json:"question"`
}

type CompleteChallengeResponse struct {
	Challenge models.DailyChallenge `json:"challenge"`
	Progress  models.PlayerProgress `json:"progress"`
	Result    game.AnswerResult     `json:"result"`
}

// Get возвращает испытание на сегодня; просроченная запись лениво
// сбрасывается и получает новый вопрос.
func (h *ChallengeHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	challenge, question, err := h.Challenges.GetForDate(c.Request().Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "no questions available")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChallengeResponse{
		Challenge: challenge,
		Question:  question,
	})
}

// Complete завершает сегодняшнее испытание; повторное завершение в тот
// же день отклоняется.
func (h *ChallengeHandler) Complete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CompleteChallengeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	challenge, progress, result, err := h.Challenges.Complete(c.Request().Context(), userID, time.Now(), *req.WasCorrect, h.RewardXP)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyCompleted):
			return conflict(c, "challenge already completed today")
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "no challenge for today")
		default:
			return serverError(c)
		}
	}

	h.Hub.Publish(userID, notifications.DailyChallengeCompletedEvent(challenge.WasCorrect, challenge.XPEarned))
	if result.LeveledUp {
		h.Hub.Publish(userID, notifications.LevelUpEvent(result.Level, result.XP))
	}

	return c.JSON(http.StatusOK, CompleteChallengeResponse{
		Challenge: challenge,
		Progress:  progress,
		Result:    result,
	})
}
