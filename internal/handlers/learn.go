package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/repository"
)

type LearnHandler struct {
	Ledger *repository.LedgerRepository
	Reward int
}

// NewLearnHandler создает обработчик обучающих тем и баланса токенов.
func NewLearnHandler(ledger *repository.LedgerRepository, reward int) *LearnHandler {
	return &LearnHandler{
		Ledger: ledger,
		Reward: reward,
	}
}

type TokensResponse struct {
	Balance int `json:"balance"`
}

type TopicCompleteResponse struct {
	TopicID string `json:"topic_id"`
	Balance int    `json:"balance"`
}

// Tokens возвращает текущий баланс AI-токенов.
func (h *LearnHandler) Tokens(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ledger, err := h.Ledger.Get(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TokensResponse{Balance: ledger.Balance})
}

// CompleteTopic начисляет токены за пройденную тему; каждая тема
// засчитывается один раз.
func (h *LearnHandler) CompleteTopic(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	topicID := strings.TrimSpace(c.Param("topicId"))
	if topicID == "" || len(topicID) > 100 {
		return badRequest(c, "invalid topic id")
	}

	balance, err := h.Ledger.CreditTopic(c.Request().Context(), userID, topicID, h.Reward)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "topic already completed")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TopicCompleteResponse{
		TopicID: topicID,
		Balance: balance,
	})
}
