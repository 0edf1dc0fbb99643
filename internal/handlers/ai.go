package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/ai"
	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/models"
	"example.com/finlit-quest/backend/internal/repository"
)

type AIHandler struct {
	Service      *ai.Service
	Chats        *repository.ChatRepository
	Ledger       *repository.LedgerRepository
	AIRepo       *repository.AIRepository
	Provider     string
	Model        string
	HistoryLimit int
}

// NewAIHandler создает обработчик AI-чата.
func NewAIHandler(service *ai.Service, chats *repository.ChatRepository, ledger *repository.LedgerRepository, aiRepo *repository.AIRepository, provider, model string, historyLimit int) *AIHandler {
	return &AIHandler{
		Service:      service,
		Chats:        chats,
		Ledger:       ledger,
		AIRepo:       aiRepo,
		Provider:     provider,
		Model:        model,
		HistoryLimit: historyLimit,
	}
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	Mode    string `json:"mode" validate:"required"`
}

type ChatResponse struct {
	Reply   string          `json:"reply"`
	Mode    models.ChatMode `json:"mode"`
	Balance int             `json:"balance"`
}

type ChatHistoryResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}

// Chat списывает токен, собирает историю диалога и зовет провайдера.
// Оба хода переписки сохраняются.
func (h *AIHandler) Chat(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	mode := models.ChatMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	if !ai.IsValidMode(mode) {
		return badRequest(c, "unknown chat mode")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return badRequest(c, "message is empty")
	}

	balance, err := h.Ledger.Spend(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientTokens) {
			return paymentRequired(c, "not enough tokens")
		}
		return serverError(c)
	}

	history, err := h.Chats.History(c.Request().Context(), userID, h.HistoryLimit)
	if err != nil {
		return serverError(c)
	}

	turns := make([]ai.Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, ai.Turn{Role: msg.Role, Content: msg.Content})
	}

	reply, prompt, raw, err := h.Service.Chat(c.Request().Context(), ai.ChatInput{
		Mode:    mode,
		History: turns,
		Message: message,
	})
	h.logRequest(c.Request().Context(), userID, mode, prompt, raw, err)
	if err != nil {
		return badGateway(c, "ai provider unavailable")
	}

	if err := h.Chats.SaveTurn(c.Request().Context(), userID, mode, message, reply); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Reply:   reply,
		Mode:    mode,
		Balance: balance,
	})
}

// History возвращает недавнюю переписку с ассистентом.
func (h *AIHandler) History(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	messages, err := h.Chats.History(c.Request().Context(), userID, h.HistoryLimit)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChatHistoryResponse{Messages: messages})
}

func (h *AIHandler) logRequest(ctx context.Context, userID uuid.UUID, mode models.ChatMode, prompt string, raw []byte, err error) {
	log := repository.AIRequestLog{
		UserID:          userID,
		Mode:            string(mode),
		Provider:        h.Provider,
		Model:           h.Model,
		Prompt:          prompt,
		ResponsePayload: raw,
		Success:         err == nil,
	}
	if err != nil {
		errMsg := err.Error()
		log.ErrorMessage = &errMsg
	}

	if logErr := h.AIRepo.LogRequest(ctx, log); logErr != nil {
		slog.Warn("failed to write ai audit log",
			"user_id", userID,
			"mode", string(mode),
			"error", logErr,
		)
	}
}
