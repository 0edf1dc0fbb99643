package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/game"
	"example.com/finlit-quest/backend/internal/models"
	"example.com/finlit-quest/backend/internal/notifications"
	"example.com/finlit-quest/backend/internal/repository"
)

type GameHandler struct {
	Progress  *repository.ProgressRepository
	Questions *repository.QuestionRepository
	Sessions  *game.SessionManager
	Hub       *notifications.Hub
}

// NewGameHandler создает обработчик игровых маршрутов.
func NewGameHandler(progress *repository.ProgressRepository, questions *repository.QuestionRepository, sessions *game.SessionManager, hub *notifications.Hub) *GameHandler {
	return &GameHandler{
		Progress:  progress,
		Questions: questions,
		Sessions:  sessions,
		Hub:       hub,
	}
}

type AnswerRequest struct {
	AnswerIndex *int `json:"answer_index" validate:"required,min=0"`
}

type MoveRequest struct {
	Steps int `json:"steps" validate:"required,min=1,max=12"`
}

type ProgressResponse struct {
	Progress      models.PlayerProgress `json:"progress"`
	NextLevelAt   int                   `json:"next_level_at"`
	LevelProgress int                   `json:"level_progress"`
	CategoryStats []models.CategoryStat `json:"category_stats"`
}

type AnswerResponse struct {
	Correct  bool                  `json:"correct"`
	Result   game.AnswerResult     `json:"result"`
	Progress models.PlayerProgress `json:"progress"`
	Session  game.Session          `json:"session"`
}

type SessionResponse struct {
	Session game.Session `json:"session"`
}

type QuestionsResponse struct {
	Questions []models.Question `json:"questions"`
}

// GetProgress возвращает прогрессию игрока и статистику по категориям.
func (h *GameHandler) GetProgress(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	progress, err := h.Progress.Get(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	stats, err := h.Progress.CategoryStats(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProgressResponse{
		Progress:      progress,
		NextLevelAt:   game.NextLevelAt(progress.XP),
		LevelProgress: game.LevelProgress(progress.XP),
		CategoryStats: stats,
	})
}

// AckLevelUp сбрасывает одноразовый флаг повышения уровня.
func (h *GameHandler) AckLevelUp(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.Progress.AckLevelUp(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "no progress to acknowledge")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListQuestions возвращает вопросы с фильтрами по категории и сложности.
func (h *GameHandler) ListQuestions(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	category := strings.TrimSpace(c.QueryParam("category"))
	difficulty := models.Difficulty(strings.TrimSpace(c.QueryParam("difficulty")))

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		limit = parsed
	}

	questions, err := h.Questions.List(c.Request().Context(), category, difficulty, limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid filter")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, QuestionsResponse{Questions: questions})
}

// Answer принимает ответ на вопрос: прогрессия обновляется атомарно,
// сессия получает очки за верный ответ и теряет жизнь за неверный.
func (h *GameHandler) Answer(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid question id")
	}

	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	question, err := h.Questions.GetByID(c.Request().Context(), questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "question not found")
		}
		return serverError(c)
	}

	if *req.AnswerIndex >= len(question.Options) {
		return badRequest(c, "answer index out of range")
	}

	correct := *req.AnswerIndex == question.AnswerIndex

	progress, result, err := h.Progress.RecordAnswer(c.Request().Context(), userID, question.Points, question.Category, correct)
	if err != nil {
		return serverError(c)
	}

	var session game.Session
	if correct {
		session = h.Sessions.AddScore(userID, question.Points)
	} else {
		session = h.Sessions.LoseLife(userID)
	}

	if result.LeveledUp {
		h.Hub.Publish(userID, notifications.LevelUpEvent(result.Level, result.XP))
	}
	if correct && result.Streak > 1 {
		h.Hub.Publish(userID, notifications.StreakEvent(progress.CurrentStreak, progress.LongestStreak))
	}

	return c.JSON(http.StatusOK, AnswerResponse{
		Correct:  correct,
		Result:   result,
		Progress: progress,
		Session:  session,
	})
}

// GetSession возвращает текущую игровую сессию.
func (h *GameHandler) GetSession(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	return c.JSON(http.StatusOK, SessionResponse{Session: h.Sessions.Get(userID)})
}

// Move передвигает фишку по кольцевому полю.
func (h *GameHandler) Move(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	session, err := h.Sessions.Move(userID, req.Steps)
	if err != nil {
		if errors.Is(err, game.ErrSessionOver) {
			return conflict(c, "session is over")
		}
		return badRequest(c, "invalid move")
	}

	return c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// ResetSession начинает новую сессию, не трогая прогрессию.
func (h *GameHandler) ResetSession(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	return c.JSON(http.StatusOK, SessionResponse{Session: h.Sessions.Reset(userID)})
}
