package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/expense"
	"example.com/finlit-quest/backend/internal/models"
	"example.com/finlit-quest/backend/internal/notifications"
	"example.com/finlit-quest/backend/internal/repository"
)

type ExpenseHandler struct {
	Expenses *repository.ExpenseRepository
	Budgets  *repository.BudgetRepository
	Hub      *notifications.Hub
}

// NewExpenseHandler создает обработчик расходов и бюджетов.
func NewExpenseHandler(expenses *repository.ExpenseRepository, budgets *repository.BudgetRepository, hub *notifications.Hub) *ExpenseHandler {
	return &ExpenseHandler{
		Expenses: expenses,
		Budgets:  budgets,
		Hub:      hub,
	}
}

type CreateExpenseRequest struct {
	AmountCents int64   `json:"amount_cents" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,expensecategory"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Merchant    *string `json:"merchant" validate:"omitempty,max=200"`
	SpentAt     *string `json:"spent_at" validate:"omitempty,datetime=2006-01-02"`
}

type UpsertBudgetRequest struct {
	Category   string `json:"category" validate:"required,expensecategory"`
	LimitCents int64  `json:"limit_cents" validate:"required,gt=0"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
}

type ExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

type BudgetsResponse struct {
	Budgets []models.Budget `json:"budgets"`
}

type BudgetSummariesResponse struct {
	Summaries []expense.BudgetSummary `json:"summaries"`
}

// ListExpenses возвращает расходы пользователя, новые первыми.
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenses, err := h.Expenses.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ExpensesResponse{Expenses: expenses})
}

// CreateExpense добавляет расход и увеличивает траты подходящего бюджета.
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	category := models.ExpenseCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	if !models.IsValidCategory(category) {
		return badRequest(c, "unknown category")
	}

	spentAt := time.Now().UTC()
	if req.SpentAt != nil {
		parsed, err := time.Parse("2006-01-02", *req.SpentAt)
		if err != nil {
			return badRequest(c, "invalid spent_at")
		}
		spentAt = parsed
	}

	created, err := h.Expenses.Create(c.Request().Context(), models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		AmountCents: req.AmountCents,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Merchant:    req.Merchant,
		SpentAt:     spentAt,
	})
	if err != nil {
		return serverError(c)
	}

	h.publishBudget(c, userID, category)

	return c.JSON(http.StatusCreated, created)
}

// DeleteExpense удаляет расход. Траты бюджета при этом не пересчитываются.
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Expenses.Delete(c.Request().Context(), userID, expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListBudgets возвращает бюджеты пользователя.
func (h *ExpenseHandler) ListBudgets(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgets, err := h.Budgets.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetsResponse{Budgets: budgets})
}

// UpsertBudget создает или обновляет бюджет категории.
func (h *ExpenseHandler) UpsertBudget(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	category := models.ExpenseCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	if !models.IsValidCategory(category) {
		return badRequest(c, "unknown category")
	}

	color := req.Color
	if color == "" {
		color = "#4f46e5"
	}

	budget, err := h.Budgets.Upsert(c.Request().Context(), userID, category, req.LimitCents, color)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget удаляет бюджет категории.
func (h *ExpenseHandler) DeleteBudget(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	category := models.ExpenseCategory(strings.ToLower(strings.TrimSpace(c.Param("category"))))
	if !models.IsValidCategory(category) {
		return badRequest(c, "unknown category")
	}

	if err := h.Budgets.Delete(c.Request().Context(), userID, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// BudgetSummary возвращает каждый бюджет с остатком и процентом трат.
func (h *ExpenseHandler) BudgetSummary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgets, err := h.Budgets.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	summaries := make([]expense.BudgetSummary, 0, len(budgets))
	for _, budget := range budgets {
		summaries = append(summaries, expense.Summarize(budget))
	}

	return c.JSON(http.StatusOK, BudgetSummariesResponse{Summaries: summaries})
}

func (h *ExpenseHandler) publishBudget(c echo.Context, userID uuid.UUID, category models.ExpenseCategory) {
	budget, err := h.Budgets.GetByCategory(c.Request().Context(), userID, category)
	if err != nil {
		return
	}

	h.Hub.Publish(userID, notifications.BudgetUpdatedEvent(string(budget.Category), budget.SpentCents, budget.LimitCents))
}
