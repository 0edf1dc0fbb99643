package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/repository"
)

type StatsHandler struct {
	Stats *repository.StatsRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

type OverviewResponse struct {
	TotalExpenses    int   `json:"total_expenses"`
	TotalSpentCents  int64 `json:"total_spent_cents"`
	TotalBudgetCents int64 `json:"total_budget_cents"`
	RemainingCents   int64 `json:"remaining_cents"`
	BudgetsOver      int   `json:"budgets_over"`
}

type CategorySpendingResponse struct {
	Categories []CategorySpendingItem `json:"categories"`
}

type CategorySpendingItem struct {
	Category   string `json:"category"`
	SpentCents int64  `json:"spent_cents"`
	Count      int    `json:"count"`
}

type MonthlyTotalsResponse struct {
	Months []MonthlyTotalItem `json:"months"`
}

type MonthlyTotalItem struct {
	Month      string `json:"month"`
	SpentCents int64  `json:"spent_cents"`
}

// Overview возвращает сводку по расходам и бюджетам.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.Stats.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalExpenses:    stats.TotalExpenses,
		TotalSpentCents:  stats.TotalSpentCents,
		TotalBudgetCents: stats.TotalBudgetCents,
		RemainingCents:   stats.TotalBudgetCents - stats.TotalSpentCents,
		BudgetsOver:      stats.BudgetsOver,
	})
}

// SpendingByCategory возвращает траты с разбивкой по категориям.
func (h *StatsHandler) SpendingByCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Stats.SpendingByCategory(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	categories := make([]CategorySpendingItem, 0, len(items))
	for _, item := range items {
		categories = append(categories, CategorySpendingItem{
			Category:   string(item.Category),
			SpentCents: item.SpentCents,
			Count:      item.Count,
		})
	}

	return c.JSON(http.StatusOK, CategorySpendingResponse{Categories: categories})
}

// MonthlyTotals возвращает суммы расходов по месяцам.
func (h *StatsHandler) MonthlyTotals(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	months := 6
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid months")
		}
		if parsed > 24 {
			parsed = 24
		}
		months = parsed
	}

	items, err := h.Stats.MonthlyTotals(c.Request().Context(), userID, months)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid months")
		}
		return serverError(c)
	}

	response := make([]MonthlyTotalItem, 0, len(items))
	for _, item := range items {
		response = append(response, MonthlyTotalItem{
			Month:      item.Month.Format("2006-01"),
			SpentCents: item.SpentCents,
		})
	}

	return c.JSON(http.StatusOK, MonthlyTotalsResponse{Months: response})
}
