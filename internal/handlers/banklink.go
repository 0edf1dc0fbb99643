package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/banklink"
	"example.com/finlit-quest/backend/internal/expense"
	"example.com/finlit-quest/backend/internal/models"
	"example.com/finlit-quest/backend/internal/notifications"
	"example.com/finlit-quest/backend/internal/repository"
)

// syncWindowDays ограничивает глубину выгрузки транзакций при синхронизации.
const syncWindowDays = 90

type BankHandler struct {
	Client   *banklink.Client
	Links    *repository.BankLinkRepository
	Expenses *repository.ExpenseRepository
	Budgets  *repository.BudgetRepository
	Hub      *notifications.Hub
}

// NewBankHandler создает обработчик подключения банка и синхронизации.
func NewBankHandler(client *banklink.Client, links *repository.BankLinkRepository, expenses *repository.ExpenseRepository, budgets *repository.BudgetRepository, hub *notifications.Hub) *BankHandler {
	return &BankHandler{
		Client:   client,
		Links:    links,
		Expenses: expenses,
		Budgets:  budgets,
		Hub:      hub,
	}
}

type ExchangeRequest struct {
	PublicToken string  `json:"public_token" validate:"required"`
	Institution *string `json:"institution" validate:"omitempty,max=200"`
}

type LinkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type AccountsResponse struct {
	Accounts []banklink.Account `json:"accounts"`
}

type SyncResponse struct {
	Imported        int   `json:"imported"`
	TotalSpentCents int64 `json:"total_spent_cents"`
}

// CreateLinkToken запрашивает у агрегатора токен для привязки банка.
func (h *BankHandler) CreateLinkToken(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	linkToken, err := h.Client.CreateLinkToken(c.Request().Context(), userID.String())
	if err != nil {
		return badGateway(c, "bank aggregator unavailable")
	}

	return c.JSON(http.StatusOK, LinkTokenResponse{LinkToken: linkToken})
}

// Exchange меняет публичный токен на access-токен и сохраняет привязку.
func (h *BankHandler) Exchange(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ExchangeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	accessToken, err := h.Client.ExchangePublicToken(c.Request().Context(), req.PublicToken)
	if err != nil {
		return badGateway(c, "bank aggregator unavailable")
	}

	if err := h.Links.Save(c.Request().Context(), userID, accessToken, req.Institution); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Accounts возвращает счета привязанного банка.
func (h *BankHandler) Accounts(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	link, err := h.Links.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bank is not linked")
		}
		return serverError(c)
	}

	accounts, err := h.Client.Accounts(c.Request().Context(), link.AccessToken)
	if err != nil {
		return badGateway(c, "bank aggregator unavailable")
	}

	return c.JSON(http.StatusOK, AccountsResponse{Accounts: accounts})
}

// Sync выгружает транзакции, раскладывает их по категориям и заменяет
// весь список расходов пользователя новой выборкой. Доходные операции
// отбрасываются.
func (h *BankHandler) Sync(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	link, err := h.Links.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bank is not linked")
		}
		return serverError(c)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -syncWindowDays)

	transactions, err := h.Client.Transactions(c.Request().Context(), link.AccessToken, start, end)
	if err != nil {
		return badGateway(c, "bank aggregator unavailable")
	}

	expenses := make([]models.Expense, 0, len(transactions))
	for _, tx := range transactions {
		if tx.IsIncome {
			continue
		}

		var merchant *string
		if tx.MerchantName != "" {
			name := tx.MerchantName
			merchant = &name
		}

		expenses = append(expenses, models.Expense{
			ID:          uuid.New(),
			UserID:      userID,
			AmountCents: tx.AmountCents,
			Category:    expense.Categorize(tx.MerchantName, tx.Description),
			Description: tx.Description,
			Merchant:    merchant,
			SpentAt:     tx.Date,
		})
	}

	imported, total, err := h.Expenses.ReplaceAll(c.Request().Context(), userID, expenses)
	if err != nil {
		return serverError(c)
	}

	h.publishBudgets(c, userID)

	return c.JSON(http.StatusOK, SyncResponse{
		Imported:        imported,
		TotalSpentCents: total,
	})
}

// Unlink удаляет привязку банка.
func (h *BankHandler) Unlink(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.Links.Delete(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.NoContent(http.StatusNoContent)
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BankHandler) publishBudgets(c echo.Context, userID uuid.UUID) {
	budgets, err := h.Budgets.List(c.Request().Context(), userID)
	if err != nil {
		return
	}

	for _, budget := range budgets {
		h.Hub.Publish(userID, notifications.BudgetUpdatedEvent(string(budget.Category), budget.SpentCents, budget.LimitCents))
	}
}
