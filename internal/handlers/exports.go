package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/auth"
	"example.com/finlit-quest/backend/internal/models"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает расходы пользователя в JSON-файл.
func (h *ExpenseHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenses, err := h.Expenses.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	filename := "expenses-" + time.Now().UTC().Format("2006-01-02") + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, ExpensesResponse{Expenses: expenses})
}

// ExportCSV выгружает расходы пользователя в CSV-файл.
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenses, err := h.Expenses.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeExpensesCSV(writer, expenses); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "expenses-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeExpensesCSV(writer *csv.Writer, expenses []models.Expense) error {
	header := []string{
		"id",
		"amount_cents",
		"category",
		"description",
		"merchant",
		"spent_at",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, expense := range expenses {
		merchant := ""
		if expense.Merchant != nil {
			merchant = *expense.Merchant
		}

		record := []string{
			expense.ID.String(),
			strconv.FormatInt(expense.AmountCents, 10),
			string(expense.Category),
			expense.Description,
			merchant,
			expense.SpentAt.Format(timeLayout),
			expense.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
