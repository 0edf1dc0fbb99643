package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/finlit-quest/backend/internal/models"
)

// TestWriteExpensesCSV проверяет заголовок и строки CSV-выгрузки.
func TestWriteExpensesCSV(t *testing.T) {
	merchant := "Starbucks"
	expenses := []models.Expense{
		{
			ID:          uuid.New(),
			AmountCents: 1250,
			Category:    models.CategoryFood,
			Description: "morning coffee",
			Merchant:    &merchant,
			SpentAt:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			AmountCents: 90000,
			Category:    models.CategoryHousing,
			Description: "rent",
			SpentAt:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeExpensesCSV(writer, expenses); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "id,amount_cents,category") {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	if !strings.Contains(lines[1], "1250,food,morning coffee,Starbucks") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}

	if !strings.Contains(lines[2], "90000,housing,rent,,") {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
}
