package expense

import (
	"testing"

	"example.com/finlit-quest/backend/internal/models"
)

// TestCategorize проверяет детерминированную категоризацию по ключевым
// словам продавца и описания.
func TestCategorize(t *testing.T) {
	cases := []struct {
		merchant    string
		description string
		want        models.ExpenseCategory
	}{
		{"Starbucks #1234", "", models.CategoryFood},
		{"", "Monthly rent payment", models.CategoryHousing},
		{"Uber", "trip downtown", models.CategoryTransport},
		{"NETFLIX.COM", "", models.CategoryEntertainment},
		{"Amazon Marketplace", "", models.CategoryShopping},
		{"City Electric Co", "", models.CategoryBills},
		{"Unknown Vendor", "misc", models.CategoryOther},
	}

	for _, tc := range cases {
		if got := Categorize(tc.merchant, tc.description); got != tc.want {
			t.Fatalf("Categorize(%q, %q): expected %s, got %s", tc.merchant, tc.description, tc.want, got)
		}
	}
}

// TestCategorizeDeterministic проверяет стабильность результата.
func TestCategorizeDeterministic(t *testing.T) {
	first := Categorize("Gas Station 42", "")
	for i := 0; i < 10; i++ {
		if got := Categorize("Gas Station 42", ""); got != first {
			t.Fatalf("expected stable category %s, got %s", first, got)
		}
	}
}

// TestSummarize проверяет производные поля бюджета.
func TestSummarize(t *testing.T) {
	budget := models.Budget{
		Category:   models.CategoryFood,
		LimitCents: 40000,
		SpentCents: 15000,
	}

	summary := Summarize(budget)

	if summary.RemainingCents != 25000 {
		t.Fatalf("expected remaining 25000, got %d", summary.RemainingCents)
	}
	if summary.Percentage != 38 {
		t.Fatalf("expected percentage 38 (rounded), got %d", summary.Percentage)
	}
	if summary.IsOverBudget {
		t.Fatal("expected not over budget")
	}
}

// TestSummarizeOverBudget проверяет перерасход и отрицательный остаток.
func TestSummarizeOverBudget(t *testing.T) {
	budget := models.Budget{
		Category:   models.CategoryShopping,
		LimitCents: 10000,
		SpentCents: 12500,
	}

	summary := Summarize(budget)

	if !summary.IsOverBudget {
		t.Fatal("expected over budget")
	}
	if summary.RemainingCents != -2500 {
		t.Fatalf("expected remaining -2500, got %d", summary.RemainingCents)
	}
	if summary.Percentage != 125 {
		t.Fatalf("expected percentage 125, got %d", summary.Percentage)
	}
}

// TestSummarizeZeroLimit проверяет защиту от деления на ноль.
func TestSummarizeZeroLimit(t *testing.T) {
	summary := Summarize(models.Budget{Category: models.CategoryOther})

	if summary.Percentage != 0 {
		t.Fatalf("expected percentage 0, got %d", summary.Percentage)
	}
}
