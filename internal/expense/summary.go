package expense

import (
	"math"

	"example.com/finlit-quest/backend/internal/models"
)

type BudgetSummary struct {
	Category       models.ExpenseCategory `json:"category"`
	LimitCents     int64                  `json:"limit_cents"`
	SpentCents     int64                  `json:"spent_cents"`
	RemainingCents int64                  `json:"remaining_cents"`
	Percentage     int                    `json:"percentage"`
	IsOverBudget   bool                   `json:"is_over_budget"`
	Color          string                 `json:"color"`
}

// Summarize обогащает бюджет производными полями. Процент округляется
// до ближайшего целого, не усекается.
func Summarize(budget models.Budget) BudgetSummary {
	summary := BudgetSummary{
		Category:       budget.Category,
		LimitCents:     budget.LimitCents,
		SpentCents:     budget.SpentCents,
		RemainingCents: budget.LimitCents - budget.SpentCents,
		IsOverBudget:   budget.SpentCents > budget.LimitCents,
		Color:          budget.Color,
	}

	if budget.LimitCents > 0 {
		summary.Percentage = int(math.Round(float64(budget.SpentCents) * 100 / float64(budget.LimitCents)))
	}

	return summary
}
