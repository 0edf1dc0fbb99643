package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/models"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

type OverviewStats struct {
	TotalExpenses    int
	TotalSpentCents  int64
	TotalBudgetCents int64
	BudgetsOver      int
}

type CategorySpend struct {
	Category   models.ExpenseCategory
	SpentCents int64
	Count      int
}

type MonthlyTotal struct {
	Month      time.Time
	SpentCents int64
}

// NewStatsRepository создает репозиторий статистики.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview возвращает сводную статистику по расходам и бюджетам пользователя.
func (r *StatsRepository) Overview(ctx context.Context, userID uuid.UUID) (OverviewStats, error) {
	var stats OverviewStats

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount_cents), 0)
		 FROM expenses
		 WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalExpenses, &stats.TotalSpentCents)
	if err != nil {
		return stats, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(limit_cents), 0),
		        COUNT(*) FILTER (WHERE spent_cents > limit_cents)
		 FROM budgets
		 WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalBudgetCents, &stats.BudgetsOver)
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// SpendingByCategory возвращает траты пользователя с группировкой по категориям.
func (r *StatsRepository) SpendingByCategory(ctx context.Context, userID uuid.UUID) ([]CategorySpend, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category,
		        COALESCE(SUM(amount_cents), 0) AS spent_cents,
		        COUNT(*)
		 FROM expenses
		 WHERE user_id = $1
		 GROUP BY category
		 ORDER BY spent_cents DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spending := make([]CategorySpend, 0)
	for rows.Next() {
		var row CategorySpend
		err := rows.Scan(&row.Category, &row.SpentCents, &row.Count)
		if err != nil {
			return nil, err
		}
		spending = append(spending, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return spending, nil
}

// MonthlyTotals возвращает суммы расходов по месяцам.
func (r *StatsRepository) MonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]MonthlyTotal, error) {
	if months <= 0 {
		return nil, ErrInvalid
	}

	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('month', spent_at)::date AS month,
		        COALESCE(SUM(amount_cents), 0) AS spent_cents
		 FROM expenses
		 WHERE user_id = $1
		 GROUP BY month
		 ORDER BY month DESC
		 LIMIT $2`,
		userID, months,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]MonthlyTotal, 0)
	for rows.Next() {
		var row MonthlyTotal
		var month time.Time
		err := rows.Scan(&month, &row.SpentCents)
		if err != nil {
			return nil, err
		}
		row.Month = month
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
