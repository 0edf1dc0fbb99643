package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/models"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий бюджетов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// List возвращает бюджеты пользователя по категориям.
func (r *BudgetRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, limit_cents, spent_cents, color, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1
		 ORDER BY category`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		var budget models.Budget
		err := rows.Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.LimitCents, &budget.SpentCents, &budget.Color, &budget.CreatedAt, &budget.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return budgets, nil
}

// Upsert создает бюджет категории или обновляет лимит и цвет
// существующего. Накопленный spent_cents при обновлении сохраняется.
func (r *BudgetRepository) Upsert(ctx context.Context, userID uuid.UUID, category models.ExpenseCategory, limitCents int64, color string) (models.Budget, error) {
	var budget models.Budget

	err := r.db.QueryRow(ctx,
		`INSERT INTO budgets (id, user_id, category, limit_cents, color)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, category) DO UPDATE
		 SET limit_cents = EXCLUDED.limit_cents,
		     color = EXCLUDED.color,
		     updated_at = NOW()
		 RETURNING id, user_id, category, limit_cents, spent_cents, color, created_at, updated_at`,
		uuid.New(), userID, category, limitCents, color,
	).Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.LimitCents, &budget.SpentCents, &budget.Color, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return budget, err
	}

	return budget, nil
}

// Delete удаляет бюджет категории.
func (r *BudgetRepository) Delete(ctx context.Context, userID uuid.UUID, category models.ExpenseCategory) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM budgets
		 WHERE user_id = $1 AND category = $2`,
		userID, category,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByCategory возвращает бюджет одной категории.
func (r *BudgetRepository) GetByCategory(ctx context.Context, userID uuid.UUID, category models.ExpenseCategory) (models.Budget, error) {
	var budget models.Budget

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, category, limit_cents, spent_cents, color, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1 AND category = $2`,
		userID, category,
	).Scan(&budget.ID, &budget.UserID, &budget.Category, &budget.LimitCents, &budget.SpentCents, &budget.Color, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}
