package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/models"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository создает репозиторий расходов.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// List возвращает расходы пользователя, свежие первыми.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount_cents, category, description, merchant, spent_at, created_at
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY spent_at DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// Create добавляет расход и увеличивает spent_cents бюджета той же
// категории, если такой бюджет заведен. Отсутствие бюджета не считается
// ошибкой: траты без бюджета допустимы.
func (r *ExpenseRepository) Create(ctx context.Context, expense models.Expense) (models.Expense, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return expense, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO expenses (id, user_id, amount_cents, category, description, merchant, spent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, amount_cents, category, description, merchant, spent_at, created_at`,
		uuid.New(), expense.UserID, expense.AmountCents, expense.Category, expense.Description, expense.Merchant, expense.SpentAt,
	).Scan(&expense.ID, &expense.UserID, &expense.AmountCents, &expense.Category, &expense.Description, &expense.Merchant, &expense.SpentAt, &expense.CreatedAt)
	if err != nil {
		return expense, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE budgets
		 SET spent_cents = spent_cents + $3, updated_at = NOW()
		 WHERE user_id = $1 AND category = $2`,
		expense.UserID, expense.Category, expense.AmountCents,
	)
	if err != nil {
		return expense, err
	}

	if err := tx.Commit(ctx); err != nil {
		return expense, err
	}

	return expense, nil
}

// Delete удаляет расход по идентификатору. Бюджет категории намеренно
// не уменьшается: удаление не отыгрывает начисление назад.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM expenses
		 WHERE id = $1 AND user_id = $2`,
		expenseID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ReplaceAll заменяет весь список расходов пользователя ингестией из
// банка: ручные записи стираются, spent_cents каждого бюджета
// пересчитывается по новому списку. Замена, не слияние.
func (r *ExpenseRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, expenses []models.Expense) (int, int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`DELETE FROM expenses WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, 0, err
	}

	var total int64
	for _, expense := range expenses {
		_, err = tx.Exec(ctx,
			`INSERT INTO expenses (id, user_id, amount_cents, category, description, merchant, spent_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), userID, expense.AmountCents, expense.Category, expense.Description, expense.Merchant, expense.SpentAt,
		)
		if err != nil {
			return 0, 0, err
		}
		total += expense.AmountCents
	}

	_, err = tx.Exec(ctx,
		`UPDATE budgets
		 SET spent_cents = 0, updated_at = NOW()
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, 0, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE budgets b
		 SET spent_cents = s.total, updated_at = NOW()
		 FROM (
			SELECT category, SUM(amount_cents) AS total
			FROM expenses
			WHERE user_id = $1
			GROUP BY category
		 ) s
		 WHERE b.user_id = $1 AND b.category = s.category`,
		userID,
	)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}

	return len(expenses), total, nil
}

// TotalSpent возвращает сумму всех расходов пользователя.
func (r *ExpenseRepository) TotalSpent(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM expenses
		 WHERE user_id = $1`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func scanExpenses(rows pgx.Rows) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var expense models.Expense
		var merchant *string
		err := rows.Scan(&expense.ID, &expense.UserID, &expense.AmountCents, &expense.Category, &expense.Description, &merchant, &expense.SpentAt, &expense.CreatedAt)
		if err != nil {
			return nil, err
		}
		expense.Merchant = merchant
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
