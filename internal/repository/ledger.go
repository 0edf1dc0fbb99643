package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/game"
	"example.com/finlit-quest/backend/internal/models"
)

// LedgerRepository хранит баланс AI-токенов. Баланс никогда не уходит
// в минус: списание проверяет остаток под FOR UPDATE.
type LedgerRepository struct {
	db              *pgxpool.Pool
	startingBalance int
}

// NewLedgerRepository создает репозиторий токенов с начальным балансом
// для новых пользователей.
func NewLedgerRepository(db *pgxpool.Pool, startingBalance int) *LedgerRepository {
	return &LedgerRepository{db: db, startingBalance: startingBalance}
}

// Get возвращает баланс токенов, создавая запись при первом обращении.
func (r *LedgerRepository) Get(ctx context.Context, userID uuid.UUID) (models.TokenLedger, error) {
	var ledger models.TokenLedger

	if err := r.ensure(ctx, userID); err != nil {
		return ledger, err
	}

	err := r.db.QueryRow(ctx,
		`SELECT user_id, balance, updated_at
		 FROM token_ledgers
		 WHERE user_id = $1`,
		userID,
	).Scan(&ledger.UserID, &ledger.Balance, &ledger.UpdatedAt)
	if err != nil {
		return ledger, err
	}

	return ledger, nil
}

// Spend списывает ровно один токен под блокировкой строки; при нулевом
// балансе возвращает ErrInsufficientTokens, не меняя запись.
func (r *LedgerRepository) Spend(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := r.ensure(ctx, userID); err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var balance int
	err = tx.QueryRow(ctx,
		`SELECT balance
		 FROM token_ledgers
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, err
	}

	remaining, ok := game.DebitToken(balance)
	if !ok {
		return 0, ErrInsufficientTokens
	}

	_, err = tx.Exec(ctx,
		`UPDATE token_ledgers
		 SET balance = $2, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, remaining,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return remaining, nil
}

// CreditTopic начисляет награду за пройденную тему ровно один раз:
// повторное прохождение той же темы упирается в уникальный ключ и
// превращается в ErrConflict без изменения баланса.
func (r *LedgerRepository) CreditTopic(ctx context.Context, userID uuid.UUID, topicID string, reward int) (int, error) {
	if err := r.ensure(ctx, userID); err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO topic_completions (user_id, topic_id)
		 VALUES ($1, $2)`,
		userID, topicID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrConflict
		}
		return 0, err
	}

	var balance int
	err = tx.QueryRow(ctx,
		`UPDATE token_ledgers
		 SET balance = balance + $2, updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING balance`,
		userID, reward,
	).Scan(&balance)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *LedgerRepository) ensure(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO token_ledgers (user_id, balance)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, r.startingBalance,
	)
	return err
}
