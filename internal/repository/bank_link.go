package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/models"
)

type BankLinkRepository struct {
	db *pgxpool.Pool
}

// NewBankLinkRepository создает репозиторий привязок банковских счетов.
func NewBankLinkRepository(db *pgxpool.Pool) *BankLinkRepository {
	return &BankLinkRepository{db: db}
}

// Save сохраняет access-токен агрегатора; повторная привязка заменяет
// прежнюю.
func (r *BankLinkRepository) Save(ctx context.Context, userID uuid.UUID, accessToken string, institution *string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bank_links (user_id, access_token, institution, linked_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET access_token = EXCLUDED.access_token,
		     institution = EXCLUDED.institution,
		     linked_at = NOW()`,
		userID, accessToken, institution,
	)
	return err
}

// Get возвращает привязку пользователя.
func (r *BankLinkRepository) Get(ctx context.Context, userID uuid.UUID) (models.BankLink, error) {
	var link models.BankLink
	var institution *string

	err := r.db.QueryRow(ctx,
		`SELECT user_id, access_token, institution, linked_at
		 FROM bank_links
		 WHERE user_id = $1`,
		userID,
	).Scan(&link.UserID, &link.AccessToken, &institution, &link.LinkedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return link, ErrNotFound
		}
		return link, err
	}

	link.Institution = institution
	return link, nil
}

// Delete отвязывает счет.
func (r *BankLinkRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM bank_links WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
