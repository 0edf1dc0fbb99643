package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/models"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository создает репозиторий переписки с AI.
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// SaveTurn сохраняет пару сообщений одного хода: реплику пользователя и
// ответ ассистента.
func (r *ChatRepository) SaveTurn(ctx context.Context, userID uuid.UUID, mode models.ChatMode, userText, assistantText string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO ai_chats (id, user_id, role, mode, content)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, models.ChatRoleUser, mode, userText,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO ai_chats (id, user_id, role, mode, content)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, models.ChatRoleAssistant, mode, assistantText,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// History возвращает последние сообщения диалога в хронологическом
// порядке.
func (r *ChatRepository) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, role, mode, content, created_at
		 FROM (
			SELECT id, user_id, role, mode, content, created_at
			FROM ai_chats
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		 ) recent
		 ORDER BY created_at ASC`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var message models.ChatMessage
		err := rows.Scan(&message.ID, &message.UserID, &message.Role, &message.Mode, &message.Content, &message.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
