package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AIRepository struct {
	db *pgxpool.Pool
}

type AIRequestLog struct {
	UserID          uuid.UUID
	Mode            string
	Provider        string
	Model           string
	Prompt          string
	ResponsePayload []byte
	Success         bool
	ErrorMessage    *string
}

// NewAIRepository создает репозиторий для AI-запросов.
func NewAIRepository(db *pgxpool.Pool) *AIRepository {
	return &AIRepository{db: db}
}

// LogRequest сохраняет запись аудита обращения к провайдеру. Тело
// ответа хранится как текст: упавшие вызовы возвращают и не-JSON
// (HTML от шлюза), а их аудит терять нельзя. Пустое тело превращается
// в NULL.
func (r *AIRepository) LogRequest(ctx context.Context, log AIRequestLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ai_requests
		 (user_id, mode, provider, model, prompt, response_payload, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.UserID,
		log.Mode,
		log.Provider,
		log.Model,
		log.Prompt,
		payloadText(log.ResponsePayload),
		log.Success,
		log.ErrorMessage,
	)
	return err
}

func payloadText(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}

	body := string(raw)
	return &body
}
