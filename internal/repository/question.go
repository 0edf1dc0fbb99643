package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/models"
)

type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository создает репозиторий вопросов квиза.
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetByID возвращает вопрос по идентификатору.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Question, error) {
	var question models.Question

	err := r.db.QueryRow(ctx,
		`SELECT id, text, options, answer_index, category, difficulty, points
		 FROM questions
		 WHERE id = $1`,
		id,
	).Scan(&question.ID, &question.Text, &question.Options, &question.AnswerIndex, &question.Category, &question.Difficulty, &question.Points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question, ErrNotFound
		}
		return question, err
	}

	return question, nil
}

// List возвращает вопросы с фильтрами по категории и сложности.
func (r *QuestionRepository) List(ctx context.Context, category string, difficulty models.Difficulty, limit int) ([]models.Question, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, text, options, answer_index, category, difficulty, points
		 FROM questions
		 WHERE ($1 = '' OR category = $1)
		   AND ($2 = '' OR difficulty = $2)
		 ORDER BY random()
		 LIMIT $3`,
		category, string(difficulty), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		var question models.Question
		err := rows.Scan(&question.ID, &question.Text, &question.Options, &question.AnswerIndex, &question.Category, &question.Difficulty, &question.Points)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// randomDailyQuestion выбирает равновероятный вопрос сложности
// easy/medium для ежедневного челленджа.
func randomDailyQuestion(ctx context.Context, tx pgx.Tx) (models.Question, error) {
	var question models.Question

	err := tx.QueryRow(ctx,
		`SELECT id, text, options, answer_index, category, difficulty, points
		 FROM questions
		 WHERE difficulty IN ('easy', 'medium')
		 ORDER BY random()
		 LIMIT 1`,
	).Scan(&question.ID, &question.Text, &question.Options, &question.AnswerIndex, &question.Category, &question.Difficulty, &question.Points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question, ErrNotFound
		}
		return question, err
	}

	return question, nil
}

func questionByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (models.Question, error) {
	var question models.Question

	err := tx.QueryRow(ctx,
		`SELECT id, text, options, answer_index, category, difficulty, points
		 FROM questions
		 WHERE id = $1`,
		id,
	).Scan(&question.ID, &question.Text, &question.Options, &question.AnswerIndex, &question.Category, &question.Difficulty, &question.Points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question, ErrNotFound
		}
		return question, err
	}

	return question, nil
}
