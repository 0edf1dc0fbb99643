package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/game"
	"example.com/finlit-quest/backend/internal/models"
)

type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository создает репозиторий ежедневных челленджей.
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetForDate возвращает челлендж на дату, назначая новый вопрос, если
// запись пустая или относится к прошедшему дню. Сброс ленивый: никакого
// планировщика, только проверка на чтении.
func (r *ChallengeRepository) GetForDate(ctx context.Context, userID uuid.UUID, now time.Time) (models.DailyChallenge, models.Question, error) {
	var challenge models.DailyChallenge
	var question models.Question

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return challenge, question, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	challenge, found, err := lockChallenge(ctx, tx, userID)
	if err != nil {
		return challenge, question, err
	}

	today := game.ChallengeDay(now)

	if !found || challenge.QuestionID == nil || game.ChallengeExpired(challenge, now) {
		question, err = randomDailyQuestion(ctx, tx)
		if err != nil {
			return challenge, question, err
		}

		challenge = models.DailyChallenge{
			UserID:     userID,
			Date:       today,
			QuestionID: &question.ID,
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO daily_challenges (user_id, challenge_date, question_id, completed, was_correct, xp_earned)
			 VALUES ($1, $2, $3, FALSE, FALSE, 0)
			 ON CONFLICT (user_id) DO UPDATE
			 SET challenge_date = EXCLUDED.challenge_date,
			     question_id = EXCLUDED.question_id,
			     completed = FALSE,
			     was_correct = FALSE,
			     xp_earned = 0`,
			userID, today, question.ID,
		)
		if err != nil {
			return challenge, question, err
		}
	} else {
		question, err = questionByID(ctx, tx, *challenge.QuestionID)
		if err != nil {
			return challenge, question, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return challenge, question, err
	}

	return challenge, question, nil
}

// Complete завершает сегодняшний челлендж ровно один раз. Повторный
// вызов в тот же день отклоняется с ErrAlreadyCompleted, XP не
// начисляется дважды. Награда за верный ответ идет через общий путь
// начисления XP, поэтому повышение уровня фиксируется там же.
func (r *ChallengeRepository) Complete(ctx context.Context, userID uuid.UUID, now time.Time, wasCorrect bool, rewardXP int) (models.DailyChallenge, models.PlayerProgress, game.AnswerResult, error) {
	var challenge models.DailyChallenge
	var progress models.PlayerProgress
	var result game.AnswerResult

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return challenge, progress, result, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	challenge, found, err := lockChallenge(ctx, tx, userID)
	if err != nil {
		return challenge, progress, result, err
	}

	if !found {
		return challenge, progress, result, ErrNotFound
	}

	earned, err := game.CompleteChallenge(&challenge, now, wasCorrect, rewardXP)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrChallengeExpired):
			return challenge, progress, result, ErrNotFound
		case errors.Is(err, game.ErrChallengeCompleted):
			return challenge, progress, result, ErrAlreadyCompleted
		}
		return challenge, progress, result, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE daily_challenges
		 SET completed = TRUE, was_correct = $2, xp_earned = $3
		 WHERE user_id = $1`,
		userID, wasCorrect, earned,
	)
	if err != nil {
		return challenge, progress, result, err
	}

	progress, err = lockProgress(ctx, tx, userID)
	if err != nil {
		return challenge, progress, result, err
	}

	result = game.GrantXP(&progress, earned)

	if err := saveProgress(ctx, tx, progress); err != nil {
		return challenge, progress, result, err
	}

	if err := tx.Commit(ctx); err != nil {
		return challenge, progress, result, err
	}

	return challenge, progress, result, nil
}

func lockChallenge(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (models.DailyChallenge, bool, error) {
	var challenge models.DailyChallenge
	var questionID *uuid.UUID

	err := tx.QueryRow(ctx,
		`SELECT user_id, challenge_date, question_id, completed, was_correct, xp_earned
		 FROM daily_challenges
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).Scan(&challenge.UserID, &challenge.Date, &questionID, &challenge.Completed, &challenge.WasCorrect, &challenge.XPEarned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return challenge, false, nil
		}
		return challenge, false, err
	}

	challenge.QuestionID = questionID
	return challenge, true, nil
}
