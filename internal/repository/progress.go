package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finlit-quest/backend/internal/game"
	"example.com/finlit-quest/backend/internal/models"
)

type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository создает репозиторий прогрессии игрока.
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get возвращает прогресс пользователя, создавая пустую запись при
// первом обращении.
func (r *ProgressRepository) Get(ctx context.Context, userID uuid.UUID) (models.PlayerProgress, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.PlayerProgress{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	progress, err := lockProgress(ctx, tx, userID)
	if err != nil {
		return models.PlayerProgress{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.PlayerProgress{}, err
	}

	return progress, nil
}

// RecordAnswer применяет ответ на вопрос одним неделимым изменением:
// XP, уровень, серия и статистика категории обновляются в одной
// транзакции под блокировкой строки прогресса.
func (r *ProgressRepository) RecordAnswer(ctx context.Context, userID uuid.UUID, points int, category string, correct bool) (models.PlayerProgress, game.AnswerResult, error) {
	var result game.AnswerResult

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.PlayerProgress{}, result, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	progress, err := lockProgress(ctx, tx, userID)
	if err != nil {
		return models.PlayerProgress{}, result, err
	}

	category = strings.TrimSpace(strings.ToLower(category))

	var stat *models.CategoryStat
	if category != "" {
		loaded, err := lockCategoryStat(ctx, tx, userID, category)
		if err != nil {
			return models.PlayerProgress{}, result, err
		}
		stat = &loaded
	}

	result = game.ApplyAnswer(&progress, stat, points, correct)

	if err := saveProgress(ctx, tx, progress); err != nil {
		return models.PlayerProgress{}, result, err
	}

	if stat != nil {
		if err := saveCategoryStat(ctx, tx, userID, *stat); err != nil {
			return models.PlayerProgress{}, result, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.PlayerProgress{}, result, err
	}

	return progress, result, nil
}

// AckLevelUp сбрасывает одноразовый флаг повышения уровня.
func (r *ProgressRepository) AckLevelUp(ctx context.Context, userID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE player_progress
		 SET leveled_up = FALSE, updated_at = NOW()
		 WHERE user_id = $1`,
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

// CategoryStats возвращает статистику ответов по категориям.
func (r *ProgressRepository) CategoryStats(ctx context.Context, userID uuid.UUID) ([]models.CategoryStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, answered, correct
		 FROM category_stats
		 WHERE user_id = $1
		 ORDER BY category`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.CategoryStat, 0)
	for rows.Next() {
		var stat models.CategoryStat
		if err := rows.Scan(&stat.Category, &stat.Answered, &stat.Correct); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// lockProgress берет строку прогресса под FOR UPDATE, создавая пустую
// при первом обращении. Уровень всегда пересчитывается из XP.
func lockProgress(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (models.PlayerProgress, error) {
	var progress models.PlayerProgress

	_, err := tx.Exec(ctx,
		`INSERT INTO player_progress (user_id)
		 VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return progress, err
	}

	err = tx.QueryRow(ctx,
		`SELECT user_id, xp, current_streak, longest_streak, leveled_up, updated_at
		 FROM player_progress
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).Scan(&progress.UserID, &progress.XP, &progress.CurrentStreak, &progress.LongestStreak, &progress.LeveledUp, &progress.UpdatedAt)
	if err != nil {
		return progress, err
	}

	progress.Level = game.LevelOf(progress.XP)
	return progress, nil
}

func saveProgress(ctx context.Context, tx pgx.Tx, progress models.PlayerProgress) error {
	_, err := tx.Exec(ctx,
		`UPDATE player_progress
		 SET xp = $2,
		     current_streak = $3,
		     longest_streak = $4,
		     leveled_up = $5,
		     updated_at = NOW()
		 WHERE user_id = $1`,
		progress.UserID, progress.XP, progress.CurrentStreak, progress.LongestStreak, progress.LeveledUp,
	)
	return err
}

func lockCategoryStat(ctx context.Context, tx pgx.Tx, userID uuid.UUID, category string) (models.CategoryStat, error) {
	stat := models.CategoryStat{Category: category}

	_, err := tx.Exec(ctx,
		`INSERT INTO category_stats (user_id, category)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, category) DO NOTHING`,
		userID, category,
	)
	if err != nil {
		return stat, err
	}

	err = tx.QueryRow(ctx,
		`SELECT answered, correct
		 FROM category_stats
		 WHERE user_id = $1 AND category = $2
		 FOR UPDATE`,
		userID, category,
	).Scan(&stat.Answered, &stat.Correct)
	if err != nil {
		return stat, err
	}

	return stat, nil
}

func saveCategoryStat(ctx context.Context, tx pgx.Tx, userID uuid.UUID, stat models.CategoryStat) error {
	_, err := tx.Exec(ctx,
		`UPDATE category_stats
		 SET answered = $3, correct = $4
		 WHERE user_id = $1 AND category = $2`,
		userID, stat.Category, stat.Answered, stat.Correct,
	)
	return err
}
