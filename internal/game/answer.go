package game

import "example.com/finlit-quest/backend/internal/models"

type AnswerResult struct {
	PointsEarned int
	XP           int
	Level        int
	LeveledUp    bool
	Streak       int
}

// ApplyAnswer применяет ответ на вопрос к прогрессу игрока одним
// неделимым изменением: XP, уровень, серия и статистика категории
// обновляются вместе.
//
// XP растет ровно на points при верном ответе и не меняется при
// неверном. Флаг LeveledUp взводится только при переходе через границу
// уровня и остается взведенным до явного подтверждения потребителем.
func ApplyAnswer(progress *models.PlayerProgress, stat *models.CategoryStat, points int, correct bool) AnswerResult {
	if points < 0 {
		points = 0
	}

	earned := 0
	oldLevel := LevelOf(progress.XP)

	if correct {
		earned = points
		progress.XP += points
		progress.CurrentStreak++
	} else {
		progress.CurrentStreak = 0
	}

	if progress.CurrentStreak > progress.LongestStreak {
		progress.LongestStreak = progress.CurrentStreak
	}

	progress.Level = LevelOf(progress.XP)
	if progress.Level > oldLevel {
		progress.LeveledUp = true
	}

	if stat != nil {
		stat.Answered++
		if correct {
			stat.Correct++
		}
	}

	return AnswerResult{
		PointsEarned: earned,
		XP:           progress.XP,
		Level:        progress.Level,
		LeveledUp:    progress.LeveledUp,
		Streak:       progress.CurrentStreak,
	}
}

// GrantXP начисляет XP вне квиза (ежедневный челлендж) через ту же
// логику уровней, чтобы детекция повышения оставалась в одном месте.
// Серию ответов бонус не трогает.
func GrantXP(progress *models.PlayerProgress, amount int) AnswerResult {
	if amount < 0 {
		amount = 0
	}

	oldLevel := LevelOf(progress.XP)
	progress.XP += amount
	progress.Level = LevelOf(progress.XP)
	if progress.Level > oldLevel {
		progress.LeveledUp = true
	}

	return AnswerResult{
		PointsEarned: amount,
		XP:           progress.XP,
		Level:        progress.Level,
		LeveledUp:    progress.LeveledUp,
		Streak:       progress.CurrentStreak,
	}
}

// AckLevelUp сбрасывает одноразовый флаг повышения уровня.
func AckLevelUp(progress *models.PlayerProgress) {
	progress.LeveledUp = false
}
