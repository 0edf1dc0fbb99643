package notifications

// LevelUpEvent собирает событие повышения уровня.
func LevelUpEvent(level, xp int) Event {
	return Event{
		Type: EventLevelUp,
		Data: map[string]interface{}{
			"level": level,
			"xp":    xp,
		},
	}
}

// StreakEvent собирает событие продления серии правильных ответов.
func StreakEvent(current, longest int) Event {
	return Event{
		Type: EventStreak,
		Data: map[string]interface{}{
			"current": current,
			"longest": longest,
		},
	}
}

// BudgetUpdatedEvent собирает событие изменения трат по категории.
func BudgetUpdatedEvent(category string, spentCents, limitCents int64) Event {
	return Event{
		Type: EventBudgetUpdated,
		Data: map[string]interface{}{
			"category":    category,
			"spent_cents": spentCents,
			"limit_cents": limitCents,
		},
	}
}

// DailyChallengeCompletedEvent собирает событие завершения дневного
// испытания.
func DailyChallengeCompletedEvent(wasCorrect bool, xpEarned int) Event {
	return Event{
		Type: EventDailyChallengeCompleted,
		Data: map[string]interface{}{
			"was_correct": wasCorrect,
			"xp_earned":   xpEarned,
		},
	}
}
