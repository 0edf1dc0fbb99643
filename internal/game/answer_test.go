package game

import (
	"testing"

	"example.com/finlit-quest/backend/internal/models"
)

// TestApplyAnswerCorrect проверяет начисление XP и переход уровня.
func TestApplyAnswerCorrect(t *testing.T) {
	progress := &models.PlayerProgress{XP: 95, Level: 1}
	stat := &models.CategoryStat{Category: "investing"}

	result := ApplyAnswer(progress, stat, 20, true)

	if progress.XP != 115 {
		t.Fatalf("expected xp 115, got %d", progress.XP)
	}
	if progress.Level != 2 {
		t.Fatalf("expected level 2, got %d", progress.Level)
	}
	if !result.LeveledUp {
		t.Fatal("expected leveled up flag")
	}
	if stat.Answered != 1 || stat.Correct != 1 {
		t.Fatalf("expected stat 1/1, got %d/%d", stat.Answered, stat.Correct)
	}
}

// TestApplyAnswerIncorrect проверяет, что неверный ответ не трогает XP
// и сбрасывает серию.
func TestApplyAnswerIncorrect(t *testing.T) {
	progress := &models.PlayerProgress{XP: 120, Level: 2, CurrentStreak: 4, LongestStreak: 4}
	stat := &models.CategoryStat{Category: "saving", Answered: 4, Correct: 4}

	result := ApplyAnswer(progress, stat, 20, false)

	if progress.XP != 120 {
		t.Fatalf("expected xp unchanged, got %d", progress.XP)
	}
	if progress.CurrentStreak != 0 {
		t.Fatalf("expected streak reset, got %d", progress.CurrentStreak)
	}
	if progress.LongestStreak != 4 {
		t.Fatalf("expected longest streak kept, got %d", progress.LongestStreak)
	}
	if result.PointsEarned != 0 {
		t.Fatalf("expected 0 points earned, got %d", result.PointsEarned)
	}
	if stat.Answered != 5 || stat.Correct != 4 {
		t.Fatalf("expected stat 5/4, got %d/%d", stat.Answered, stat.Correct)
	}
}

// TestLongestStreakNeverDecreases проверяет инвариант серии на смешанной
// последовательности ответов.
func TestLongestStreakNeverDecreases(t *testing.T) {
	progress := &models.PlayerProgress{}
	answers := []bool{true, true, true, false, true, false, true, true}

	longest := 0
	for _, correct := range answers {
		ApplyAnswer(progress, nil, 10, correct)
		if progress.LongestStreak < longest {
			t.Fatalf("longest streak decreased: %d -> %d", longest, progress.LongestStreak)
		}
		if progress.LongestStreak < progress.CurrentStreak {
			t.Fatalf("longest %d below current %d", progress.LongestStreak, progress.CurrentStreak)
		}
		longest = progress.LongestStreak
	}

	if longest != 3 {
		t.Fatalf("expected longest streak 3, got %d", longest)
	}
}

// TestLeveledUpEdgeTriggered проверяет, что флаг взводится один раз и
// держится до явного сброса.
func TestLeveledUpEdgeTriggered(t *testing.T) {
	progress := &models.PlayerProgress{XP: 95}

	ApplyAnswer(progress, nil, 10, true)
	if !progress.LeveledUp {
		t.Fatal("expected leveled up after crossing threshold")
	}

	// Следующий ответ внутри уровня не сбрасывает одноразовый флаг.
	ApplyAnswer(progress, nil, 10, true)
	if !progress.LeveledUp {
		t.Fatal("expected flag to persist until acknowledged")
	}

	AckLevelUp(progress)
	if progress.LeveledUp {
		t.Fatal("expected flag cleared after ack")
	}

	ApplyAnswer(progress, nil, 10, true)
	if progress.LeveledUp {
		t.Fatal("expected no flag without level transition")
	}
}

// TestApplyAnswerNegativePoints проверяет клампинг отрицательных очков.
func TestApplyAnswerNegativePoints(t *testing.T) {
	progress := &models.PlayerProgress{XP: 50}

	result := ApplyAnswer(progress, nil, -10, true)

	if progress.XP != 50 {
		t.Fatalf("expected xp unchanged, got %d", progress.XP)
	}
	if result.PointsEarned != 0 {
		t.Fatalf("expected 0 earned, got %d", result.PointsEarned)
	}
}
