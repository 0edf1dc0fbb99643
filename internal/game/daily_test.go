package game

import (
	"errors"
	"testing"
	"time"

	"example.com/finlit-quest/backend/internal/models"
)

// TestChallengeExpired проверяет ленивую проверку смены календарного дня.
func TestChallengeExpired(t *testing.T) {
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	challenge := models.DailyChallenge{Date: ChallengeDay(noon)}

	if ChallengeExpired(challenge, noon.Add(11*time.Hour)) {
		t.Fatal("expected same-day challenge to stay valid")
	}

	if !ChallengeExpired(challenge, noon.Add(13*time.Hour)) {
		t.Fatal("expected challenge to expire on the next day")
	}
}

// TestChallengeDayNormalizesZone проверяет нормализацию к дате в UTC.
func TestChallengeDayNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 3, 15, 2, 30, 0, 0, zone)

	got := ChallengeDay(local)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestCompleteChallengeOncePerDay проверяет, что челлендж завершается
// ровно один раз: повторная попытка отклоняется без начисления XP.
func TestCompleteChallengeOncePerDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	challenge := models.DailyChallenge{Date: ChallengeDay(now)}

	earned, err := CompleteChallenge(&challenge, now, true, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earned != 50 {
		t.Fatalf("expected 50 xp, got %d", earned)
	}
	if !challenge.Completed || !challenge.WasCorrect || challenge.XPEarned != 50 {
		t.Fatalf("expected completed challenge, got %+v", challenge)
	}

	earned, err = CompleteChallenge(&challenge, now.Add(time.Hour), true, 50)
	if !errors.Is(err, ErrChallengeCompleted) {
		t.Fatalf("expected ErrChallengeCompleted, got %v", err)
	}
	if earned != 0 {
		t.Fatalf("expected 0 xp on repeat, got %d", earned)
	}
	if challenge.XPEarned != 50 {
		t.Fatalf("expected recorded xp to stay 50, got %d", challenge.XPEarned)
	}
}

// TestCompleteChallengeIncorrect проверяет, что неверный ответ
// завершает челлендж без награды.
func TestCompleteChallengeIncorrect(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	challenge := models.DailyChallenge{Date: ChallengeDay(now)}

	earned, err := CompleteChallenge(&challenge, now, false, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earned != 0 {
		t.Fatalf("expected 0 xp, got %d", earned)
	}
	if !challenge.Completed || challenge.WasCorrect {
		t.Fatalf("expected completed incorrect challenge, got %+v", challenge)
	}
}

// TestCompleteChallengeExpired проверяет отказ завершать запись
// прошедшего дня.
func TestCompleteChallengeExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	challenge := models.DailyChallenge{Date: ChallengeDay(now.AddDate(0, 0, -1))}

	if _, err := CompleteChallenge(&challenge, now, true, 50); !errors.Is(err, ErrChallengeExpired) {
		t.Fatalf("expected ErrChallengeExpired, got %v", err)
	}
	if challenge.Completed {
		t.Fatal("expected expired challenge to stay untouched")
	}
}
