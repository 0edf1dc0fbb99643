package config

import (
	"reflect"
	"testing"
	"time"
)

// TestParseCSVEnv проверяет разбор списка email из ENV.
func TestParseCSVEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Admin@example.com, ,USER@Example.com ")

	got := parseCSVEnv("ADMIN_EMAILS")
	want := []string{"admin@example.com", "user@example.com"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseCSVEnvMissing проверяет поведение при отсутствии переменной.
func TestParseCSVEnvMissing(t *testing.T) {
	got := parseCSVEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

// TestParseDurationEnvInvalid проверяет ошибку на невалидной длительности.
func TestParseDurationEnvInvalid(t *testing.T) {
	t.Setenv("OTP_TIMEOUT", "ten seconds")

	if _, err := parseDurationEnv("OTP_TIMEOUT", time.Second); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

// TestGameConfigDefaults проверяет игровые значения по умолчанию.
func TestGameConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Game.StartingLives != 3 {
		t.Fatalf("expected 3 starting lives, got %d", cfg.Game.StartingLives)
	}
	if cfg.Game.BoardSize != 36 {
		t.Fatalf("expected board size 36, got %d", cfg.Game.BoardSize)
	}
	if cfg.Game.DailyChallengeXP != 50 {
		t.Fatalf("expected daily challenge xp 50, got %d", cfg.Game.DailyChallengeXP)
	}
}
