package game

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// TestLoseLifeToTerminal проверяет, что три потери жизни завершают
// сессию, а четвертая ничего не меняет.
func TestLoseLifeToTerminal(t *testing.T) {
	manager := NewSessionManager(3, 36)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		manager.LoseLife(userID)
	}

	session := manager.Get(userID)
	if session.Lives != 0 {
		t.Fatalf("expected 0 lives, got %d", session.Lives)
	}
	if session.State != SessionOver {
		t.Fatalf("expected session over, got %s", session.State)
	}

	session = manager.LoseLife(userID)
	if session.Lives != 0 {
		t.Fatalf("expected extra loss to be a no-op, got %d lives", session.Lives)
	}
}

// TestMoveWrapsAround проверяет кольцевое поле из 36 клеток.
func TestMoveWrapsAround(t *testing.T) {
	manager := NewSessionManager(3, 36)
	userID := uuid.New()

	session, err := manager.Move(userID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Position != 30 {
		t.Fatalf("expected position 30, got %d", session.Position)
	}

	session, err = manager.Move(userID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Position != 4 {
		t.Fatalf("expected position 4 after wrap, got %d", session.Position)
	}
}

// TestMoveRejectedWhenOver проверяет запрет хода в завершенной сессии.
func TestMoveRejectedWhenOver(t *testing.T) {
	manager := NewSessionManager(1, 36)
	userID := uuid.New()

	manager.LoseLife(userID)

	if _, err := manager.Move(userID, 3); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("expected ErrSessionOver, got %v", err)
	}
}

// TestResetStartsFreshSession проверяет сброс сессии к стартовым
// значениям.
func TestResetStartsFreshSession(t *testing.T) {
	manager := NewSessionManager(3, 36)
	userID := uuid.New()

	manager.AddScore(userID, 40)
	manager.LoseLife(userID)
	if _, err := manager.Move(userID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session := manager.Reset(userID)
	if session.Lives != 3 || session.Score != 0 || session.Position != 0 {
		t.Fatalf("expected fresh session, got %+v", session)
	}
	if session.State != SessionActive {
		t.Fatalf("expected active state, got %s", session.State)
	}
}

// TestAddScoreIgnoredWhenOver проверяет, что очки не капают после конца
// сессии.
func TestAddScoreIgnoredWhenOver(t *testing.T) {
	manager := NewSessionManager(1, 36)
	userID := uuid.New()

	manager.LoseLife(userID)
	session := manager.AddScore(userID, 25)

	if session.Score != 0 {
		t.Fatalf("expected score 0, got %d", session.Score)
	}
}
