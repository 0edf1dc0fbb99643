package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, LevelUpEvent(2, 115))

	select {
	case event := <-ch:
		if event.Type != EventLevelUp {
			t.Fatalf("expected event type level_up, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestHubPublishWithoutSubscribers проверяет, что публикация без
// подписчиков не паникует и не блокируется.
func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	hub.Publish(uuid.New(), BudgetUpdatedEvent("food", 15000, 40000))
}

// TestHubSlowSubscriberDrops проверяет, что переполненный канал
// подписчика не блокирует публикацию.
func TestHubSlowSubscriberDrops(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	_, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish(userID, StreakEvent(i, i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected publish to never block")
	}
}
