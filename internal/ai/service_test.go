package ai

import (
	"context"
	"errors"
	"testing"

	"example.com/finlit-quest/backend/internal/models"
)

type fakeClient struct {
	messages []Message
	reply    string
	err      error
}

func (f *fakeClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	f.messages = messages
	return f.reply, []byte(`{"raw":true}`), f.err
}

// TestChatBuildsModePrompt проверяет сборку системного промпта и истории.
func TestChatBuildsModePrompt(t *testing.T) {
	client := &fakeClient{reply: "Save 20% first."}
	service := NewService(client)

	reply, _, _, err := service.Chat(context.Background(), ChatInput{
		Mode: models.ChatModeAdvisor,
		History: []Turn{
			{Role: models.ChatRoleUser, Content: "How do I start saving?"},
			{Role: models.ChatRoleAssistant, Content: "Open a separate account."},
		},
		Message: "How much per month?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != "Save 20% first." {
		t.Fatalf("expected reply passthrough, got %q", reply)
	}
	if len(client.messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(client.messages))
	}
	if client.messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %s", client.messages[0].Role)
	}
	if client.messages[2].Role != "assistant" {
		t.Fatalf("expected assistant role, got %s", client.messages[2].Role)
	}
	if client.messages[3].Content != "How much per month?" {
		t.Fatalf("expected user message last, got %q", client.messages[3].Content)
	}
}

// TestChatUnknownMode проверяет отказ на неизвестном режиме.
func TestChatUnknownMode(t *testing.T) {
	service := NewService(&fakeClient{})

	_, _, _, err := service.Chat(context.Background(), ChatInput{Mode: "sensei", Message: "hi"})
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

// TestChatEmptyMessage проверяет отказ на пустом сообщении.
func TestChatEmptyMessage(t *testing.T) {
	service := NewService(&fakeClient{})

	_, _, _, err := service.Chat(context.Background(), ChatInput{Mode: models.ChatModeRoast, Message: "   "})
	if err == nil {
		t.Fatal("expected error for empty message")
	}
}

// TestChatClientError проверяет проброс ошибки провайдера.
func TestChatClientError(t *testing.T) {
	wantErr := errors.New("provider down")
	service := NewService(&fakeClient{err: wantErr})

	_, _, _, err := service.Chat(context.Background(), ChatInput{Mode: models.ChatModeHype, Message: "hello"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

// TestIsValidMode проверяет список поддерживаемых режимов.
func TestIsValidMode(t *testing.T) {
	for _, mode := range []models.ChatMode{models.ChatModeAdvisor, models.ChatModeHype, models.ChatModeRoast} {
		if !IsValidMode(mode) {
			t.Fatalf("expected mode %s to be valid", mode)
		}
	}

	if IsValidMode("zen") {
		t.Fatal("expected unknown mode to be invalid")
	}
}
