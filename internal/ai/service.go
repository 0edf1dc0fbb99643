package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"example.com/finlit-quest/backend/internal/models"
)

// Системные промпты трех режимов собеседника. Режим меняет только тон:
// финансовая фактура ответов одна и та же.
var modePrompts = map[models.ChatMode]string{
	models.ChatModeAdvisor: "You are a calm, knowledgeable personal finance advisor for young adults. " +
		"Give practical, specific advice about budgeting, saving and investing. " +
		"Keep answers short (under 120 words) and concrete.",
	models.ChatModeHype: "You are an enthusiastic hype-coach for personal finance. " +
		"Celebrate every win, keep energy high, use short punchy sentences. " +
		"Still give correct, actionable money advice under the excitement.",
	models.ChatModeRoast: "You are a sharp-tongued but good-natured financial roast master. " +
		"Playfully call out bad money habits, then give the correct advice. " +
		"Never be cruel, never mock poverty, keep it fun.",
}

type Turn struct {
	Role    models.ChatRole
	Content string
}

type ChatInput struct {
	Mode    models.ChatMode
	History []Turn
	Message string
}

type Service struct {
	client Client
}

// NewService создает сервис чата поверх AI-клиента.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Chat собирает промпт режима и историю диалога, зовет провайдера и
// возвращает текст ответа вместе с сырым ответом API для логирования.
func (s *Service) Chat(ctx context.Context, input ChatInput) (string, string, []byte, error) {
	system, ok := modePrompts[input.Mode]
	if !ok {
		return "", "", nil, fmt.Errorf("unknown chat mode: %s", input.Mode)
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return "", "", nil, errors.New("chat message is empty")
	}

	messages := make([]Message, 0, len(input.History)+2)
	messages = append(messages, Message{Role: "system", Content: system})

	for _, turn := range input.History {
		role := "user"
		if turn.Role == models.ChatRoleAssistant {
			role = "assistant"
		}
		messages = append(messages, Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, Message{Role: "user", Content: message})

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return "", system, raw, err
	}

	reply := strings.TrimSpace(content)
	if reply == "" {
		return "", system, raw, errors.New("ai response is empty")
	}

	return reply, system, raw, nil
}

// IsValidMode проверяет, поддерживается ли режим чата.
func IsValidMode(mode models.ChatMode) bool {
	_, ok := modePrompts[mode]
	return ok
}
