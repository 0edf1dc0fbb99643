package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GroqClient ходит в OpenAI-совместимый chat completions API Groq.
type GroqClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type groqRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type groqResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGroqClient создает клиент Groq.
func NewGroqClient(apiKey, baseURL, model string, timeout time.Duration, maxTokens int) *GroqClient {
	return &GroqClient{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat отправляет переписку в Groq и возвращает текст ответа вместе с
// сырым телом ответа API.
func (c *GroqClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, errors.New("groq api key is missing")
	}

	body, status, err := postJSON(ctx,
		c.httpClient,
		c.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey},
		groqRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: chatTemperature,
			MaxTokens:   resolveMaxTokens(c.maxTokens),
		},
	)
	if err != nil {
		return "", body, err
	}

	var parsed groqResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if status < 200 || status >= 300 {
		if decodeErr == nil && parsed.Error != nil {
			return "", body, fmt.Errorf("groq api error: %s", parsed.Error.Message)
		}
		return "", body, fmt.Errorf("groq api error: %s", strings.TrimSpace(string(body)))
	}

	if decodeErr != nil {
		return "", body, decodeErr
	}

	if len(parsed.Choices) == 0 {
		return "", body, errors.New("groq response missing choices")
	}

	return parsed.Choices[0].Message.Content, body, nil
}
