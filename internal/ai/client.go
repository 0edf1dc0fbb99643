package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const (
	defaultMaxTokens = 1024
	chatTemperature  = 0.7
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client абстрагирует провайдера генерации. Возвращает текст ответа и
// сырое тело ответа API для аудита.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}

// postJSON выполняет POST с JSON-телом и возвращает сырое тело ответа
// вместе со статусом. Тело читается целиком: оно уходит в аудит-лог
// даже при ошибке провайдера.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, err
	}

	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, 0, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, response.StatusCode, err
	}

	return body, response.StatusCode, nil
}
