package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidCode возвращается, когда сервис доставки отклонил код:
// неверный, просроченный или уже использованный.
var ErrInvalidCode = errors.New("otp code rejected")

// Client ходит во внешний сервис доставки одноразовых кодов. Хранение
// кодов, их срок жизни и одноразовость лежат на стороне сервиса.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type sendRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewClient создает клиент OTP-сервиса.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send запрашивает отправку кода на email.
func (c *Client) Send(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/otp/send", sendRequest{Email: email})
	return err
}

// Verify проверяет код; отклоненный код превращается в ErrInvalidCode.
func (c *Client) Verify(ctx context.Context, email, code string) error {
	status, err := c.post(ctx, "/otp/verify", verifyRequest{Email: email, Code: code})
	if err != nil {
		if status >= 400 && status < 500 {
			return ErrInvalidCode
		}
		return err
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var parsed apiResponse
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != "" {
			return response.StatusCode, fmt.Errorf("otp service error: %s", parsed.Error)
		}
		return response.StatusCode, fmt.Errorf("otp service error: %s", strings.TrimSpace(string(raw)))
	}

	return response.StatusCode, nil
}
