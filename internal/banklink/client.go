package banklink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Client ходит во внешний банковский агрегатор. Публичный и access
// токены считаются непрозрачными строками агрегатора, не нашими секретами.
type Client struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
}

// NewClient создает клиент агрегатора с заданными учетными данными.
func NewClient(baseURL, clientID, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		secret:   secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateLinkToken запрашивает link-токен для начала привязки счета.
func (c *Client) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	var parsed linkTokenResponse
	err := c.post(ctx, "/link/token/create", linkTokenRequest{
		ClientID: c.clientID,
		Secret:   c.secret,
		UserID:   userID,
	}, &parsed)
	if err != nil {
		return "", err
	}

	return parsed.LinkToken, nil
}

// ExchangePublicToken меняет публичный токен на access-токен.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	var parsed exchangeResponse
	err := c.post(ctx, "/item/public_token/exchange", exchangeRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		PublicToken: publicToken,
	}, &parsed)
	if err != nil {
		return "", err
	}

	return parsed.AccessToken, nil
}

// Accounts возвращает привязанные счета.
func (c *Client) Accounts(ctx context.Context, accessToken string) ([]Account, error) {
	var parsed accountsResponse
	err := c.post(ctx, "/accounts/get", accountsRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
	}, &parsed)
	if err != nil {
		return nil, err
	}

	return parsed.Accounts, nil
}

// Transactions возвращает транзакции за период.
func (c *Client) Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]Transaction, error) {
	var parsed transactionsResponse
	err := c.post(ctx, "/transactions/get", transactionsRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
	}, &parsed)
	if err != nil {
		return nil, err
	}

	return parsed.Transactions, nil
}

func (c *Client) post(ctx context.Context, path string, payload, target interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var parsed apiError
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != "" {
			return fmt.Errorf("bank link error: %s", parsed.Error)
		}
		return fmt.Errorf("bank link error: %s", strings.TrimSpace(string(raw)))
	}

	return json.Unmarshal(raw, target)
}
