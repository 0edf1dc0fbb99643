package banklink

import "time"

type Account struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Mask        string `json:"mask"`
	Type        string `json:"type"`
	Institution string `json:"institution"`
}

// Transaction описывает сырую транзакцию агрегатора до категоризации.
type Transaction struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	MerchantName string    `json:"merchant_name"`
	Description  string    `json:"description"`
	AmountCents  int64     `json:"amount_cents"`
	Date         time.Time `json:"date"`
	IsIncome     bool      `json:"is_income"`
}

type linkTokenRequest struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
	UserID   string `json:"user_id"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
}

type accountsRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type transactionsRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type apiError struct {
	Error string `json:"error,omitempty"`
}
