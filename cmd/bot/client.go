package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// apiClient is a minimal client for the HTTP API. The bot holds no database
// access; everything goes through the same routes the web client uses.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *apiClient) do(method, path, jwt string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if jwt != "" {
		req.Header.Set("Authorization", "Bearer "+jwt)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}

// Exchange trades a one-time linking token for a session JWT.
func (c *apiClient) Exchange(oneTimeToken string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/auth/bot-exchange", "",
		map[string]string{"token": oneTimeToken}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *apiClient) CreateTransaction(jwt string, amount float64, description, date string) error {
	body := map[string]any{
		"amount":           amount,
		"description":      description,
		"transaction_date": date,
	}
	return c.do(http.MethodPost, "/transactions", jwt, body, nil)
}

type dashboardTotals struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	MonthIncome  float64 `json:"monthIncome"`
	MonthExpense float64 `json:"monthExpense"`
}

func (c *apiClient) Dashboard(jwt string) (dashboardTotals, error) {
	var out dashboardTotals
	err := c.do(http.MethodGet, "/dashboard", jwt, nil, &out)
	return out, err
}
