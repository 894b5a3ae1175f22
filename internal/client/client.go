// Package client is the Go client for the fintrack API. It keeps the
// authenticated session explicit and maintains the caller's transaction list
// sorted by (chronological date, transaction id).
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fintrack-app/fintrack/internal/models"
)

// APIError is a non-2xx answer from the server, carrying the user-facing
// message from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the fintrack API. Session may be nil until Register or
// Login succeeds. Every call is a single attempt; failures surface once and
// the operation is abandoned.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		session:    session,
	}
}

// Session returns the current session, nil when not logged in.
func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account and logs the new user in.
func (c *Client) Register(username, password string) (*Session, error) {
	var resp models.AuthResponse
	err := c.do(http.MethodPost, "/register", models.RegisterRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.session = &Session{User: resp.User, Token: resp.Token}
	return c.session, nil
}

// Login authenticates and stores the resulting session on the client.
func (c *Client) Login(username, password string) (*Session, error) {
	var resp models.AuthResponse
	err := c.do(http.MethodPost, "/login", models.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.session = &Session{User: resp.User, Token: resp.Token}
	return c.session, nil
}

// VerifyToken checks whether the stored token is still accepted.
func (c *Client) VerifyToken() error {
	return c.do(http.MethodGet, "/verify-token", nil, nil)
}

// DeleteAccount removes the logged-in user and everything they own.
func (c *Client) DeleteAccount() error {
	return c.do(http.MethodDelete, "/users", nil, nil)
}

// Transactions fetches all of the user's transactions, already sorted by
// (chronological date, transaction id).
func (c *Client) Transactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.do(http.MethodGet, "/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// AddTransaction records a new transaction and returns it with the assigned id.
func (c *Client) AddTransaction(date, amount, tags string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(http.MethodPost, "/transactions", models.AddTransactionRequest{
		Date:   date,
		Amount: amount,
		Tags:   tags,
	}, &transaction)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateTransaction replaces a transaction's date, amount, and tags.
func (c *Client) UpdateTransaction(transactionID int, date, amount, tags string) error {
	return c.do(http.MethodPut, "/transactions", models.UpdateTransactionRequest{
		TransactionID: transactionID,
		Date:          date,
		Amount:        amount,
		Tags:          tags,
	}, nil)
}

// DeleteTransaction removes a transaction by id.
func (c *Client) DeleteTransaction(transactionID int) error {
	return c.do(http.MethodDelete, "/transactions", models.DeleteTransactionRequest{
		TransactionID: transactionID,
	}, nil)
}

// Analytics returns total spendings and income over an inclusive date range,
// optionally restricted to transactions carrying all tags in tagFilter.
func (c *Client) Analytics(startDate, endDate, tagFilter string) (*models.AnalyticsResponse, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	query.Set("tags", tagFilter)

	var resp models.AnalyticsResponse
	if err := c.do(http.MethodGet, "/transactions/analytics?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one request, encoding body as JSON when present and decoding a
// 2xx response into out when out is non-nil. Non-2xx answers become *APIError.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
