// Package gateway is the single chokepoint for outbound backend
// calls. It attaches the current bearer token to every request and
// evicts it on an authentication-rejected response.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bankcli/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.Mutex
	token          string
	onAuthRejected func()
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token attached to subsequent requests.
// Only the session store calls this.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// OnAuthRejected registers the callback invoked when the backend
// answers 401. The stored token is evicted first, then the callback
// runs once, before the triggering call returns its error.
func (c *Client) OnAuthRejected(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthRejected = fn
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp, false)
	return resp, err
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", reg, &resp, false)
	return resp, err
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, &accounts, false); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateAccount(ctx context.Context, spec domain.NewAccount) (domain.Account, error) {
	var account domain.Account
	err := c.do(ctx, http.MethodPost, "/accounts", spec, &account, false)
	return account, err
}

// ListTransactions normalizes the two response shapes the backend
// uses for transaction history: a bare array or a paginated
// {"content": [...]} wrapper.
func (c *Client) ListTransactions(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/transactions/account/"+accountNumber, nil, &raw, false); err != nil {
		return nil, err
	}
	var transactions []domain.Transaction
	if err := json.Unmarshal(raw, &transactions); err == nil {
		return transactions, nil
	}
	var page struct {
		Content []domain.Transaction `json:"content"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode transaction list: %w", err)
	}
	return page.Content, nil
}

func (c *Client) Deposit(ctx context.Context, req domain.DepositRequest) (domain.Transaction, error) {
	var tx domain.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions/deposit", req, &tx, true)
	return tx, err
}

func (c *Client) Withdraw(ctx context.Context, req domain.WithdrawRequest) (domain.Transaction, error) {
	var tx domain.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions/withdraw", req, &tx, true)
	return tx, err
}

func (c *Client) Transfer(ctx context.Context, req domain.TransferRequest) (domain.Transaction, error) {
	if req.AccountNumber == "" {
		req.AccountNumber = req.FromAccountNumber
	}
	if req.FromAccountNumber == "" {
		req.FromAccountNumber = req.AccountNumber
	}
	var tx domain.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions/transfer", req, &tx, true)
	return tx, err
}

// do sends one request and decodes one outcome. No retries, no
// queuing: money-movement calls carry an idempotency key instead so
// the backend can deduplicate a resubmitted form.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, write bool) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	authenticated := false
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authenticated = true
	}
	if write {
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	// A 401 on a request that carried no token (login, signup) is an
	// ordinary rejection, not a stale-token eviction.
	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		c.evictToken()
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// evictToken drops the stored token and notifies the session owner
// exactly once per rejected response, before the caller sees the
// rejection, so no further request goes out with a stale token.
func (c *Client) evictToken() {
	c.mu.Lock()
	c.token = ""
	notify := c.onAuthRejected
	c.mu.Unlock()
	if notify != nil {
		notify()
	}
}

func decodeErrorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}
