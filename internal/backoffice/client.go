package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/normalize"
	"github.com/Veraticus/rollover/internal/service"
)

// Endpoint paths relative to the base URL.
const (
	pathTransactions = "/Client/GetClientTransactionsByAccount"
	pathWithdrawals  = "/Client/GetClientWithdrawalRequestsWithTotals"
	pathBonuses      = "/Client/GetClientBonuses"
	pathAccounts     = "/Client/GetClientAccounts"
)

// The transactions endpoint takes dd-mm-yy local dates.
const transactionDateLayout = "02-01-06"

// maxWithdrawalPages bounds paging through withdrawal requests.
const maxWithdrawalPages = 50

// Client implements the service.BatchSource interface for the back-office.
type Client struct {
	httpClient *http.Client
	location   *time.Location
	baseURL    string
	token      string
	pageSize   int
}

var _ service.BatchSource = (*Client)(nil)

// NewClient creates a new back-office client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    strings.TrimSpace(cfg.Token),
		location: loc,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// GetTransactions fetches a player's raw ledger for the query range.
// Currency and balance type are looked up from the player's accounts when
// the query leaves them empty.
func (c *Client) GetTransactions(ctx context.Context, query service.TransactionQuery) ([]model.RawRecord, error) {
	if strings.TrimSpace(query.ClientID) == "" {
		return nil, fmt.Errorf("client id is required")
	}

	if query.CurrencyID == "" || query.BalanceTypeID == "" {
		accounts, err := c.GetClientAccounts(ctx, query.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve accounts: %w", err)
		}
		fillAccount(&query, accounts)
	}

	payload := transactionsRequest{
		StartTimeLocal:  query.Start.In(c.location).Format(transactionDateLayout),
		EndTimeLocal:    query.End.In(c.location).Format(transactionDateLayout),
		ClientID:        query.ClientID,
		CurrencyID:      query.CurrencyID,
		BalanceTypeID:   query.BalanceTypeID,
		DocumentTypeIDs: []int{},
	}

	slog.Debug("Requesting back-office transactions",
		"client_id", query.ClientID,
		"start_date", payload.StartTimeLocal,
		"end_date", payload.EndTimeLocal,
		"currency", query.CurrencyID,
		"balance_type", query.BalanceTypeID)

	data, err := c.post(ctx, pathTransactions, payload)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(data, "Objects")
	if err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	slog.Info("Fetched back-office transactions",
		"client_id", query.ClientID,
		"count", len(records))

	return records, nil
}

// GetWithdrawalRequests fetches every withdrawal request in the date range,
// following pages until a short page is returned.
func (c *Client) GetWithdrawalRequests(ctx context.Context, start, end time.Time) ([]model.WithdrawalRequest, error) {
	var all []model.RawRecord

	for page := 1; page <= maxWithdrawalPages; page++ {
		payload := withdrawalRequestsRequest{
			DateFrom: start.In(c.location).Format("2006-01-02") + "T00:00:00",
			DateTo:   end.In(c.location).Format("2006-01-02") + "T23:59:59",
			Statuses: []string{},
			Page:     page,
			PageSize: c.pageSize,
		}

		data, err := c.post(ctx, pathWithdrawals, payload)
		if err != nil {
			return nil, err
		}

		records, err := decodeRecords(data, "ClientRequests")
		if err != nil {
			return nil, fmt.Errorf("failed to decode withdrawal requests: %w", err)
		}
		all = append(all, records...)

		if len(records) < c.pageSize {
			break
		}
	}

	slog.Debug("Fetched withdrawal requests",
		"start_date", start.Format("2006-01-02"),
		"end_date", end.Format("2006-01-02"),
		"count", len(all))

	return normalize.WithdrawalRequests(all, c.location), nil
}

// GetClientBonuses fetches a player's bonuses, newest first.
func (c *Client) GetClientBonuses(ctx context.Context, clientID string) ([]model.ClientBonus, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("client id is required")
	}

	data, err := c.post(ctx, pathBonuses, bonusesRequest{ClientID: clientID})
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(data, "Objects")
	if err != nil {
		return nil, fmt.Errorf("failed to decode bonuses: %w", err)
	}

	return normalize.ClientBonuses(records, c.location), nil
}

// GetClientAccounts fetches a player's balance accounts.
func (c *Client) GetClientAccounts(ctx context.Context, clientID string) ([]Account, error) {
	data, err := c.post(ctx, pathAccounts, accountsRequest{ID: clientID})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return nil, nil
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

// post sends a JSON request and returns the Data member of the envelope.
func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Authentication", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrUpstream, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", common.ErrUpstream, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    truncate(strings.TrimSpace(string(raw)), 200),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
		}
	}
	if env.HasError {
		msg := env.AlertMessage
		if msg == "" {
			msg = "request returned an error"
		}
		return nil, &APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	return env.Data, nil
}

// decodeRecords reads Data as an array of objects, or as an object holding
// the array under key.
func decodeRecords(data json.RawMessage, key string) ([]model.RawRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}

	var items []any
	switch t := root.(type) {
	case []any:
		items = t
	case map[string]any:
		inner, ok := t[key]
		if !ok || inner == nil {
			return nil, nil
		}
		if items, ok = inner.([]any); !ok {
			return nil, fmt.Errorf("%s is not an array", key)
		}
	default:
		return nil, fmt.Errorf("unexpected data type %T", root)
	}

	records := make([]model.RawRecord, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, model.RawRecord(obj))
		}
	}
	return records, nil
}

func fillAccount(query *service.TransactionQuery, accounts []Account) {
	if len(accounts) > 0 {
		if query.CurrencyID == "" {
			query.CurrencyID = accounts[0].CurrencyID
		}
		if query.BalanceTypeID == "" {
			query.BalanceTypeID = accounts[0].balanceType()
		}
	}
	if query.BalanceTypeID == "" {
		query.BalanceTypeID = DefaultBalanceTypeID
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
