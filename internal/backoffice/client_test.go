package backoffice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/service"
)

type recordedRequest struct {
	Body   map[string]any
	Path   string
	Header http.Header
}

type fakeBackoffice struct {
	responses map[string][]string
	requests  []recordedRequest
	status    int
	mu        sync.Mutex
}

func (f *fakeBackoffice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	f.requests = append(f.requests, recordedRequest{Path: r.URL.Path, Header: r.Header.Clone(), Body: decoded})

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"Message":"denied"}`))
		return
	}

	queue := f.responses[r.URL.Path]
	if len(queue) == 0 {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte(queue[0]))
	if len(queue) > 1 {
		f.responses[r.URL.Path] = queue[1:]
	}
}

func newTestClient(t *testing.T, fake *fakeBackoffice) *Client {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL + "/api/tr"
	cfg.Token = "secret-token"
	cfg.Timeout = 5 * time.Second
	cfg.PageSize = 2

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"missing token", func(c *Config) { c.Token = "" }, common.ErrMissingConfig},
		{"bad url", func(c *Config) { c.BaseURL = "ftp://example" }, common.ErrInvalidConfig},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, common.ErrInvalidConfig},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Token = "token"
			tt.mutate(&cfg)
			_, err := NewClient(cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GetTransactions(t *testing.T) {
	fake := &fakeBackoffice{responses: map[string][]string{
		"/api/tr/Client/GetClientAccounts": {
			`{"HasError":false,"Data":[{"AccountId":"5211-abc-TRY","CurrencyId":"TRY","Balance":12.5}]}`,
		},
		"/api/tr/Client/GetClientTransactionsByAccount": {
			`{"HasError":false,"Data":{"Count":2,"Objects":[
				{"CreatedLocal":"2025-08-24T10:00:00","DocumentTypeName":"Yatırım","Amount":100},
				{"CreatedLocal":"2025-08-24T10:05:00","DocumentTypeId":10,"Amount":25.5,"Game":"Aviator"}
			]}}`,
		},
	}}
	client := newTestClient(t, fake)

	records, err := client.GetTransactions(context.Background(), service.TransactionQuery{
		ClientID: "42",
		Start:    time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, json.Number("25.5"), records[1]["Amount"])

	require.Len(t, fake.requests, 2)
	assert.Equal(t, "/api/tr/Client/GetClientAccounts", fake.requests[0].Path)
	assert.Equal(t, "42", fake.requests[0].Body["Id"])

	txReq := fake.requests[1]
	assert.Equal(t, "secret-token", txReq.Header.Get("Authentication"))
	assert.Equal(t, "22-08-25", txReq.Body["StartTimeLocal"])
	assert.Equal(t, "25-08-25", txReq.Body["EndTimeLocal"])
	assert.Equal(t, "TRY", txReq.Body["CurrencyId"])
	assert.Equal(t, "5211", txReq.Body["BalanceTypeId"])
}

func TestClient_GetTransactions_SkipsAccountLookup(t *testing.T) {
	fake := &fakeBackoffice{responses: map[string][]string{
		"/api/tr/Client/GetClientTransactionsByAccount": {`{"HasError":false,"Data":{"Objects":[]}}`},
	}}
	client := newTestClient(t, fake)

	records, err := client.GetTransactions(context.Background(), service.TransactionQuery{
		ClientID:      "42",
		CurrencyID:    "EUR",
		BalanceTypeID: "7",
	})
	require.NoError(t, err)
	assert.Empty(t, records)
	require.Len(t, fake.requests, 1)
	assert.Equal(t, "EUR", fake.requests[0].Body["CurrencyId"])
}

func TestClient_Errors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, &fakeBackoffice{status: http.StatusUnauthorized})
		_, err := client.GetClientBonuses(context.Background(), "42")

		assert.ErrorIs(t, err, common.ErrUnauthorized)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.True(t, apiErr.IsAuthError())
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, &fakeBackoffice{status: http.StatusBadGateway})
		_, err := client.GetClientBonuses(context.Background(), "42")

		assert.ErrorIs(t, err, common.ErrUpstream)
		assert.NotErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("envelope error", func(t *testing.T) {
		client := newTestClient(t, &fakeBackoffice{responses: map[string][]string{
			"/api/tr/Client/GetClientBonuses": {`{"HasError":true,"AlertMessage":"Client not found"}`},
		}})
		_, err := client.GetClientBonuses(context.Background(), "42")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Client not found", apiErr.Message)
		assert.ErrorIs(t, err, common.ErrUpstream)
	})

	t.Run("missing client id", func(t *testing.T) {
		client := newTestClient(t, &fakeBackoffice{})
		_, err := client.GetTransactions(context.Background(), service.TransactionQuery{})
		assert.Error(t, err)
	})
}

func TestClient_GetWithdrawalRequests_Pages(t *testing.T) {
	fake := &fakeBackoffice{responses: map[string][]string{
		"/api/tr/Client/GetClientWithdrawalRequestsWithTotals": {
			`{"HasError":false,"Data":{"ClientRequests":[
				{"Id":1,"ClientId":7,"ClientLogin":"ayse","Amount":500,"StateName":"Pending","RequestTimeLocal":"2025-08-24T10:00:00"},
				{"Id":2,"ClientId":8,"ClientLogin":"mehmet","Amount":"1.250,50","State":2,"RequestTimeLocal":"2025-08-24T11:00:00"}
			]}}`,
			`{"HasError":false,"Data":{"ClientRequests":[
				{"Id":3,"ClientId":9,"ClientLogin":"can","Amount":75,"StateName":"Reddedildi"}
			]}}`,
		},
	}}
	client := newTestClient(t, fake)

	requests, err := client.GetWithdrawalRequests(context.Background(),
		time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, requests, 3)

	assert.Equal(t, "ayse", requests[0].ClientLogin)
	assert.Equal(t, model.WithdrawalPending, requests[0].Status)
	assert.True(t, requests[1].Amount.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, "9", requests[2].ClientID)

	require.Len(t, fake.requests, 2)
	assert.Equal(t, "2025-08-24T00:00:00", fake.requests[0].Body["DateFrom"])
	assert.Equal(t, "2025-08-24T23:59:59", fake.requests[0].Body["DateTo"])
	assert.InDelta(t, 2, fake.requests[1].Body["Page"], 0)
}

func TestClient_GetClientBonuses(t *testing.T) {
	fake := &fakeBackoffice{responses: map[string][]string{
		"/api/tr/Client/GetClientBonuses": {
			`{"HasError":false,"Data":[
				{"Id":1,"Name":"Welcome","Amount":50,"ResultDateLocal":"2025-08-01T10:00:00","ResultType":3},
				{"Id":2,"Name":"Kayıp Bonusu","Amount":200,"ResultDateLocal":"2025-08-20T10:00:00","PaidAmount":200}
			]}`,
		},
	}}
	client := newTestClient(t, fake)

	bonuses, err := client.GetClientBonuses(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, bonuses, 2)
	assert.Equal(t, "Kayıp Bonusu", bonuses[0].Name)
	require.NotNil(t, bonuses[1].ResultType)
	assert.Equal(t, 3, *bonuses[1].ResultType)
	assert.Equal(t, "42", fake.requests[0].Body["ClientId"])
}
