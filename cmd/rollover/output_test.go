package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
	"github.com/Veraticus/rollover/internal/testutil/batches"
)

func TestOpenRequests(t *testing.T) {
	requests := []model.WithdrawalRequest{
		{ID: "1", Status: model.WithdrawalNew},
		{ID: "2", Status: model.WithdrawalPaid},
		{ID: "3", Status: model.WithdrawalPending},
		{ID: "4", Status: model.WithdrawalRejected},
		{ID: "5", Status: model.WithdrawalProcessing},
		{ID: "6", Status: model.WithdrawalCancelled},
	}

	open := openRequests(requests)

	ids := make([]string, 0, len(open))
	for _, r := range open {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"1", "3", "5"}, ids)
}

func TestWriteWithdrawalList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWithdrawalList(&buf, nil))
	assert.Contains(t, buf.String(), "No withdrawal requests in range")

	buf.Reset()
	require.NoError(t, writeWithdrawalList(&buf, []model.WithdrawalRequest{{
		ID:             "w9",
		ClientID:       "42",
		ClientLogin:    "ayse88",
		PaymentChannel: "Papara",
		Status:         model.WithdrawalNew,
		Amount:         decimal.NewFromInt(12500),
		RequestedAt:    time.Date(2025, 1, 5, 9, 30, 0, 0, time.UTC),
	}}))
	out := buf.String()
	for _, s := range []string{"Withdrawal requests (1)", "🆕", "w9", "ayse88", "12,500.00", "Papara", "2025-01-05 09:30"} {
		assert.Contains(t, out, s)
	}
}

func TestFormatBonus(t *testing.T) {
	paid := decimal.NewFromInt(50)
	resultType := 1
	policy := reconcile.DefaultPolicy()

	tests := []struct {
		name     string
		bonus    model.ClientBonus
		contains []string
	}{
		{
			name: "paid by amount",
			bonus: model.ClientBonus{
				Name:       "Loss rebate",
				Amount:     decimal.NewFromInt(100),
				PaidAmount: &paid,
				CreatedBy:  "ops.ali",
				CreatedAt:  time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC),
			},
			contains: []string{"Loss rebate", "100.00", "✓ paid", "50.00", "ops.ali", "2025-01-05 10:00"},
		},
		{
			name:     "unpaid result type",
			bonus:    model.ClientBonus{Amount: decimal.NewFromInt(25), ResultType: &resultType},
			contains: []string{"(unnamed bonus)", "not paid", "Granted", "-"},
		},
		{
			name:     "unknown",
			bonus:    model.ClientBonus{Name: "Welcome", ToWagerAmount: decimal.NewFromInt(300), WageredAmount: decimal.NewFromInt(120)},
			contains: []string{"unknown", "120.00 of 300.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripANSI(formatBonus(tt.bonus, policy))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestWriteBonuses_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBonuses(&buf, "42", nil, reconcile.DefaultPolicy()))
	assert.Contains(t, buf.String(), "Player 42 has no bonuses")
}

func TestWriteReview(t *testing.T) {
	result, err := reconcile.Reconcile(batches.RebateWin(t), testNow, reconcile.DefaultPolicy())
	require.NoError(t, err)

	req := &model.WithdrawalRequest{
		ClientName:     "Ayşe Yılmaz",
		ClientLogin:    "ayse88",
		PaymentChannel: "BankTransferBME",
		Info:           "Hesap Adı Soyadı: Ayşe Yılmaz, Banka Adı: Ziraat, IBAN: TR120006100519786457841326",
		Amount:         decimal.NewFromInt(3500),
	}

	var buf bytes.Buffer
	require.NoError(t, writeReview(&buf, req, result))
	out := buf.String()

	assert.Contains(t, out, "Withdrawal cap     : 3,000.00 (exceeded by 500.00)")
	assert.Contains(t, out, "IBAN           : TR120006100519786457841326")
	assert.Less(t, strings.Index(out, "Note"), strings.Index(out, "Account holder"))

	buf.Reset()
	req.PaymentChannel = "Papara"
	require.NoError(t, writeReview(&buf, req, result))
	assert.NotContains(t, buf.String(), "Account holder")
}

func TestFormatBatchList(t *testing.T) {
	assert.Contains(t, stripANSI(formatBatchList(nil)), "No cached batches")

	out := stripANSI(formatBatchList([]model.BatchSummary{{
		ID:          "b-1",
		ClientID:    "42",
		FetchedAt:   time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC),
		Start:       time.Date(2024, 12, 6, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		RecordCount: 17,
	}}))
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "2024-12-06 → 2025-01-05")
	assert.Contains(t, out, "17")
	assert.Contains(t, out, "b-1")
}

// stripANSI removes ANSI color codes for testing.
func stripANSI(s string) string {
	for strings.Contains(s, "\x1b[") {
		start := strings.Index(s, "\x1b[")
		end := strings.Index(s[start:], "m")
		if end == -1 {
			break
		}
		s = s[:start] + s[start+end+1:]
	}
	return s
}
