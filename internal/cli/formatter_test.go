package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rollover/internal/reconcile"
	"github.com/Veraticus/rollover/internal/testutil/batches"
)

var testNow = batches.FixtureNow

func rebateResult(t *testing.T) *reconcile.Result {
	t.Helper()
	records := batches.RebateWin(t)
	result, err := reconcile.Reconcile(records, testNow, reconcile.DefaultPolicy())
	require.NoError(t, err)
	return result
}

func TestResultFormatter_FormatSummary(t *testing.T) {
	formatter := NewResultFormatter()
	result := rebateResult(t)
	check := result.CheckWithdrawal(decimal.NewFromInt(3500))

	tests := []struct {
		name        string
		report      Report
		contains    []string
		notContains []string
	}{
		{
			name:     "missing result",
			report:   Report{ClientID: "42", Error: "insufficient history"},
			contains: []string{"Player 42", "insufficient history"},
		},
		{
			name:   "rebate anchor with breached cap",
			report: Report{ClientID: "42", Result: result, Withdrawal: &check},
			contains: []string{
				"Wagering reconciliation: player 42",
				"Loss rebate",
				"100.00",
				"Wagered",
				"80.00",
				"3,560.00",
				"0.80x",
				"20.00 still to wager",
				"3,000.00",
				"exceeds cap by 500.00",
				"Gates of Olympus",
				"★ Gates of Olympus",
				"Loss rebate (100.00) → Gates of Olympus produced 3,500.00 net profit",
				"Deposits",
				"1 (1,000.00)",
				"1 record(s) skipped",
			},
		},
		{
			name:        "no withdrawal check",
			report:      Report{ClientID: "7", Result: result},
			contains:    []string{"Withdrawal cap:", "3,000.00"},
			notContains: []string{"Requested", "Verdict"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := stripANSI(formatter.FormatSummary(tt.report))
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestResultFormatter_FormatGames(t *testing.T) {
	formatter := &ResultFormatter{maxGames: 2}
	games := []reconcile.GameProfit{
		{Game: "B", Wagered: decimal.NewFromInt(10), Payout: decimal.NewFromInt(30), NetProfit: decimal.NewFromInt(20)},
		{Game: "A", Wagered: decimal.NewFromInt(30), Payout: decimal.NewFromInt(10), NetProfit: decimal.NewFromInt(-20)},
		{Game: "C", Wagered: decimal.NewFromInt(50), Payout: decimal.Zero, NetProfit: decimal.NewFromInt(-50)},
	}

	output := stripANSI(formatter.FormatGames(games, games[:1]))

	assert.Contains(t, output, "★ B")
	assert.NotContains(t, output, "★ A")
	assert.Contains(t, output, "-20.00")
	assert.Contains(t, output, "... and 1 more games")
	assert.Less(t, strings.Index(output, "★ B"), strings.Index(output, "A "))
}

func TestWriteJSON(t *testing.T) {
	result := rebateResult(t)
	check := result.CheckWithdrawal(decimal.NewFromInt(3500))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Report{ClientID: "42", Result: result, Withdrawal: &check}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "42", decoded["client_id"])

	res := decoded["result"].(map[string]any)
	assert.Equal(t, "3000", res["withdrawal_cap"])
	assert.Equal(t, false, res["turnover_satisfied"])
	assert.Equal(t, true, decoded["withdrawal"].(map[string]any)["cap_exceeded"])
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
