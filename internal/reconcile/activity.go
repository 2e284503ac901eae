package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/model"
)

// ActivitySummary collects the cashier and play counts reviewers look at next
// to the turnover verdict.
type ActivitySummary struct {
	LastWagerAt              *time.Time      `json:"last_wager_at,omitempty"`
	TotalDeposited           decimal.Decimal `json:"total_deposited"`
	TotalWithdrawalRequested decimal.Decimal `json:"total_withdrawal_requested"`
	DepositCount             int             `json:"deposit_count"`
	WithdrawalRequestCount   int             `json:"withdrawal_request_count"`
	WithdrawalsSinceDeposit  int             `json:"withdrawals_since_deposit"`
	StillPlaying             bool            `json:"still_playing"`
}

// Summarize scans the whole sequence once. Withdrawal requests are counted
// from the last deposit, and the player is still playing when a wager falls
// within window before now.
func Summarize(entries []model.Entry, lastDeposit model.Entry, now time.Time, window time.Duration) ActivitySummary {
	summary := ActivitySummary{
		TotalDeposited:           decimal.Zero,
		TotalWithdrawalRequested: decimal.Zero,
	}
	cutoff := now.Add(-window)

	for _, entry := range entries {
		switch entry.Category {
		case model.CategoryDeposit:
			summary.DepositCount++
			summary.TotalDeposited = summary.TotalDeposited.Add(entry.Amount)
		case model.CategoryWithdrawalRequest:
			summary.WithdrawalRequestCount++
			summary.TotalWithdrawalRequested = summary.TotalWithdrawalRequested.Add(entry.Amount)
			if !entry.Timestamp.Before(lastDeposit.Timestamp) {
				summary.WithdrawalsSinceDeposit++
			}
		case model.CategoryWager:
			ts := entry.Timestamp
			summary.LastWagerAt = &ts
			if !ts.Before(cutoff) {
				summary.StillPlaying = true
			}
		}
	}

	return summary
}
