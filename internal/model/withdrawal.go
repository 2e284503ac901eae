package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the normalized state of a withdrawal request.
type WithdrawalStatus string

// Withdrawal request states.
const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalPaid       WithdrawalStatus = "paid"
	WithdrawalNew        WithdrawalStatus = "new"
	WithdrawalRolledBack WithdrawalStatus = "rolled_back"
	WithdrawalAllowed    WithdrawalStatus = "allowed"
	WithdrawalCancelled  WithdrawalStatus = "cancelled"
	WithdrawalRejected   WithdrawalStatus = "rejected"
	WithdrawalUnknown    WithdrawalStatus = "unknown"
)

// Icon returns the glyph shown next to the status in listings.
func (s WithdrawalStatus) Icon() string {
	switch s {
	case WithdrawalPending:
		return "⏳"
	case WithdrawalProcessing:
		return "🔄"
	case WithdrawalPaid, WithdrawalAllowed:
		return "✅"
	case WithdrawalNew:
		return "🆕"
	case WithdrawalRolledBack:
		return "↩️"
	case WithdrawalCancelled:
		return "🚫"
	case WithdrawalRejected:
		return "❌"
	default:
		return "❓"
	}
}

// WithdrawalRequest is a player's pending or processed payout request.
type WithdrawalRequest struct {
	RequestedAt    time.Time
	ID             string
	ClientID       string
	ClientLogin    string
	ClientName     string
	PaymentChannel string
	Info           string
	Status         WithdrawalStatus
	Amount         decimal.Decimal
}
