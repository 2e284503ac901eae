package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonusPaidStatus says whether a granted bonus has been paid out.
type BonusPaidStatus string

const (
	// BonusPaid means the bonus reached the player's balance.
	BonusPaid BonusPaidStatus = "paid"
	// BonusUnpaid means the bonus is known not to be paid.
	BonusUnpaid BonusPaidStatus = "unpaid"
	// BonusPaidUnknown means the feed carried nothing to decide on.
	BonusPaidUnknown BonusPaidStatus = "unknown"
)

// ClientBonus is a bonus granted to a player.
type ClientBonus struct {
	CreatedAt     time.Time
	PaidAmount    *decimal.Decimal
	ResultType    *int
	ID            string
	Name          string
	Description   string
	CreatedBy     string
	BonusType     string
	Amount        decimal.Decimal
	WageredAmount decimal.Decimal
	ToWagerAmount decimal.Decimal
}
