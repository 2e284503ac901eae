package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
)

// Anchor is the funding event that starts the wagering clock.
type Anchor struct {
	Entry       model.Entry      `json:"entry"`
	LastDeposit model.Entry      `json:"last_deposit"`
	Type        model.AnchorType `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
}

// Timestamp is when the wagering window opens.
func (a Anchor) Timestamp() time.Time {
	return a.Entry.Timestamp
}

// ResolveAnchor picks the anchor from a normalized, ordered sequence.
//
// The most recent deposit is the anchor unless a loss-rebate bonus was granted
// at or after it, in which case the most recent such rebate is. A rebate that
// predates the last deposit is stale. On equal timestamps the entry later in
// the feed wins, which the ordering of the sequence already guarantees.
func ResolveAnchor(entries []model.Entry) (Anchor, error) {
	lastDeposit, lastRebate := -1, -1
	for i, entry := range entries {
		switch entry.Category {
		case model.CategoryDeposit:
			lastDeposit = i
		case model.CategoryLossRebateBonus:
			lastRebate = i
		}
	}

	if lastDeposit < 0 {
		return Anchor{}, common.ErrNoAnchorFound
	}

	deposit := entries[lastDeposit]
	anchor := Anchor{
		Entry:       deposit,
		LastDeposit: deposit,
		Type:        model.AnchorDeposit,
		Amount:      deposit.Amount,
	}

	if lastRebate >= 0 && !entries[lastRebate].Timestamp.Before(deposit.Timestamp) {
		rebate := entries[lastRebate]
		anchor.Entry = rebate
		anchor.Type = model.AnchorLossRebateBonus
		anchor.Amount = rebate.Amount
	}

	return anchor, nil
}
