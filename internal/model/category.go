package model

// Category is the normalized kind of a ledger entry.
type Category string

const (
	// CategoryDeposit is money paid in by the player.
	CategoryDeposit Category = "deposit"
	// CategoryWager is a stake placed on a game.
	CategoryWager Category = "wager"
	// CategoryPayout is a win credited back from a game.
	CategoryPayout Category = "payout"
	// CategoryLossRebateBonus is a bonus credited to offset earlier losses.
	CategoryLossRebateBonus Category = "loss_rebate_bonus"
	// CategoryWithdrawalRequest is a request to pay money out.
	CategoryWithdrawalRequest Category = "withdrawal_request"
	// CategoryOther covers every label the normalizer could not resolve.
	CategoryOther Category = "other"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryDeposit,
	CategoryWager,
	CategoryPayout,
	CategoryLossRebateBonus,
	CategoryWithdrawalRequest,
	CategoryOther,
}

// IsGameplay reports whether entries of this category carry a game label.
func (c Category) IsGameplay() bool {
	return c == CategoryWager || c == CategoryPayout
}

// IsCashier reports whether entries of this category carry a payment channel.
func (c Category) IsCashier() bool {
	return c == CategoryDeposit || c == CategoryWithdrawalRequest
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AnchorType identifies which funding event started the wagering clock.
type AnchorType string

const (
	// AnchorDeposit means the last deposit is the anchor.
	AnchorDeposit AnchorType = "deposit"
	// AnchorLossRebateBonus means a rebate granted after the last deposit is the anchor.
	AnchorLossRebateBonus AnchorType = "loss_rebate_bonus"
)

// Label is the human readable source name used in narratives.
func (t AnchorType) Label() string {
	if t == AnchorLossRebateBonus {
		return "Loss rebate"
	}
	return "Main balance"
}
