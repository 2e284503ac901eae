package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/model"
)

// Decision is the policy verdict on a set of totals.
type Decision struct {
	WithdrawalCap     *decimal.Decimal `json:"withdrawal_cap,omitempty"`
	RemainingTurnover decimal.Decimal  `json:"remaining_turnover"`
	TurnoverSatisfied bool             `json:"turnover_satisfied"`
}

// Evaluate applies the turnover target and, for a rebate anchor, the payout cap.
// An undefined ratio counts as zero turnover.
func Evaluate(anchor Anchor, totals Totals, policy Policy) Decision {
	target := decimal.NewFromFloat(policy.TurnoverTargetMultiple)
	required := anchor.Amount.Mul(target)

	decision := Decision{
		RemainingTurnover: decimal.Zero,
	}
	if totals.RatioDefined {
		decision.TurnoverSatisfied = totals.TotalWagered.GreaterThanOrEqual(required)
	}
	if !decision.TurnoverSatisfied {
		decision.RemainingTurnover = decimal.Max(required.Sub(totals.TotalWagered), decimal.Zero)
	}

	if anchor.Type == model.AnchorLossRebateBonus {
		limit := anchor.Amount.Mul(decimal.NewFromFloat(policy.WithdrawalCapMultiple))
		decision.WithdrawalCap = &limit
	}

	return decision
}

// WithdrawalCheck is the verdict on a proposed withdrawal total.
type WithdrawalCheck struct {
	Cap         *decimal.Decimal `json:"cap,omitempty"`
	Proposed    decimal.Decimal  `json:"proposed"`
	Excess      decimal.Decimal  `json:"excess"`
	CapApplies  bool             `json:"cap_applies"`
	CapExceeded bool             `json:"cap_exceeded"`
}

// CheckWithdrawal compares a proposed withdrawal total with the payout cap.
// Without a rebate anchor no cap applies and the check always passes.
func (r *Result) CheckWithdrawal(proposed decimal.Decimal) WithdrawalCheck {
	check := WithdrawalCheck{
		Proposed: proposed,
		Excess:   decimal.Zero,
	}
	if r.WithdrawalCap == nil {
		return check
	}

	limit := *r.WithdrawalCap
	check.Cap = &limit
	check.CapApplies = true
	if proposed.GreaterThan(limit) {
		check.CapExceeded = true
		check.Excess = proposed.Sub(limit)
	}
	return check
}
