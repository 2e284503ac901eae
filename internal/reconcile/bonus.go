package reconcile

import (
	"slices"

	"github.com/Veraticus/rollover/internal/model"
)

// BonusPaidStatus decides whether a bonus was paid. A positive paid amount is
// conclusive; otherwise the result type is looked up in the policy's codes.
func BonusPaidStatus(bonus model.ClientBonus, policy Policy) model.BonusPaidStatus {
	if bonus.PaidAmount != nil && bonus.PaidAmount.IsPositive() {
		return model.BonusPaid
	}
	if bonus.ResultType != nil {
		if slices.Contains(policy.PaidBonusResultTypes, *bonus.ResultType) {
			return model.BonusPaid
		}
		return model.BonusUnpaid
	}
	if bonus.PaidAmount != nil {
		return model.BonusUnpaid
	}
	return model.BonusPaidUnknown
}
