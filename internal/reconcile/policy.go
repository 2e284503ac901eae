// Package reconcile implements the wagering reconciliation engine.
//
// A run is a pure function of the raw batch, a reference time and a Policy:
// it performs no I/O, reads no clock and keeps no state between calls, so
// runs for different players can execute in parallel without coordination.
package reconcile

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/normalize"
)

// Default policy values.
const (
	DefaultTurnoverTargetMultiple = 1.0
	DefaultWithdrawalCapMultiple  = 30.0
	DefaultDominantGameThreshold  = 0.10
	DefaultRecentActivityWindow   = 24 * time.Hour
)

// DefaultPaidBonusResultTypes are the bonus ResultType codes read as paid.
// The vendor has not documented these codes; 2 and 3 are what paid bonuses
// have carried so far, so operators can override them in config.
var DefaultPaidBonusResultTypes = []int{2, 3}

// Policy holds every tunable of a reconciliation run.
type Policy struct {
	Location               *time.Location            `json:"-"`
	CategoryAliases        map[string]model.Category `json:"category_aliases,omitempty"`
	PaidBonusResultTypes   []int                     `json:"paid_bonus_result_types"`
	TurnoverTargetMultiple float64                   `json:"turnover_target_multiple"`
	WithdrawalCapMultiple  float64                   `json:"withdrawal_cap_multiple"`
	DominantGameThreshold  float64                   `json:"dominant_game_threshold"`
	RecentActivityWindow   time.Duration             `json:"recent_activity_window"`
}

// DefaultPolicy returns the standard 1x turnover, 30x cap policy.
func DefaultPolicy() Policy {
	return Policy{
		TurnoverTargetMultiple: DefaultTurnoverTargetMultiple,
		WithdrawalCapMultiple:  DefaultWithdrawalCapMultiple,
		DominantGameThreshold:  DefaultDominantGameThreshold,
		RecentActivityWindow:   DefaultRecentActivityWindow,
		PaidBonusResultTypes:   append([]int(nil), DefaultPaidBonusResultTypes...),
	}
}

// Validate ensures the policy can drive a run.
func (p Policy) Validate() error {
	if p.TurnoverTargetMultiple < 0 {
		return fmt.Errorf("%w: turnover target multiple must be non-negative, got %.2f", common.ErrInvalidPolicy, p.TurnoverTargetMultiple)
	}
	if p.WithdrawalCapMultiple < 0 {
		return fmt.Errorf("%w: withdrawal cap multiple must be non-negative, got %.2f", common.ErrInvalidPolicy, p.WithdrawalCapMultiple)
	}
	if p.DominantGameThreshold < 0 || p.DominantGameThreshold >= 1 {
		return fmt.Errorf("%w: dominant game threshold must be in [0, 1), got %.2f", common.ErrInvalidPolicy, p.DominantGameThreshold)
	}
	if p.RecentActivityWindow < 0 {
		return fmt.Errorf("%w: recent activity window must be non-negative, got %s", common.ErrInvalidPolicy, p.RecentActivityWindow)
	}
	for substring, category := range p.CategoryAliases {
		if !category.Valid() {
			return fmt.Errorf("%w: alias %q maps to unknown category %q", common.ErrInvalidPolicy, substring, category)
		}
	}
	return nil
}

// Normalizer builds the normalizer configured by this policy. Longer alias
// substrings are checked first, ties in lexical order.
func (p Policy) Normalizer() *normalize.Normalizer {
	substrings := make([]string, 0, len(p.CategoryAliases))
	for substring := range p.CategoryAliases {
		substrings = append(substrings, substring)
	}
	slices.SortFunc(substrings, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	opts := []normalize.Option{normalize.WithLocation(p.Location)}
	// WithCategoryAlias prepends, so apply the lowest priority first.
	for i := len(substrings) - 1; i >= 0; i-- {
		substring := substrings[i]
		opts = append(opts, normalize.WithCategoryAlias(substring, p.CategoryAliases[substring]))
	}
	return normalize.New(opts...)
}
