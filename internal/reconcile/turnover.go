package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/model"
)

// Totals aggregates wagering activity inside the anchor window.
type Totals struct {
	TotalWagered  decimal.Decimal `json:"total_wagered"`
	TotalPayout   decimal.Decimal `json:"total_payout"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TurnoverRatio decimal.Decimal `json:"turnover_ratio"`
	// RatioDefined is false when the anchor amount is zero; the ratio is then 0.
	RatioDefined bool `json:"ratio_defined"`
	WindowSize   int  `json:"window_size"`
}

// Window returns the entries at or after the anchor timestamp. The sequence is
// ordered, so the window is a suffix of it and shares its backing array.
func Window(entries []model.Entry, anchor Anchor) []model.Entry {
	start := sort.Search(len(entries), func(i int) bool {
		return !entries[i].Timestamp.Before(anchor.Timestamp())
	})
	return entries[start:]
}

// Aggregate sums wagers and payouts in the anchor window.
func Aggregate(entries []model.Entry, anchor Anchor) Totals {
	window := Window(entries, anchor)

	totals := Totals{
		TotalWagered:  decimal.Zero,
		TotalPayout:   decimal.Zero,
		TurnoverRatio: decimal.Zero,
		WindowSize:    len(window),
	}
	for _, entry := range window {
		switch entry.Category {
		case model.CategoryWager:
			totals.TotalWagered = totals.TotalWagered.Add(entry.Amount)
		case model.CategoryPayout:
			totals.TotalPayout = totals.TotalPayout.Add(entry.Amount)
		}
	}
	totals.NetProfit = totals.TotalPayout.Sub(totals.TotalWagered)

	if anchor.Amount.IsPositive() {
		totals.TurnoverRatio = totals.TotalWagered.Div(anchor.Amount)
		totals.RatioDefined = true
	}

	return totals
}
