package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/normalize"
)

// Result is the outcome of one reconciliation run. It is built once and
// shares nothing with the input batch or other results.
type Result struct {
	GeneratedAt       time.Time        `json:"generated_at"`
	WithdrawalCap     *decimal.Decimal `json:"withdrawal_cap,omitempty"`
	Narrative         string           `json:"narrative,omitempty"`
	PerGame           []GameProfit     `json:"per_game"`
	DominantGames     []GameProfit     `json:"dominant_games"`
	Anchor            Anchor           `json:"anchor"`
	Activity          ActivitySummary  `json:"activity"`
	TotalWagered      decimal.Decimal  `json:"total_wagered"`
	TotalPayout       decimal.Decimal  `json:"total_payout"`
	NetProfit         decimal.Decimal  `json:"net_profit"`
	TurnoverRatio     decimal.Decimal  `json:"turnover_ratio"`
	RemainingTurnover decimal.Decimal  `json:"remaining_turnover"`
	EntryCount        int              `json:"entry_count"`
	DroppedRecords    int              `json:"dropped_records"`
	WindowSize        int              `json:"window_size"`
	RatioDefined      bool             `json:"ratio_defined"`
	TurnoverSatisfied bool             `json:"turnover_satisfied"`
}

// Reconcile normalizes a raw batch and reconciles it against policy as of now.
// An empty batch, or one without a deposit, fails with common.ErrNoAnchorFound.
func Reconcile(records []model.RawRecord, now time.Time, policy Policy) (*Result, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	entries, dropped := policy.Normalizer().Normalize(records)
	result, err := ReconcileEntries(entries, now, policy)
	if err != nil {
		return nil, err
	}
	result.DroppedRecords = dropped
	return result, nil
}

// ReconcileJSON decodes a JSON batch and reconciles it.
func ReconcileJSON(data []byte, now time.Time, policy Policy) (*Result, error) {
	records, err := normalize.DecodeBatch(data)
	if err != nil {
		return nil, err
	}
	return Reconcile(records, now, policy)
}

// ReconcileEntries reconciles an already normalized, ordered sequence.
// Once the anchor is resolved nothing else can fail.
func ReconcileEntries(entries []model.Entry, now time.Time, policy Policy) (*Result, error) {
	anchor, err := ResolveAnchor(entries)
	if err != nil {
		return nil, fmt.Errorf("resolving anchor: %w", err)
	}

	totals := Aggregate(entries, anchor)
	perGame, dominant := AttributeGames(Window(entries, anchor), policy.DominantGameThreshold)
	decision := Evaluate(anchor, totals, policy)

	return &Result{
		GeneratedAt:       now,
		Anchor:            anchor,
		TotalWagered:      totals.TotalWagered,
		TotalPayout:       totals.TotalPayout,
		NetProfit:         totals.NetProfit,
		TurnoverRatio:     totals.TurnoverRatio,
		RatioDefined:      totals.RatioDefined,
		WindowSize:        totals.WindowSize,
		PerGame:           perGame,
		DominantGames:     dominant,
		WithdrawalCap:     decision.WithdrawalCap,
		TurnoverSatisfied: decision.TurnoverSatisfied,
		RemainingTurnover: decision.RemainingTurnover,
		Narrative:         Narrative(anchor, dominant),
		Activity:          Summarize(entries, anchor.LastDeposit, now, policy.RecentActivityWindow),
		EntryCount:        len(entries),
	}, nil
}
