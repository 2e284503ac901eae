package batches

import (
	"testing"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

// FixtureNow is the reference time the fixtures are built around.
var FixtureNow = time.Date(2025, 1, 5, 20, 0, 0, 0, time.UTC)

// RebateWin is a player who deposited 1,000, withdrew 400, got a 100 loss
// rebate and turned it into 3,500 net on Gates of Olympus while wagering
// only 80. One record has an unreadable timestamp.
func RebateWin(t *testing.T) []model.RawRecord {
	t.Helper()
	return NewBuilder(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)).
		Deposit(1000, "Papara").
		At(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)).
		WithdrawalRequest(400).
		At(time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)).
		LossRebate(100).
		At(time.Date(2025, 1, 5, 11, 0, 0, 0, time.UTC)).
		Step(5*time.Minute).
		Wager("Gates of Olympus", 60).
		Payout("Gates of Olympus", 3560).
		Wager("Aviator", 20).
		Malformed().
		Build()
}

// DepositGrind is a player who deposited 500 and wagered exactly 500 across
// two games, finishing 20 down.
func DepositGrind(t *testing.T) []model.RawRecord {
	t.Helper()
	return NewBuilder(t, time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC)).
		Deposit(500, "BankTransferBME").
		Wager("Sweet Bonanza", 300).
		Payout("Sweet Bonanza", 250).
		Wager("Aviator", 200).
		Payout("Aviator", 230).
		Build()
}
