// Package batches provides a fluent builder for raw back-office transaction
// batches used in tests.
//
// Example usage:
//
//	records := batches.NewBuilder(t, start).
//		Deposit(1000, "Papara").
//		LossRebate(100).
//		Wager("Aviator", 20).
//		Payout("Aviator", 35).
//		Build()
package batches

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

// Labels as the back-office writes them.
const (
	LabelDeposit           = "Yatırım"
	LabelWager             = "Bahis"
	LabelPayout            = "Kazanç"
	LabelLossRebate        = "Kayıp Bonusu"
	LabelWithdrawalRequest = "Çekim Talebi"
)

// timestampLayout is the zone-less local time the back-office emits.
const timestampLayout = "2006-01-02T15:04:05"

// Builder accumulates raw records on a running clock. Each record is stamped
// one Step after the previous one unless At moves the clock.
type Builder struct {
	t       *testing.T
	clock   time.Time
	records []model.RawRecord
	step    time.Duration
	seq     int
}

// NewBuilder creates a builder whose first record is stamped at start.
func NewBuilder(t *testing.T, start time.Time) *Builder {
	t.Helper()
	return &Builder{
		t:     t,
		clock: start,
		step:  time.Minute,
	}
}

// Step changes the gap between consecutive records.
func (b *Builder) Step(d time.Duration) *Builder {
	if d <= 0 {
		b.t.Fatalf("batches: step must be positive, got %s", d)
	}
	b.step = d
	return b
}

// At stamps the next record at ts.
func (b *Builder) At(ts time.Time) *Builder {
	b.clock = ts
	return b
}

// Deposit adds a deposit through channel.
func (b *Builder) Deposit(amount float64, channel string) *Builder {
	rec := b.record(LabelDeposit, amount)
	if channel != "" {
		rec["PaymentSystemName"] = channel
	}
	return b.add(rec)
}

// LossRebate adds a loss-rebate bonus credit.
func (b *Builder) LossRebate(amount float64) *Builder {
	return b.add(b.record(LabelLossRebate, amount))
}

// Wager adds a stake on game.
func (b *Builder) Wager(game string, amount float64) *Builder {
	rec := b.record(LabelWager, amount)
	if game != "" {
		rec["Game"] = game
	}
	return b.add(rec)
}

// Payout adds a win on game.
func (b *Builder) Payout(game string, amount float64) *Builder {
	rec := b.record(LabelPayout, amount)
	if game != "" {
		rec["Game"] = game
	}
	return b.add(rec)
}

// WithdrawalRequest adds a withdrawal request entry.
func (b *Builder) WithdrawalRequest(amount float64) *Builder {
	return b.add(b.record(LabelWithdrawalRequest, amount))
}

// Raw adds a record with an arbitrary label, stamped on the clock.
func (b *Builder) Raw(label string, amount float64) *Builder {
	return b.add(b.record(label, amount))
}

// Malformed adds a wager whose timestamp cannot be parsed.
func (b *Builder) Malformed() *Builder {
	rec := b.record(LabelWager, 1)
	rec["CreatedLocal"] = "not a time"
	return b.add(rec)
}

// Build returns a copy of the accumulated records.
func (b *Builder) Build() []model.RawRecord {
	out := make([]model.RawRecord, len(b.records))
	for i, rec := range b.records {
		clone := make(model.RawRecord, len(rec))
		for k, v := range rec {
			clone[k] = v
		}
		out[i] = clone
	}
	return out
}

// Now returns the timestamp the next record would get.
func (b *Builder) Now() time.Time {
	return b.clock
}

func (b *Builder) record(label string, amount float64) model.RawRecord {
	return model.RawRecord{
		"Id":               fmt.Sprintf("tx-%d", b.seq+1),
		"CreatedLocal":     b.clock.Format(timestampLayout),
		"DocumentTypeName": label,
		"Amount":           amount,
	}
}

func (b *Builder) add(rec model.RawRecord) *Builder {
	b.records = append(b.records, rec)
	b.clock = b.clock.Add(b.step)
	b.seq++
	return b
}
