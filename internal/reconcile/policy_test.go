package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
)

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Policy)
		wantErr bool
	}{
		{
			name:   "default policy",
			mutate: func(*Policy) {},
		},
		{
			name:   "zero multiples allowed",
			mutate: func(p *Policy) { p.TurnoverTargetMultiple = 0; p.WithdrawalCapMultiple = 0 },
		},
		{
			name:    "negative turnover target",
			mutate:  func(p *Policy) { p.TurnoverTargetMultiple = -1 },
			wantErr: true,
		},
		{
			name:    "negative cap multiple",
			mutate:  func(p *Policy) { p.WithdrawalCapMultiple = -30 },
			wantErr: true,
		},
		{
			name:    "threshold of one",
			mutate:  func(p *Policy) { p.DominantGameThreshold = 1 },
			wantErr: true,
		},
		{
			name:    "negative activity window",
			mutate:  func(p *Policy) { p.RecentActivityWindow = -time.Hour },
			wantErr: true,
		},
		{
			name: "alias to unknown category",
			mutate: func(p *Policy) {
				p.CategoryAliases = map[string]model.Category{"promo": "freebie"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidPolicy)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolicy_NormalizerAliasOrder(t *testing.T) {
	policy := DefaultPolicy()
	policy.CategoryAliases = map[string]model.Category{
		"bonus":         model.CategoryLossRebateBonus,
		"deposit bonus": model.CategoryOther,
		"bo":            model.CategoryPayout,
		"b":             model.CategoryWager,
		"nus":           model.CategoryDeposit,
	}

	tests := []struct {
		label string
		want  model.Category
	}{
		{label: "Deposit Bonus", want: model.CategoryOther},
		{label: "Weekly Bonus", want: model.CategoryLossRebateBonus},
		{label: "Minus", want: model.CategoryDeposit},
		{label: "Boost", want: model.CategoryPayout},
		{label: "Cashback Club", want: model.CategoryWager},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			records := []model.RawRecord{{"CreatedLocal": "2025-01-10T10:00:00", "DocumentTypeName": tt.label, "Amount": 1.0}}
			for i := 0; i < 50; i++ {
				entries, _ := policy.Normalizer().Normalize(records)
				if assert.Len(t, entries, 1) {
					assert.Equal(t, tt.want, entries[0].Category, "run %d", i)
				}
			}
		})
	}
}

func TestDefaultPolicy_DoesNotShareResultTypes(t *testing.T) {
	p := DefaultPolicy()
	p.PaidBonusResultTypes[0] = 99

	assert.Equal(t, []int{2, 3}, DefaultPaidBonusResultTypes)
}

func TestBonusPaidStatus(t *testing.T) {
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	code := func(i int) *int { return &i }

	tests := []struct {
		name  string
		bonus model.ClientBonus
		want  model.BonusPaidStatus
	}{
		{"positive paid amount", model.ClientBonus{PaidAmount: amount("50")}, model.BonusPaid},
		{"paid amount wins over result type", model.ClientBonus{PaidAmount: amount("50"), ResultType: code(0)}, model.BonusPaid},
		{"paid result type", model.ClientBonus{ResultType: code(2)}, model.BonusPaid},
		{"other paid result type", model.ClientBonus{ResultType: code(3)}, model.BonusPaid},
		{"unpaid result type", model.ClientBonus{PaidAmount: amount("0"), ResultType: code(1)}, model.BonusUnpaid},
		{"zero paid amount only", model.ClientBonus{PaidAmount: amount("0")}, model.BonusUnpaid},
		{"nothing to decide on", model.ClientBonus{}, model.BonusPaidUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BonusPaidStatus(tt.bonus, DefaultPolicy()))
		})
	}
}

func TestBonusPaidStatus_CustomCodes(t *testing.T) {
	code := 7
	p := DefaultPolicy()
	p.PaidBonusResultTypes = []int{7}

	assert.Equal(t, model.BonusPaid, BonusPaidStatus(model.ClientBonus{ResultType: &code}, p))
	assert.Equal(t, model.BonusUnpaid, BonusPaidStatus(model.ClientBonus{ResultType: &code}, DefaultPolicy()))
}

func TestSummarize(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC)
	}
	entries := []model.Entry{
		{Timestamp: at(1, 10), Category: model.CategoryDeposit, Amount: dec("500")},
		{Timestamp: at(2, 10), Category: model.CategoryWithdrawalRequest, Amount: dec("200")},
		{Timestamp: at(3, 10), Category: model.CategoryDeposit, Amount: dec("1000")},
		{Timestamp: at(3, 11), Category: model.CategoryWager, Amount: dec("50")},
		{Timestamp: at(4, 10), Category: model.CategoryWithdrawalRequest, Amount: dec("900")},
		{Timestamp: at(4, 12), Category: model.CategoryWager, Amount: dec("10")},
	}
	lastDeposit := entries[2]

	t.Run("counts and totals", func(t *testing.T) {
		s := Summarize(entries, lastDeposit, at(5, 0), 24*time.Hour)
		assert.Equal(t, 2, s.DepositCount)
		assert.True(t, s.TotalDeposited.Equal(dec("1500")))
		assert.Equal(t, 2, s.WithdrawalRequestCount)
		assert.True(t, s.TotalWithdrawalRequested.Equal(dec("1100")))
		assert.Equal(t, 1, s.WithdrawalsSinceDeposit)
		if assert.NotNil(t, s.LastWagerAt) {
			assert.Equal(t, at(4, 12), *s.LastWagerAt)
		}
		assert.True(t, s.StillPlaying)
	})

	t.Run("no recent wager", func(t *testing.T) {
		s := Summarize(entries, lastDeposit, at(6, 0), 24*time.Hour)
		assert.False(t, s.StillPlaying)
	})

	t.Run("no wagers at all", func(t *testing.T) {
		s := Summarize(entries[:3], lastDeposit, at(5, 0), 24*time.Hour)
		assert.Nil(t, s.LastWagerAt)
		assert.False(t, s.StillPlaying)
	})
}
