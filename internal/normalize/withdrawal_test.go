package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rollover/internal/model"
)

func TestWithdrawalStatus(t *testing.T) {
	tests := []struct {
		rec  model.RawRecord
		name string
		want model.WithdrawalStatus
	}{
		{name: "exact state name", rec: model.RawRecord{"StateName": "Ödendi"}, want: model.WithdrawalPaid},
		{name: "case-insensitive name", rec: model.RawRecord{"StateName": "REDDEDILDI"}, want: model.WithdrawalRejected},
		{name: "alternative name", rec: model.RawRecord{"StateName": "rolled back"}, want: model.WithdrawalRolledBack},
		{name: "numeric state", rec: model.RawRecord{"State": 3.0}, want: model.WithdrawalNew},
		{name: "negative numeric state", rec: model.RawRecord{"StateName": "", "State": "-2"}, want: model.WithdrawalRejected},
		{name: "status column", rec: model.RawRecord{"Status": "Pending"}, want: model.WithdrawalPending},
		{name: "name wins over code", rec: model.RawRecord{"StateName": "Beklemede", "State": 2.0}, want: model.WithdrawalPending},
		{name: "unknown code", rec: model.RawRecord{"State": 42.0}, want: model.WithdrawalUnknown},
		{name: "nothing", rec: model.RawRecord{}, want: model.WithdrawalUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithdrawalStatus(tt.rec))
		})
	}
}

func TestWithdrawalRequests(t *testing.T) {
	records := []model.RawRecord{
		{
			"Id":                "w-1",
			"ClientId":          123456.0,
			"ClientLogin":       "player1",
			"ClientName":        "Jane Doe",
			"Amount":            2500.0,
			"PaymentSystemName": "Papara",
			"StateName":         "Yeni",
			"RequestTimeLocal":  "25.08.2025 14:05:00",
		},
		nil,
		{
			"Id":          "w-2",
			"RequestTime": "garbage",
			"State":       0.0,
		},
	}

	requests := WithdrawalRequests(records, time.UTC)
	require.Len(t, requests, 2)

	first := requests[0]
	assert.Equal(t, "w-1", first.ID)
	assert.Equal(t, "123456", first.ClientID)
	assert.Equal(t, "player1", first.ClientLogin)
	assert.Equal(t, "Papara", first.PaymentChannel)
	assert.Equal(t, model.WithdrawalNew, first.Status)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, time.Date(2025, 8, 25, 14, 5, 0, 0, time.UTC), first.RequestedAt)

	second := requests[1]
	assert.True(t, second.RequestedAt.IsZero())
	assert.Equal(t, model.WithdrawalPending, second.Status)
}

func TestClientBonuses(t *testing.T) {
	records := []model.RawRecord{
		{"Id": "b-old", "Name": "Welcome", "Amount": 50.0, "CreatedLocal": "2025-01-01T10:00:00", "ResultType": 3.0},
		{"Id": "b-new", "BonusName": "Loss Rebate", "Amount": "100", "PaidAmount": 100.0, "CreatedLocal": "2025-02-01T10:00:00", "CreatedByUserName": "ops"},
	}

	bonuses := ClientBonuses(records, time.UTC)
	require.Len(t, bonuses, 2)

	assert.Equal(t, "b-new", bonuses[0].ID)
	assert.Equal(t, "Loss Rebate", bonuses[0].Name)
	assert.Equal(t, "ops", bonuses[0].CreatedBy)
	require.NotNil(t, bonuses[0].PaidAmount)
	assert.True(t, bonuses[0].PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, bonuses[0].ResultType)

	assert.Equal(t, "b-old", bonuses[1].ID)
	require.NotNil(t, bonuses[1].ResultType)
	assert.Equal(t, 3, *bonuses[1].ResultType)
	assert.Nil(t, bonuses[1].PaidAmount)
}
