package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rollover/internal/common"
)

func TestDateRange(t *testing.T) {
	now := time.Date(2025, 1, 5, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		wantStart time.Time
		wantEnd   time.Time
		name      string
		startStr  string
		endStr    string
		wantErr   string
		days      int
	}{
		{
			name:      "days back from now",
			days:      30,
			wantStart: now.AddDate(0, 0, -30),
			wantEnd:   now,
		},
		{
			name:      "explicit dates cover the end day",
			startStr:  "2025-01-01",
			endStr:    "2025-01-03",
			wantStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 3, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "start date wins over days",
			days:      7,
			startStr:  "2024-12-01",
			wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "days back from explicit end",
			days:      2,
			endStr:    "2025-01-03",
			wantStart: time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 3, 23, 59, 59, 0, time.UTC),
		},
		{name: "zero days", wantErr: "--days must be positive"},
		{name: "bad start", startStr: "01/01/2025", wantErr: "invalid --start-date"},
		{name: "bad end", days: 1, endStr: "tomorrow", wantErr: "invalid --end-date"},
		{name: "reversed", startStr: "2025-01-04", endStr: "2025-01-02", wantErr: "start date must be before end date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := dateRange(now, tt.days, tt.startStr, tt.endStr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var userErr *common.UserError
				assert.ErrorAs(t, err, &userErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParseNow(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)

	got, err := parseNow("2025-01-05T20:00:00Z", istanbul)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 5, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, istanbul, got.Location())

	before := time.Now()
	got, err = parseNow("  ", time.UTC)
	require.NoError(t, err)
	assert.False(t, got.Before(before.Add(-time.Second)))

	_, err = parseNow("yesterday", time.UTC)
	assert.ErrorContains(t, err, "invalid --now")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
		wantNil bool
	}{
		{name: "empty", input: "", wantNil: true},
		{name: "integer", input: "3500", want: "3500"},
		{name: "thousands separator", input: "3,500.50", want: "3500.5"},
		{name: "negative", input: "-10", wantErr: true},
		{name: "garbage", input: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(*got), "got %s", got)
		})
	}
}
