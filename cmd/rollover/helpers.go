package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/rollover/internal/backoffice"
	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/config"
	"github.com/Veraticus/rollover/internal/storage"
)

const dateLayout = "2006-01-02"

// initStorage opens the batch cache and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initBackoffice builds the back-office client from configuration.
func initBackoffice() (*backoffice.Client, error) {
	cfg, err := config.LoadBackofficeConfig()
	if err != nil {
		return nil, common.NewUserError("back-office is not configured (set backoffice.token or BACKOFFICE_TOKEN)", err)
	}
	return backoffice.NewClient(*cfg)
}

// addDateRangeFlags registers --days, --start-date and --end-date.
func addDateRangeFlags(cmd *cobra.Command, defaultDays int) {
	cmd.Flags().Int("days", defaultDays, "Number of days back from now")
	cmd.Flags().String("start-date", "", "Start date (YYYY-MM-DD), overrides --days")
	cmd.Flags().String("end-date", "", "End date (YYYY-MM-DD), defaults to today")
}

// parseDateRange resolves the date range flags against now. Explicit dates
// win over --days; the end date covers its whole day.
func parseDateRange(cmd *cobra.Command, now time.Time) (time.Time, time.Time, error) {
	days, _ := cmd.Flags().GetInt("days")
	startStr, _ := cmd.Flags().GetString("start-date")
	endStr, _ := cmd.Flags().GetString("end-date")
	return dateRange(now, days, startStr, endStr)
}

func dateRange(now time.Time, days int, startStr, endStr string) (time.Time, time.Time, error) {
	loc := now.Location()

	end := now
	if endStr != "" {
		d, err := time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, common.NewUserError("invalid --end-date, expected YYYY-MM-DD", err)
		}
		end = d.Add(24*time.Hour - time.Second)
	}

	var start time.Time
	switch {
	case startStr != "":
		d, err := time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, common.NewUserError("invalid --start-date, expected YYYY-MM-DD", err)
		}
		start = d
	case days > 0:
		start = end.AddDate(0, 0, -days)
	default:
		return time.Time{}, time.Time{}, common.NewUserError(fmt.Sprintf("--days must be positive, got %d", days), nil)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, common.NewUserError("start date must be before end date", nil)
	}
	return start, end, nil
}

// parseNow reads the --now override, defaulting to the current time.
func parseNow(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if strings.TrimSpace(s) == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, common.NewUserError("invalid --now, expected RFC3339 (2006-01-02T15:04:05Z07:00)", err)
	}
	return t.In(loc), nil
}

// parseAmount reads an optional amount flag.
func parseAmount(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("invalid amount %q", s), err)
	}
	if d.IsNegative() {
		return nil, common.NewUserError(fmt.Sprintf("amount must not be negative, got %s", s), nil)
	}
	return &d, nil
}
