// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

// TransactionQuery selects a player's ledger over a date range.
type TransactionQuery struct {
	Start         time.Time
	End           time.Time
	ClientID      string
	CurrencyID    string
	BalanceTypeID string
}

// BatchSource is the contract for the vendor back-office.
type BatchSource interface {
	GetTransactions(ctx context.Context, query TransactionQuery) ([]model.RawRecord, error)
	GetWithdrawalRequests(ctx context.Context, start, end time.Time) ([]model.WithdrawalRequest, error)
	GetClientBonuses(ctx context.Context, clientID string) ([]model.ClientBonus, error)
}

// BatchCache defines the contract for our persistence layer.
// Only raw batches are stored; results are always recomputed.
type BatchCache interface {
	SaveBatch(ctx context.Context, batch *model.Batch) error
	LatestBatch(ctx context.Context, clientID string) (*model.Batch, error)
	ListBatches(ctx context.Context, clientID string) ([]model.BatchSummary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
