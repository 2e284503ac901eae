package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
)

// SaveBatch stores a raw batch, assigning an id when it has none.
func (s *SQLiteStorage) SaveBatch(ctx context.Context, batch *model.Batch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBatch(batch); err != nil {
		return err
	}

	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	records := batch.Records
	if records == nil {
		records = []model.RawRecord{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO raw_batches (id, client_id, range_start, range_end, fetched_at, record_count, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			range_start = excluded.range_start,
			range_end = excluded.range_end,
			fetched_at = excluded.fetched_at,
			record_count = excluded.record_count,
			payload = excluded.payload`,
		batch.ID,
		batch.ClientID,
		nullTime(batch.Start),
		nullTime(batch.End),
		batch.FetchedAt.UTC(),
		len(records),
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	return nil
}

// LatestBatch returns the most recently fetched batch for a player.
func (s *SQLiteStorage) LatestBatch(ctx context.Context, clientID string) (*model.Batch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(clientID, "clientID"); err != nil {
		return nil, err
	}

	var (
		batch      model.Batch
		start, end sql.NullTime
		payload    []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, range_start, range_end, fetched_at, payload
		FROM raw_batches
		WHERE client_id = ?
		ORDER BY fetched_at DESC
		LIMIT 1`, clientID).Scan(
		&batch.ID,
		&batch.ClientID,
		&start,
		&end,
		&batch.FetchedAt,
		&payload,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no cached batch for client %s", common.ErrNotFound, clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query batch: %w", err)
	}

	batch.Start = start.Time
	batch.End = end.Time
	batch.Records, err = decodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode batch %s: %w", batch.ID, err)
	}

	return &batch, nil
}

// ListBatches lists cached batches newest first. An empty clientID lists all players.
func (s *SQLiteStorage) ListBatches(ctx context.Context, clientID string) ([]model.BatchSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, client_id, range_start, range_end, fetched_at, record_count FROM raw_batches`
	var args []any
	if clientID != "" {
		query += ` WHERE client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY fetched_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.BatchSummary
	for rows.Next() {
		var (
			summary    model.BatchSummary
			start, end sql.NullTime
		)
		if err := rows.Scan(
			&summary.ID,
			&summary.ClientID,
			&start,
			&end,
			&summary.FetchedAt,
			&summary.RecordCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		summary.Start = start.Time
		summary.End = end.Time
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func decodePayload(payload []byte) ([]model.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var records []model.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
