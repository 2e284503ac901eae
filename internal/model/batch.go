package model

import "time"

// Batch is one raw transaction batch fetched for a player.
type Batch struct {
	FetchedAt time.Time
	Start     time.Time
	End       time.Time
	ID        string
	ClientID  string
	Records   []RawRecord
}

// BatchSummary describes a cached batch without its records.
type BatchSummary struct {
	FetchedAt   time.Time
	Start       time.Time
	End         time.Time
	ID          string
	ClientID    string
	RecordCount int
}
