package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one loosely typed event as delivered by the back-office feed.
type RawRecord map[string]any

// Entry is a single normalized ledger event.
type Entry struct {
	Timestamp      time.Time
	ID             string
	Game           string // only set for wagers and payouts
	PaymentChannel string // only set for deposits and withdrawal requests
	RawCategory    string // label as reported by the feed
	Category       Category
	Amount         decimal.Decimal
	Seq            int // position in the original feed, breaks timestamp ties
}

// Before reports whether e sorts before other in the normalized sequence.
func (e Entry) Before(other Entry) bool {
	if e.Timestamp.Equal(other.Timestamp) {
		return e.Seq < other.Seq
	}
	return e.Timestamp.Before(other.Timestamp)
}

// Key returns a stable identity for the entry. The feed id is used when
// present, otherwise a hash of the entry contents and its feed position.
func (e Entry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	data := fmt.Sprintf("%d:%s:%s:%s:%s",
		e.Seq,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Category,
		e.Amount.StringFixed(2),
		e.Game)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:8])
}
