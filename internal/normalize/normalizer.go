package normalize

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

// Normalizer converts raw feed records into an ordered entry sequence.
// It holds only configuration and is safe for concurrent use.
type Normalizer struct {
	location *time.Location
	fields   FieldTable
	aliases  []categoryAlias
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLocation sets the zone used for timestamps that carry none.
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.location = loc
		}
	}
}

// WithCategoryAlias tags any label containing substring with category.
// Caller aliases are checked before the built-in ones.
func WithCategoryAlias(substring string, category model.Category) Option {
	return func(n *Normalizer) {
		substring = strings.ToLower(strings.TrimSpace(substring))
		if substring == "" || !category.Valid() {
			return
		}
		n.aliases = append([]categoryAlias{{substring: substring, category: category}}, n.aliases...)
	}
}

// WithFields replaces the candidate key table.
func WithFields(fields FieldTable) Option {
	return func(n *Normalizer) {
		if len(fields) > 0 {
			n.fields = fields
		}
	}
}

// New creates a Normalizer with the default field and category tables.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		location: time.UTC,
		fields:   DefaultFields,
		aliases:  append([]categoryAlias(nil), defaultAliases...),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the entries sorted by timestamp, ties kept in feed order,
// and the number of records dropped for lacking a usable timestamp.
func (n *Normalizer) Normalize(records []model.RawRecord) ([]model.Entry, int) {
	entries := make([]model.Entry, 0, len(records))
	dropped := 0

	for i, rec := range records {
		entry, ok := n.entry(i, rec)
		if !ok {
			dropped++
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})

	if dropped > 0 {
		slog.Debug("Dropped records without a usable timestamp",
			"records", len(records),
			"dropped", dropped)
	}

	return entries, dropped
}

func (n *Normalizer) entry(seq int, rec model.RawRecord) (model.Entry, bool) {
	if rec == nil {
		return model.Entry{}, false
	}

	raw, ok := n.fields.Lookup(rec, FieldTimestamp)
	if !ok {
		return model.Entry{}, false
	}
	ts, ok := parseTimestampValue(raw, n.location)
	if !ok {
		return model.Entry{}, false
	}

	label := n.fields.String(rec, FieldCategory)
	category := n.category(rec, label)

	entry := model.Entry{
		Timestamp:   ts,
		ID:          n.fields.String(rec, FieldID),
		RawCategory: label,
		Category:    category,
		Seq:         seq,
	}
	if v, ok := n.fields.Lookup(rec, FieldAmount); ok {
		entry.Amount = ParseAmount(v)
	}
	if category.IsGameplay() {
		entry.Game = n.fields.String(rec, FieldGame)
	}
	if category.IsCashier() {
		entry.PaymentChannel = n.fields.String(rec, FieldPaymentChannel)
	}

	return entry, true
}

func (n *Normalizer) category(rec model.RawRecord, label string) model.Category {
	if label != "" {
		return resolveCategory(label, n.aliases)
	}

	if v, ok := n.fields.Lookup(rec, FieldCategoryID); ok {
		if id, ok := toInt(v); ok {
			if category, ok := documentTypes[id]; ok {
				return category
			}
		}
	}
	return model.CategoryOther
}
