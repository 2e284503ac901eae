// Package normalize turns loosely typed back-office records into ordered ledger entries.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

// Field is a logical field that may be spelled several ways in the feed.
type Field string

// Logical fields read from raw records.
const (
	FieldTimestamp      Field = "timestamp"
	FieldCategory       Field = "category"
	FieldCategoryID     Field = "category_id"
	FieldAmount         Field = "amount"
	FieldGame           Field = "game"
	FieldPaymentChannel Field = "payment_channel"
	FieldID             Field = "id"
)

// FieldTable maps each logical field to its candidate keys in priority order.
type FieldTable map[Field][]string

// DefaultFields is the candidate key table for the transaction feed.
// New vendor spellings are added here, not in code.
var DefaultFields = FieldTable{
	FieldTimestamp:      {"CreatedLocal", "Created", "CreatedDate", "Date", "DateLocal", "Timestamp", "timestamp", "time", "date"},
	FieldCategory:       {"DocumentTypeName", "TypeName", "Category", "category", "Type", "type"},
	FieldCategoryID:     {"DocumentTypeId", "TypeId"},
	FieldAmount:         {"Amount", "amount", "Value", "value"},
	FieldGame:           {"Game", "GameName", "game"},
	FieldPaymentChannel: {"PaymentSystemName", "PaymentSystem", "PaymentMethod", "payment_channel"},
	FieldID:             {"Id", "ID", "TransactionId", "DocumentId", "id"},
}

// Lookup returns the first present, non-empty value among the candidate keys.
func (t FieldTable) Lookup(rec model.RawRecord, field Field) (any, bool) {
	return lookupKeys(rec, t[field])
}

// String returns the looked-up value rendered as a trimmed string.
func (t FieldTable) String(rec model.RawRecord, field Field) string {
	v, ok := t.Lookup(rec, field)
	if !ok {
		return ""
	}
	return toString(v)
}

func lookupKeys(rec model.RawRecord, keys []string) (any, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func lookupString(rec model.RawRecord, keys ...string) string {
	v, ok := lookupKeys(rec, keys)
	if !ok {
		return ""
	}
	return toString(v)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// toInt reads integral values such as document type ids and state codes.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
