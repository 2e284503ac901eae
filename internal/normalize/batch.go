package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
)

// DecodeBatch reads a JSON batch of raw records. It accepts a bare array or
// the vendor envelope with the records under Data or Data.Objects.
// Array elements that are not objects are skipped.
func DecodeBatch(data []byte) ([]model.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBatch, err)
	}

	items, ok := unwrapBatch(root)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of records", common.ErrInvalidBatch)
	}

	records := make([]model.RawRecord, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, model.RawRecord(obj))
	}
	return records, nil
}

func unwrapBatch(root any) ([]any, bool) {
	switch t := root.(type) {
	case []any:
		return t, true
	case map[string]any:
		data, ok := t["Data"]
		if !ok {
			return nil, false
		}
		if items, ok := data.([]any); ok {
			return items, true
		}
		if inner, ok := data.(map[string]any); ok {
			if items, ok := inner["Objects"].([]any); ok {
				return items, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
