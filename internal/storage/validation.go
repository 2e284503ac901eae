// Package storage provides the raw batch cache for the rollover application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/rollover/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidBatch     = errors.New("invalid batch")
	ErrInvalidDateRange = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBatch checks a batch before it is written.
func validateBatch(batch *model.Batch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch", ErrNilParameter)
	}
	if strings.TrimSpace(batch.ClientID) == "" {
		return fmt.Errorf("%w: client id is required", ErrInvalidBatch)
	}
	if batch.FetchedAt.IsZero() {
		return fmt.Errorf("%w: fetch time is required", ErrInvalidBatch)
	}
	if !batch.Start.IsZero() && !batch.End.IsZero() && batch.End.Before(batch.Start) {
		return fmt.Errorf("%w: %w", ErrInvalidBatch, ErrInvalidDateRange)
	}
	return nil
}
