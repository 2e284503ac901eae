// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Reconciliation errors.
	ErrNoAnchorFound = errors.New("no anchor deposit found")
	ErrInvalidBatch  = errors.New("invalid transaction batch")
	ErrInvalidPolicy = errors.New("invalid policy")

	// Back-office errors.
	ErrUnauthorized = errors.New("back-office rejected the token")
	ErrUpstream     = errors.New("back-office request failed")

	// Cache errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Explain maps known failures to the message an operator should see.
// Unknown errors are returned unchanged.
func Explain(err error) error {
	if err == nil {
		return nil
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return err
	}

	switch {
	case errors.Is(err, ErrNoAnchorFound):
		return NewUserError("insufficient history: the batch has no deposit to anchor on", err)
	case errors.Is(err, ErrInvalidBatch):
		return NewUserError("the transaction batch could not be read", err)
	case errors.Is(err, ErrUnauthorized):
		return NewUserError("the back-office token is expired or lacks access", err)
	case errors.Is(err, ErrInvalidPolicy):
		return NewUserError("the wagering policy configuration is not usable", err)
	}
	return err
}
