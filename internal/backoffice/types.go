// Package backoffice provides a client for the vendor back-office API that
// supplies player ledgers, withdrawal requests and bonuses.
package backoffice

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/rollover/internal/common"
)

// DefaultBaseURL is the vendor's Turkish locale API root.
const DefaultBaseURL = "https://backofficewebadmin.betconstruct.com/api/tr"

// DefaultBalanceTypeID is the main balance account type.
const DefaultBalanceTypeID = "5211"

// Config holds the configuration for the back-office client.
type Config struct {
	Location *time.Location
	BaseURL  string
	Token    string
	Timeout  time.Duration
	PageSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  30 * time.Second,
		PageSize: 100,
		Location: time.UTC,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: back-office token is not set", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: base URL must be http(s), got %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", common.ErrInvalidConfig)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// APIError represents an error from the back-office API.
type APIError struct {
	Endpoint   string
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("back-office %s failed: %s (status=%d)", e.Endpoint, e.Message, e.StatusCode)
}

// IsAuthError returns true if the error is an authentication failure.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Unwrap lets callers match the failure class with errors.Is.
func (e *APIError) Unwrap() error {
	if e.IsAuthError() {
		return common.ErrUnauthorized
	}
	return common.ErrUpstream
}

// envelope is the wrapper every back-office response uses.
type envelope struct {
	AlertMessage string          `json:"AlertMessage"`
	Data         json.RawMessage `json:"Data"`
	HasError     bool            `json:"HasError"`
}

type transactionsRequest struct {
	GameID          *string `json:"GameId"`
	StartTimeLocal  string  `json:"StartTimeLocal"`
	EndTimeLocal    string  `json:"EndTimeLocal"`
	ClientID        string  `json:"ClientId"`
	CurrencyID      string  `json:"CurrencyId"`
	BalanceTypeID   string  `json:"BalanceTypeId"`
	DocumentTypeIDs []int   `json:"DocumentTypeIds"`
}

type withdrawalRequestsRequest struct {
	PaymentMethodID   *int     `json:"PaymentMethodId"`
	ClientID          *string  `json:"ClientId"`
	ClientName        *string  `json:"ClientName"`
	ClientUsername    *string  `json:"ClientUsername"`
	PaymentSystemName *string  `json:"PaymentSystemName"`
	DateFrom          string   `json:"DateFrom"`
	DateTo            string   `json:"DateTo"`
	Statuses          []string `json:"Statuses"`
	Page              int      `json:"Page"`
	PageSize          int      `json:"PageSize"`
}

type bonusesRequest struct {
	StartDateLocal         *string `json:"StartDateLocal"`
	EndDateLocal           *string `json:"EndDateLocal"`
	BonusType              *int    `json:"BonusType"`
	AcceptanceType         *int    `json:"AcceptanceType"`
	ClientID               string  `json:"ClientId"`
	ClientBonusID          string  `json:"ClientBonusId"`
	PartnerBonusID         string  `json:"PartnerBonusId"`
	PartnerExternalBonusID string  `json:"PartnerExternalBonusId"`
}

type accountsRequest struct {
	ID string `json:"Id"`
}

// Account is one of a player's balance accounts.
type Account struct {
	AccountID     string      `json:"AccountId"`
	CurrencyID    string      `json:"CurrencyId"`
	BalanceTypeID json.Number `json:"BalanceTypeId"`
	Balance       json.Number `json:"Balance"`
}

// balanceType reads the balance type from the account id prefix ("5211-...-TRY"),
// falling back to the explicit field.
func (a Account) balanceType() string {
	if prefix, _, ok := strings.Cut(a.AccountID, "-"); ok && isDigits(prefix) {
		return prefix
	}
	if a.BalanceTypeID != "" {
		return a.BalanceTypeID.String()
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
