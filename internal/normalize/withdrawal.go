package normalize

import (
	"strings"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

// statusNames are the state names the back-office reports, matched verbatim.
var statusNames = map[string]model.WithdrawalStatus{
	"Beklemede":    model.WithdrawalPending,
	"İşlemde":      model.WithdrawalProcessing,
	"Ödendi":       model.WithdrawalPaid,
	"Yeni":         model.WithdrawalNew,
	"RollBacked":   model.WithdrawalRolledBack,
	"İzin Verildi": model.WithdrawalAllowed,
	"İptal edildi": model.WithdrawalCancelled,
	"Reddedildi":   model.WithdrawalRejected,
	"Pending":      model.WithdrawalPending,
	"Processing":   model.WithdrawalProcessing,
	"Paid":         model.WithdrawalPaid,
	"New":          model.WithdrawalNew,
	"Allowed":      model.WithdrawalAllowed,
	"Cancelled":    model.WithdrawalCancelled,
	"Rejected":     model.WithdrawalRejected,
}

// statusAlternatives holds lower-case spellings seen in older exports.
var statusAlternatives = map[string]model.WithdrawalStatus{
	"iptal":       model.WithdrawalCancelled,
	"canceled":    model.WithdrawalCancelled,
	"rollback":    model.WithdrawalRolledBack,
	"rolled back": model.WithdrawalRolledBack,
	"rolledback":  model.WithdrawalRolledBack,
}

// statusCodes maps the numeric State field.
var statusCodes = map[int]model.WithdrawalStatus{
	0:  model.WithdrawalPending,
	1:  model.WithdrawalProcessing,
	2:  model.WithdrawalPaid,
	3:  model.WithdrawalNew,
	4:  model.WithdrawalRolledBack,
	-1: model.WithdrawalCancelled,
	-2: model.WithdrawalRejected,
}

// StatusFromLabel resolves a state name verbatim, then case-insensitively,
// then through the alternative spellings.
func StatusFromLabel(label string) (model.WithdrawalStatus, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.WithdrawalUnknown, false
	}
	if status, ok := statusNames[label]; ok {
		return status, true
	}

	lower := strings.ToLower(label)
	for name, status := range statusNames {
		if strings.ToLower(name) == lower {
			return status, true
		}
	}
	if status, ok := statusAlternatives[lower]; ok {
		return status, true
	}
	return model.WithdrawalUnknown, false
}

// WithdrawalStatus resolves the status of a raw withdrawal request record.
func WithdrawalStatus(rec model.RawRecord) model.WithdrawalStatus {
	if status, ok := StatusFromLabel(lookupString(rec, "StateName")); ok {
		return status
	}

	if v, ok := lookupKeys(rec, []string{"State"}); ok {
		if code, ok := toInt(v); ok {
			if status, ok := statusCodes[code]; ok {
				return status
			}
		}
	}

	for _, key := range []string{"Durum", "Status"} {
		if status, ok := statusNames[lookupString(rec, key)]; ok {
			return status
		}
	}
	return model.WithdrawalUnknown
}

// WithdrawalRequests converts raw withdrawal request records. Records whose
// request time cannot be parsed keep a zero RequestedAt.
func WithdrawalRequests(records []model.RawRecord, loc *time.Location) []model.WithdrawalRequest {
	requests := make([]model.WithdrawalRequest, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		req := model.WithdrawalRequest{
			ID:             lookupString(rec, "Id", "ID", "RequestId"),
			ClientID:       lookupString(rec, "ClientId", "ClientID"),
			ClientLogin:    lookupString(rec, "ClientLogin", "Login", "UserName"),
			ClientName:     lookupString(rec, "ClientName", "Name"),
			PaymentChannel: lookupString(rec, "PaymentSystemName", "PaymentMethod"),
			Info:           lookupString(rec, "Info"),
			Status:         WithdrawalStatus(rec),
		}
		if v, ok := lookupKeys(rec, []string{"Amount"}); ok {
			req.Amount = ParseAmount(v)
		}
		if v, ok := lookupKeys(rec, []string{"RequestTimeLocal", "RequestTime", "CreatedDate"}); ok {
			if ts, ok := parseTimestampValue(v, loc); ok {
				req.RequestedAt = ts
			}
		}
		requests = append(requests, req)
	}
	return requests
}
