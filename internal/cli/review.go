package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
)

// reviewLabelWidth aligns the colons of the review block.
const reviewLabelWidth = 19

// ReviewText renders the plain review block operators paste into their
// ticketing tool. The layout is fixed and carries no styling.
func ReviewText(req *model.WithdrawalRequest, r *reconcile.Result) string {
	var name, login, method string
	var requested *decimal.Decimal
	if req != nil {
		name, login, method = req.ClientName, req.ClientLogin, req.PaymentChannel
		amount := req.Amount
		requested = &amount
	}

	lines := []string{
		reviewLine("Full name", orDash(name)),
		reviewLine("Username", orDash(login)),
		reviewLine("Requested amount", amountOrDash(requested)),
		reviewLine("Request method", orDash(method)),
	}

	if r == nil {
		lines = append(lines, reviewLine("Anchor amount", "-"))
		return strings.Join(lines, "\n")
	}

	anchorAmount := r.Anchor.Amount
	lines = append(lines,
		reviewLine("Anchor amount", fmt.Sprintf("%s (%s)", amountOrDash(&anchorAmount), r.Anchor.Type.Label())),
		reviewLine("Turnover", turnoverText(r)),
	)
	if r.WithdrawalCap != nil {
		capText := reconcile.FormatAmount(*r.WithdrawalCap)
		if requested != nil {
			if check := r.CheckWithdrawal(*requested); check.CapExceeded {
				capText += " (exceeded by " + reconcile.FormatAmount(check.Excess) + ")"
			}
		}
		lines = append(lines, reviewLine("Withdrawal cap", capText))
	}
	lines = append(lines,
		reviewLine("Still playing", yesNo(r.Activity.StillPlaying)),
		"",
		reviewLine("Total deposits", reconcile.FormatAmount(r.Activity.TotalDeposited)),
		reviewLine("Total withdrawals", reconcile.FormatAmount(r.Activity.TotalWithdrawalRequested)),
		reviewLine("Withdrawal count", fmt.Sprintf("%d", r.Activity.WithdrawalRequestCount)),
		reviewLine("Deposit count", fmt.Sprintf("%d", r.Activity.DepositCount)),
		reviewLine("Note", r.Narrative),
	)

	return strings.Join(lines, "\n")
}

func turnoverText(r *reconcile.Result) string {
	if !r.RatioDefined {
		return "undefined (zero anchor)"
	}
	text := r.TurnoverRatio.StringFixed(2) + "x"
	if r.TurnoverSatisfied {
		return text + ", met"
	}
	return text + ", " + reconcile.FormatAmount(r.RemainingTurnover) + " remaining"
}

func reviewLine(label, value string) string {
	return strings.TrimRight(fmt.Sprintf("%-*s: %s", reviewLabelWidth, label, value), " ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func amountOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return reconcile.FormatAmount(*d)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// PayoutInfo is the bank account a player asked to be paid to.
type PayoutInfo struct {
	AccountHolder string
	Bank          string
	IBAN          string
}

var (
	holderPattern = regexp.MustCompile(`(?i)Hesap\s*Ad[ıi]\s*(?:ve\s*Soyad[ıi]|Soyad[ıi])\s*[:=]\s*([^,\n]+)`)
	bankPattern   = regexp.MustCompile(`(?i)Banka\s*Ad[ıi]\s*[:=]\s*([^,\n]+)`)
	ibanPattern   = regexp.MustCompile(`(?i)IBAN\s*(?:Numaras[ıi])?\s*[:=]\s*([A-Z]{2}[0-9A-Z ]{10,})`)
)

// ParsePayoutInfo extracts the account holder, bank and IBAN from the free
// text a player attaches to a bank transfer request. Missing parts are empty.
func ParsePayoutInfo(info string) PayoutInfo {
	var p PayoutInfo
	if m := holderPattern.FindStringSubmatch(info); m != nil {
		p.AccountHolder = strings.TrimSpace(m[1])
	}
	if m := bankPattern.FindStringSubmatch(info); m != nil {
		p.Bank = strings.TrimSpace(m[1])
	}
	if m := ibanPattern.FindStringSubmatch(info); m != nil {
		p.IBAN = strings.ToUpper(strings.Join(strings.Fields(m[1]), ""))
	}
	return p
}

// IsBankTransfer reports whether a payment channel pays out by bank transfer.
func IsBankTransfer(channel string) bool {
	return strings.Contains(strings.ToLower(channel), "banktransfer")
}

// PayoutSlip renders the bank transfer block for a withdrawal request, or ""
// when the request is not paid by bank transfer.
func PayoutSlip(req model.WithdrawalRequest) string {
	if !IsBankTransfer(req.PaymentChannel) {
		return ""
	}
	p := ParsePayoutInfo(req.Info)
	return strings.Join([]string{
		"Account holder : " + orDash(p.AccountHolder),
		"IBAN           : " + orDash(p.IBAN),
		"Bank           : " + orDash(p.Bank),
		"Amount         : " + reconcile.FormatAmount(req.Amount),
		strings.Repeat("-", 40),
	}, "\n")
}
