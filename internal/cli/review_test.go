package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rollover/internal/model"
)

func TestReviewText(t *testing.T) {
	result := rebateResult(t)
	req := &model.WithdrawalRequest{
		ClientName:     "Ayşe Yılmaz",
		ClientLogin:    "ayse88",
		PaymentChannel: "BankTransferBME",
		Amount:         decimal.NewFromInt(3500),
	}

	text := ReviewText(req, result)
	lines := strings.Split(text, "\n")

	want := []string{
		"Full name          : Ayşe Yılmaz",
		"Username           : ayse88",
		"Requested amount   : 3,500.00",
		"Request method     : BankTransferBME",
		"Anchor amount      : 100.00 (Loss rebate)",
		"Turnover           : 0.80x, 20.00 remaining",
		"Withdrawal cap     : 3,000.00 (exceeded by 500.00)",
		"Still playing      : Yes",
		"",
		"Total deposits     : 1,000.00",
		"Total withdrawals  : 400.00",
		"Withdrawal count   : 1",
		"Deposit count      : 1",
		"Note               : Loss rebate (100.00) → Gates of Olympus produced 3,500.00 net profit",
	}
	assert.Equal(t, want, lines)
	assert.NotContains(t, text, "\x1b[")
}

func TestReviewText_MissingParts(t *testing.T) {
	text := ReviewText(nil, nil)
	assert.Equal(t, strings.Join([]string{
		"Full name          : -",
		"Username           : -",
		"Requested amount   : -",
		"Request method     : -",
		"Anchor amount      : -",
	}, "\n"), text)
}

func TestParsePayoutInfo(t *testing.T) {
	tests := []struct {
		name string
		info string
		want PayoutInfo
	}{
		{
			name: "full turkish info",
			info: "Hesap Adı ve Soyadı: Ayşe Yılmaz, Banka Adı: Ziraat Bankası, IBAN: tr12 0006 1005 1978 6457 8413 26",
			want: PayoutInfo{AccountHolder: "Ayşe Yılmaz", Bank: "Ziraat Bankası", IBAN: "TR120006100519786457841326"},
		},
		{
			name: "ascii spelling on separate lines",
			info: "Hesap Adi Soyadi = Mehmet Kaya\nBanka Adi = Garanti\nIBAN Numarasi: TR330006100519786457841326",
			want: PayoutInfo{AccountHolder: "Mehmet Kaya", Bank: "Garanti", IBAN: "TR330006100519786457841326"},
		},
		{
			name: "nothing recognisable",
			info: "please pay fast",
			want: PayoutInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePayoutInfo(tt.info))
		})
	}
}

func TestPayoutSlip(t *testing.T) {
	req := model.WithdrawalRequest{
		PaymentChannel: "BankTransferBME",
		Info:           "Hesap Adı Soyadı: Can Demir, Banka Adı: Akbank, IBAN: TR330006100519786457841326",
		Amount:         decimal.RequireFromString("1250.5"),
	}

	assert.Equal(t, strings.Join([]string{
		"Account holder : Can Demir",
		"IBAN           : TR330006100519786457841326",
		"Bank           : Akbank",
		"Amount         : 1,250.50",
		strings.Repeat("-", 40),
	}, "\n"), PayoutSlip(req))

	req.PaymentChannel = "Papara"
	assert.Empty(t, PayoutSlip(req))
}
