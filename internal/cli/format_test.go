package cli

import (
	"testing"

	"bankcli/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{50, "USD", "$50.00"},
		{1234567.891, "USD", "$1,234,567.89"},
		{-20.5, "EUR", "-€20.50"},
		{99.9, "JPY", "JPY 99.90"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.amount, tc.currency); got != tc.want {
			t.Errorf("FormatCurrency(%v, %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestFormatBalancePassesThroughUnparseable(t *testing.T) {
	if got := FormatBalance("100.00", "USD"); got != "$100.00" {
		t.Fatalf("FormatBalance = %q", got)
	}
	if got := FormatBalance("n/a", "USD"); got != "n/a" {
		t.Fatalf("FormatBalance fallback = %q", got)
	}
}

func TestFormatAccountNumber(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"1001":       "1001",
		"12345678":   "1234 5678",
		"1234567890": "1234 5678 90",
	}
	for in, want := range cases {
		if got := FormatAccountNumber(in); got != want {
			t.Errorf("FormatAccountNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTransactionSign(t *testing.T) {
	if got := TransactionSign(domain.TransactionDeposit); got != "+" {
		t.Fatalf("deposit sign = %q", got)
	}
	if got := TransactionSign(domain.TransactionWithdrawal); got != "-" {
		t.Fatalf("withdrawal sign = %q", got)
	}
	if got := TransactionSign(domain.TransactionTransfer); got != "-" {
		t.Fatalf("transfer sign = %q", got)
	}
}
