package cli

import (
	"strconv"
	"strings"

	"bankcli/internal/domain"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatCurrency renders an amount as e.g. "$1,234.50". Unknown
// currencies fall back to the ISO code as a prefix.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + groupThousands(strconv.FormatFloat(amount, 'f', 2, 64))
}

func groupThousands(formatted string) string {
	intPart, fracPart, _ := strings.Cut(formatted, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatBalance renders the backend's decimal string without
// recomputing it; an unparseable balance is shown as-is.
func FormatBalance(balance, currency string) string {
	amount, err := strconv.ParseFloat(balance, 64)
	if err != nil {
		return balance
	}
	return FormatCurrency(amount, currency)
}

// FormatAccountNumber groups digits by four: "12345678" -> "1234 5678".
func FormatAccountNumber(accountNumber string) string {
	if accountNumber == "" {
		return ""
	}
	var groups []string
	for len(accountNumber) > 4 {
		groups = append(groups, accountNumber[:4])
		accountNumber = accountNumber[4:]
	}
	groups = append(groups, accountNumber)
	return strings.Join(groups, " ")
}

// TransactionSign marks whether a transaction moves money in or out.
func TransactionSign(txType domain.TransactionType) string {
	switch txType {
	case domain.TransactionDeposit:
		return "+"
	case domain.TransactionWithdrawal, domain.TransactionTransfer:
		return "-"
	default:
		return ""
	}
}
