package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatLira renders an amount in Turkish locale notation with the lira
// sign, e.g. 1234567.5 -> "1.234.567,50 ₺". Statement exports use this so
// figures read the way the ledger prints them.
func FormatLira(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(digit)
	}
	sb.WriteByte(',')
	sb.WriteString(fracPart)
	sb.WriteString(" ₺")
	return sb.String()
}
