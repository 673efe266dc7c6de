// Package currency renders integer minor-unit amounts for display. All money
// math in the service stays in integer centavos; decimals appear only at the
// formatting boundary.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in centavos as Brazilian Real, pt-BR style:
// 2500 -> "R$ 25,00", 123456 -> "R$ 1.234,56", -2500 -> "-R$ 25,00".
func FormatBRL(cents int64) string {
	amount := decimal.New(cents, -2)
	negative := amount.IsNegative()

	fixed := amount.Abs().StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	b.WriteString(groupThousands(intPart))
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
