// Package report renders a ledger summary for export: currency
// formatting for payloads and the XLSX workbook download.
package report

import (
	"fmt"
	"strings"

	"financeiro/internal/core"
)

// FormatBRL renders cents as Brazilian currency, "R$ 1.234,56".
// Negative amounts keep the sign in front of the symbol.
func FormatBRL(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := cents / 100
	frac := cents % 100

	return fmt.Sprintf("%sR$ %s,%02d", sign, groupThousands(reais), frac)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
