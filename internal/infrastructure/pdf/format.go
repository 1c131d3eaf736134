package pdf

import (
	"strings"

	"github.com/shopspring/decimal"
)

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney importe con dos decimales, separador de miles y símbolo: 1234.5 → "1.234,50 €".
func formatMoney(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(2)) + " €"
}

// formatQuantity cantidad con tres decimales: 100 → "100,000".
func formatQuantity(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(3))
}

// formatDecimal precio sin ceros de relleno: 0.190000 → "0,19".
func formatDecimal(d decimal.Decimal) string {
	return groupThousands(d.String())
}

// groupThousands convierte "1234567.89" en "1.234.567,89".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	var b strings.Builder
	b.WriteString(sign)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// maskIBAN deja visibles los 4 primeros y 4 últimos caracteres.
func maskIBAN(iban string) string {
	iban = strings.ReplaceAll(iban, " ", "")
	if iban == "" {
		return "—"
	}
	if len(iban) <= 8 {
		return iban
	}
	return iban[:4] + strings.Repeat("*", len(iban)-8) + iban[len(iban)-4:]
}
