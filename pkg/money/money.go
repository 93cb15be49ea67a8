// Package money formatea montos en pesos chilenos para boletas y respuestas.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCLP devuelve el monto redondeado a pesos con separador de miles: 25000 -> "$25.000".
func FormatCLP(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	out := "$" + groupThousands(s)
	if neg {
		return "-" + out
	}
	return out
}

// FormatInt atajo para montos enteros.
func FormatInt(amount int64) string {
	return FormatCLP(decimal.NewFromInt(amount))
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
