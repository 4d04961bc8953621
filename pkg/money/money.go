// Package money concentra la conversión de valores monetarios heterogéneos a decimal
// y su formato para mensajes en pt-BR.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ToDecimal convierte cualquier representación monetaria (texto, número, decimal) a decimal.
// Valores ausentes o no parseables valen cero: nunca devuelve error.
func ToDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero
		}
		return x.Decimal
	case string:
		return parseString(x)
	case *string:
		if x == nil {
			return decimal.Zero
		}
		return parseString(*x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return ToDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case json.Number:
		return parseString(string(x))
	case fmt.Stringer:
		return parseString(x.String())
	default:
		return decimal.Zero
	}
}

// Sum suma los valores convertidos con ToDecimal.
func Sum(values ...any) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(ToDecimal(v))
	}
	return total
}

// parseString acepta "1234.5", " 1234.50 " y el formato brasileño "1.234,50".
func parseString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var (
	printerOnce sync.Once
	printer     *message.Printer
)

func brPrinter() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(language.BrazilianPortuguese)
	})
	return printer
}

// FormatBRL formatea el valor con separadores pt-BR y dos decimales (ej. "15.000,00").
func FormatBRL(d decimal.Decimal) string {
	return brPrinter().Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatPercent formatea un porcentaje con dos decimales en pt-BR (ej. "-12,50%").
func FormatPercent(d decimal.Decimal) string {
	return brPrinter().Sprintf("%.2f", d.Round(2).InexactFloat64()) + "%"
}
