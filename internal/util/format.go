// internal/util/format.go
package util

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is displayed in place of an absent amount.
const NotAvailable = "n/d"

var thousandsPrinter = message.NewPrinter(language.Spanish)

// FormatThousands renders an amount without decimals and with "." grouping: 100000 -> "100.000".
func FormatThousands(d decimal.Decimal) string {
	return thousandsPrinter.Sprintf("%d", d.Round(0).IntPart())
}

// FormatOptionalThousands is FormatThousands for nullable amounts.
func FormatOptionalThousands(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return FormatThousands(d.Decimal)
}
