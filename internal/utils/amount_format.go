package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatAmount renders amount with two decimals and grouping separators,
// prefixed by currency when it is set, e.g. "PKR 40,000.00".
func FormatAmount(currency string, amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	f, _ := amount.Round(2).Float64()
	s := p.Sprint(number.Decimal(f, number.Scale(2)))
	if currency == "" {
		return s
	}
	return currency + " " + s
}
