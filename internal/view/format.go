package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySuffix follows every displayed price.
const CurrencySuffix = "ل.س"

var priceLocale = language.MustParse("ar-SY")

// FormatPrice renders a price with the Syrian Arabic digit grouping and the
// currency suffix.
func FormatPrice(price float64) string {
	p := message.NewPrinter(priceLocale)
	return p.Sprintf("%v", number.Decimal(price, number.MaxFractionDigits(2))) + " " + CurrencySuffix
}
