// Package money formats fare amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the currency code appended to amounts
const DefaultCurrency = "XPF"

// Format renders a whole amount with the grouping of the language ("fr" or
// "en", French otherwise) and a trailing currency code, e.g. "12,500 XPF"
func Format(amount int, lang, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	p := message.NewPrinter(tag(lang))
	return p.Sprintf("%d", amount) + " " + currency
}

// Formatted is the display form of a price triplet
type Formatted struct {
	FirstClass  string `json:"first_class"`
	SecondClass string `json:"second_class"`
	ThirdClass  string `json:"third_class"`
}

// FormatPrices formats each class of a price triplet
func FormatPrices(first, second, third int, lang, currency string) Formatted {
	return Formatted{
		FirstClass:  Format(first, lang, currency),
		SecondClass: Format(second, lang, currency),
		ThirdClass:  Format(third, lang, currency),
	}
}

func tag(lang string) language.Tag {
	if lang == "en" {
		return language.English
	}
	return language.French
}
