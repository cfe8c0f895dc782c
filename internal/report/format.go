package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Presentation controls how amounts and dates are rendered into text.
type Presentation struct {
	CurrencySymbol string
	DateLayout     string
}

// DefaultPresentation renders rupees and day/month/year dates.
var DefaultPresentation = Presentation{
	CurrencySymbol: "₹",
	DateLayout:     "2/1/2006",
}

func (p Presentation) withDefaults() Presentation {
	if p.CurrencySymbol == "" {
		p.CurrencySymbol = DefaultPresentation.CurrencySymbol
	}
	if p.DateLayout == "" {
		p.DateLayout = DefaultPresentation.DateLayout
	}
	return p
}

// Money renders d with the currency symbol and two decimals.
func (p Presentation) Money(d decimal.Decimal) string {
	return p.withDefaults().CurrencySymbol + d.StringFixed(2)
}

// Date renders t with the configured layout.
func (p Presentation) Date(t time.Time) string {
	return t.Format(p.withDefaults().DateLayout)
}
