// Package gst derives the monetary GST fields of a classified entry.
package gst

import (
	"github.com/shopspring/decimal"

	"github.com/basworks/gstpapers/internal/domain"
)

// eleven extracts the GST component of a tax-inclusive amount:
// gross * (0.10 / 1.10) == gross / 11.
var eleven = decimal.NewFromInt(11)

// Derive computes (gross, gst, net) for a transaction amount under the
// 10% tax-inclusive rule. GST is zero when the entry is not claimable,
// so gst + net == gross always holds.
func Derive(amount decimal.Decimal, claimable bool) (gross, gst, net decimal.Decimal) {
	gross = amount.Abs().Round(2)
	if claimable {
		gst = gross.Div(eleven).Round(2)
	} else {
		gst = decimal.Zero
	}
	net = gross.Sub(gst)
	return gross, gst, net
}

// Recalculate refreshes an entry's derived fields from its amount and
// current claimable flag. It runs once at classification time and again
// after every revision so the derived fields never go stale.
func Recalculate(e *domain.ClassifiedEntry) {
	e.Gross, e.GST, e.Net = Derive(e.Amount, e.Claimable)
}
