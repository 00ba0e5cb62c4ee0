// Package pricing holds the money rules shared by the cart total
// recomputation and order placement: every total is derived from line
// unit-price snapshots, never stored independently of a recompute.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	// TaxRate is the flat tax applied on the items subtotal at checkout.
	TaxRate = decimal.NewFromFloat(0.15)
	// FreeShippingThreshold: subtotals strictly above this ship free.
	FreeShippingThreshold = decimal.NewFromInt(1000)
	// FlatShippingRate applies to everything at or below the threshold.
	FlatShippingRate = decimal.NewFromInt(100)
)

// Line is one priced cart or order line.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int32
}

// ItemsTotal sums unitPrice*quantity over all lines.
func ItemsTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity)))
	}
	return total
}

// Quote derives the frozen order prices from an items subtotal. Tax is
// rounded to cents.
func Quote(itemsPrice decimal.Decimal) (taxPrice, shippingPrice, totalPrice decimal.Decimal) {
	taxPrice = itemsPrice.Mul(TaxRate).Round(2)
	shippingPrice = FlatShippingRate
	if itemsPrice.GreaterThan(FreeShippingThreshold) {
		shippingPrice = decimal.Zero
	}
	totalPrice = itemsPrice.Add(taxPrice).Add(shippingPrice)
	return taxPrice, shippingPrice, totalPrice
}
