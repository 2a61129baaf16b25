// Package pricing turns a priced cart into an itemized quote.
//
// Everything in this package is pure: callers load the catalog snapshot,
// discounts, taxes and restaurant settings, and pricing combines them.
// Amounts are kept unrounded until Quote.Rounded.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Limits a cart must stay within. MaxAmount is the largest value a
// NUMERIC(12,2) money column holds.
const MaxQuantity = 999

var MaxAmount = decimal.RequireFromString("9999999999.99")

// Line is one cart line with the prices frozen from the catalog at read time.
// It is copied as-is into the order item rows.
type Line struct {
	MenuItemID   uuid.UUID
	MenuItemName string
	MenuID       uuid.UUID
	MenuName     string
	// MenuTaxRate is the category tax rate of the owning menu, in percent.
	MenuTaxRate decimal.Decimal
	BasePrice   decimal.Decimal
	Quantity    int32
	Variation   *VariationSnapshot
	Addons      []AddonSnapshot
}

type VariationSnapshot struct {
	ID              uuid.UUID
	Name            string
	PriceAdjustment decimal.Decimal
}

type AddonSnapshot struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int32
}

// UnitPrice is the base price plus the variation adjustment plus every
// add-on price times its quantity.
func (l Line) UnitPrice() decimal.Decimal {
	unit := l.BasePrice
	if l.Variation != nil {
		unit = unit.Add(l.Variation.PriceAdjustment)
	}
	for _, a := range l.Addons {
		unit = unit.Add(a.Price.Mul(decimal.NewFromInt32(a.Quantity)))
	}
	return unit
}

// Total is UnitPrice times the line quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt32(l.Quantity))
}

// Subtotal sums the line totals.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}
