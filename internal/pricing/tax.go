package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tax is a restaurant-level tax.
type Tax struct {
	Name      string
	Rate      decimal.Decimal // percent
	Active    bool
	SortOrder int32
}

// TaxLine is one entry of an order's tax breakdown.
type TaxLine struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

type TaxInput struct {
	Lines         []Line
	AfterDiscount decimal.Decimal
	Taxes         []Tax
	// TaxIncluded suppresses restaurant-level taxes. Category taxes still apply.
	TaxIncluded bool
}

// CalculateTaxes returns the tax breakdown and its sum.
//
// Category lines come first, one per menu with a non-zero rate, in order of
// first appearance in the cart. Each is charged on the menu's share of the
// discounted subtotal, where the discount is spread proportionally to each
// menu's share of the raw subtotal. Restaurant lines follow in sort order and
// are charged on the whole discounted subtotal.
func CalculateTaxes(in TaxInput) ([]TaxLine, decimal.Decimal) {
	lines := []TaxLine{}
	total := decimal.Zero

	subtotal := Subtotal(in.Lines)

	type menuGroup struct {
		name string
		rate decimal.Decimal
		raw  decimal.Decimal
	}
	var order []uuid.UUID
	groups := map[uuid.UUID]*menuGroup{}
	for _, l := range in.Lines {
		g, ok := groups[l.MenuID]
		if !ok {
			g = &menuGroup{name: l.MenuName, rate: l.MenuTaxRate, raw: decimal.Zero}
			groups[l.MenuID] = g
			order = append(order, l.MenuID)
		}
		g.raw = g.raw.Add(l.Total())
	}

	for _, id := range order {
		g := groups[id]
		if g.rate.Sign() <= 0 {
			continue
		}
		share := decimal.Zero
		if subtotal.Sign() > 0 {
			share = g.raw.Mul(in.AfterDiscount).Div(subtotal)
		}
		amount := share.Mul(g.rate).Div(hundred)
		lines = append(lines, TaxLine{Name: g.name, Rate: g.rate, Amount: amount})
		total = total.Add(amount)
	}

	if !in.TaxIncluded {
		taxes := make([]Tax, 0, len(in.Taxes))
		for _, t := range in.Taxes {
			if t.Active && t.Rate.Sign() > 0 {
				taxes = append(taxes, t)
			}
		}
		sort.SliceStable(taxes, func(i, j int) bool { return taxes[i].SortOrder < taxes[j].SortOrder })
		for _, t := range taxes {
			amount := in.AfterDiscount.Mul(t.Rate).Div(hundred)
			lines = append(lines, TaxLine{Name: t.Name, Rate: t.Rate, Amount: amount})
			total = total.Add(amount)
		}
	}

	return lines, total
}
