package pricing

import (
	"fmt"

	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Settings are the restaurant settings pricing depends on.
type Settings struct {
	PickupEnabled      bool
	DeliveryEnabled    bool
	TaxIncludedInPrice bool
	DeliveryCharge     decimal.Decimal
	MinimumOrderValue  decimal.Decimal
	Zones              []Zone
}

// DefaultSettings apply to a restaurant that never saved its settings.
func DefaultSettings() Settings {
	return Settings{
		PickupEnabled:      true,
		DeliveryEnabled:    true,
		TaxIncludedInPrice: true,
		DeliveryCharge:     decimal.Zero,
		MinimumOrderValue:  decimal.Zero,
	}
}

type QuoteInput struct {
	OrderType  string
	Lines      []Line
	CouponCode string
	PinCode    string
	Discounts  []Discount
	Taxes      []Tax
	Settings   Settings
}

// Quote is an itemized price for a cart.
// Total == AfterDiscount + TaxTotal + DeliveryFee, and AfterDiscount ==
// Subtotal - Discount.Amount.
type Quote struct {
	OrderType     string
	Lines         []Line
	Subtotal      decimal.Decimal
	Discount      AppliedDiscount
	CouponCode    string
	AfterDiscount decimal.Decimal
	Taxes         []TaxLine
	TaxTotal      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Zone          *Zone
	Total         decimal.Decimal
}

// BuildQuote prices a cart. It is deterministic for identical input.
func BuildQuote(in QuoteInput) (*Quote, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("at least one item is required: %w", apperr.ErrInvalidRequest)
	}
	for i, l := range in.Lines {
		if err := checkLine(i, l); err != nil {
			return nil, err
		}
	}

	switch in.OrderType {
	case enum.OrderTypeDineIn:
	case enum.OrderTypePickup:
		if !in.Settings.PickupEnabled {
			return nil, fmt.Errorf("pickup is not available: %w", apperr.ErrInvalidRequest)
		}
	case enum.OrderTypeDelivery:
		if !in.Settings.DeliveryEnabled {
			return nil, fmt.Errorf("delivery is disabled: %w", apperr.ErrDeliveryIneligible)
		}
	default:
		return nil, fmt.Errorf("order type %q: %w", in.OrderType, apperr.ErrInvalidRequest)
	}

	subtotal := Subtotal(in.Lines)
	if subtotal.GreaterThan(MaxAmount) {
		return nil, fmt.Errorf("subtotal %s exceeds %s: %w",
			subtotal.StringFixed(2), MaxAmount.StringFixed(2), apperr.ErrInvalidRequest)
	}

	discount, err := ResolveDiscount(in.Discounts, in.CouponCode, subtotal)
	if err != nil {
		return nil, err
	}

	delivery, err := MatchDeliveryZone(in.OrderType, in.PinCode, in.Settings.Zones, in.Settings.DeliveryCharge)
	if err != nil {
		return nil, err
	}

	if in.OrderType == enum.OrderTypeDelivery {
		minimum := in.Settings.MinimumOrderValue
		if delivery.Zone != nil && delivery.Zone.MinOrder.Sign() > 0 {
			minimum = delivery.Zone.MinOrder
		}
		if subtotal.LessThan(minimum) {
			return nil, fmt.Errorf("subtotal %s is below minimum %s: %w",
				subtotal.StringFixed(2), minimum.StringFixed(2), apperr.ErrBelowMinimumOrder)
		}
	}

	afterDiscount := decimal.Max(subtotal.Sub(discount.Amount), decimal.Zero)

	taxes, taxTotal := CalculateTaxes(TaxInput{
		Lines:         in.Lines,
		AfterDiscount: afterDiscount,
		Taxes:         in.Taxes,
		TaxIncluded:   in.Settings.TaxIncludedInPrice,
	})

	total := afterDiscount.Add(taxTotal).Add(delivery.Fee)
	if total.GreaterThan(MaxAmount) {
		return nil, fmt.Errorf("total %s exceeds %s: %w",
			total.StringFixed(2), MaxAmount.StringFixed(2), apperr.ErrInvalidRequest)
	}

	q := &Quote{
		OrderType:     in.OrderType,
		Lines:         in.Lines,
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: afterDiscount,
		Taxes:         taxes,
		TaxTotal:      taxTotal,
		DeliveryFee:   delivery.Fee,
		Zone:          delivery.Zone,
		Total:         total,
	}
	if discount.Discount != nil && discount.Discount.Type == enum.DiscountTypeCoupon {
		q.CouponCode = NormalizeCoupon(in.CouponCode)
	}
	return q, nil
}

// checkLine rejects quantities outside 1..MaxQuantity and lines whose
// variation discount is larger than the rest of the unit price.
func checkLine(i int, l Line) error {
	if l.Quantity <= 0 || l.Quantity > MaxQuantity {
		return fmt.Errorf("item[%d]: quantity must be between 1 and %d: %w", i, MaxQuantity, apperr.ErrInvalidRequest)
	}
	for j, a := range l.Addons {
		if a.Quantity <= 0 || a.Quantity > MaxQuantity {
			return fmt.Errorf("item[%d].addons[%d]: quantity must be between 1 and %d: %w", i, j, MaxQuantity, apperr.ErrInvalidRequest)
		}
	}
	if l.UnitPrice().Sign() < 0 {
		return fmt.Errorf("item[%d]: %s prices below zero: %w", i, l.MenuItemName, apperr.ErrCatalogMismatch)
	}
	return nil
}

// Rounded returns a copy with every amount rounded to cents, half away from
// zero. The tax total and the grand total are recomputed from the rounded
// parts so a printed receipt adds up.
func (q *Quote) Rounded() *Quote {
	r := *q
	r.Subtotal = q.Subtotal.Round(2)
	r.Discount.Amount = decimal.Min(q.Discount.Amount.Round(2), r.Subtotal)
	r.AfterDiscount = r.Subtotal.Sub(r.Discount.Amount)

	r.Taxes = make([]TaxLine, len(q.Taxes))
	r.TaxTotal = decimal.Zero
	for i, t := range q.Taxes {
		t.Amount = t.Amount.Round(2)
		r.Taxes[i] = t
		r.TaxTotal = r.TaxTotal.Add(t.Amount)
	}

	r.DeliveryFee = q.DeliveryFee.Round(2)
	r.Total = r.AfterDiscount.Add(r.TaxTotal).Add(r.DeliveryFee)
	return &r
}
