package pricing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is a restaurant discount as configured in the dashboard.
type Discount struct {
	ID         uuid.UUID
	Name       string
	Type       string // enum.DiscountType*
	ValueType  string // enum.DiscountValue*
	Value      decimal.Decimal
	CouponCode string
	Active     bool
}

// AppliedDiscount is the discount chosen for one order. Discount is nil when
// nothing applies and Amount is then zero.
type AppliedDiscount struct {
	Discount *Discount
	Amount   decimal.Decimal
}

// NormalizeCoupon trims and upper-cases a coupon code.
func NormalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ResolveDiscount picks the single discount for an order.
//
// An explicit coupon code must match an active coupon (case-insensitively),
// otherwise apperr.ErrInvalidCoupon is returned. Without a code the first
// active menu-wide discount applies. The amount never exceeds subtotal.
func ResolveDiscount(discounts []Discount, couponCode string, subtotal decimal.Decimal) (AppliedDiscount, error) {
	code := NormalizeCoupon(couponCode)
	if code != "" {
		for i := range discounts {
			d := &discounts[i]
			if d.Active && d.Type == enum.DiscountTypeCoupon && NormalizeCoupon(d.CouponCode) == code {
				return AppliedDiscount{Discount: d, Amount: discountAmount(d, subtotal)}, nil
			}
		}
		return AppliedDiscount{Amount: decimal.Zero}, fmt.Errorf("coupon %q: %w", code, apperr.ErrInvalidCoupon)
	}

	for i := range discounts {
		d := &discounts[i]
		if d.Active && d.Type == enum.DiscountTypeMenu {
			return AppliedDiscount{Discount: d, Amount: discountAmount(d, subtotal)}, nil
		}
	}
	return AppliedDiscount{Amount: decimal.Zero}, nil
}

func discountAmount(d *Discount, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.Sign() <= 0 || d.Value.Sign() <= 0 {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch d.ValueType {
	case enum.DiscountValuePercentage:
		amount = subtotal.Mul(d.Value).Div(hundred)
	default:
		amount = d.Value
	}
	return decimal.Min(amount, subtotal)
}
