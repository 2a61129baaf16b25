package pricing

import (
	"fmt"
	"strings"

	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Zone is a delivery zone as stored in the restaurant settings.
//
// Polygon is kept for the dashboard's map editor, which resolves it to pin
// codes when the zone is drawn. Matching at order time only looks at PinCodes.
type Zone struct {
	Name     string          `json:"name"`
	Fee      decimal.Decimal `json:"fee"`
	MinOrder decimal.Decimal `json:"min_order"`
	Polygon  [][2]float64    `json:"polygon,omitempty"`
	PinCodes []string        `json:"pin_codes,omitempty"`
}

// DeliveryResult is the outcome of zone matching. Zone is nil when the
// default charge applies.
type DeliveryResult struct {
	Fee  decimal.Decimal
	Zone *Zone
}

// NormalizePinCode strips whitespace and upper-cases a pin or postal code.
func NormalizePinCode(pin string) string {
	return strings.ToUpper(strings.Join(strings.Fields(pin), ""))
}

// MatchDeliveryZone resolves the delivery fee for an order.
//
// Non-delivery orders cost nothing. When no zone restricts pin codes the
// default charge applies. Otherwise the first zone listing the pin code wins
// and a pin code matched by no zone is apperr.ErrDeliveryIneligible.
func MatchDeliveryZone(orderType, pinCode string, zones []Zone, defaultCharge decimal.Decimal) (DeliveryResult, error) {
	if orderType != enum.OrderTypeDelivery {
		return DeliveryResult{Fee: decimal.Zero}, nil
	}

	restricted := false
	for _, z := range zones {
		if len(z.PinCodes) > 0 {
			restricted = true
			break
		}
	}
	if !restricted {
		return DeliveryResult{Fee: defaultCharge}, nil
	}

	pin := NormalizePinCode(pinCode)
	if pin == "" {
		return DeliveryResult{}, fmt.Errorf("pin code is required for delivery: %w", apperr.ErrDeliveryIneligible)
	}
	for i := range zones {
		for _, p := range zones[i].PinCodes {
			if NormalizePinCode(p) == pin {
				return DeliveryResult{Fee: zones[i].Fee, Zone: &zones[i]}, nil
			}
		}
	}
	return DeliveryResult{}, fmt.Errorf("pin code %s: %w", pin, apperr.ErrDeliveryIneligible)
}
