package enum

// ── Group A: State machines (CHECK constrained in DB) ──

const (
	OrderStatusNew       = "new"
	OrderStatusAccepted  = "accepted"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// ── Group B: Pricing vocabulary (CHECK constrained in DB) ──

const (
	OrderTypeDineIn   = "dine-in"
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

const (
	DiscountTypeMenu   = "menu"
	DiscountTypeItem   = "item"
	DiscountTypeCoupon = "coupon"
)

const (
	DiscountValuePercentage = "percentage"
	DiscountValueFlat       = "flat"
)

// ── Group C: Configurable labels (no DB constraint) ──

const (
	OrderSourceWidget = "widget"
	OrderSourcePage   = "page"
	OrderSourcePOS    = "pos"
)

const (
	StaffRoleOwner   = "OWNER"
	StaffRoleManager = "MANAGER"
	StaffRoleStaff   = "STAFF"
)

// EstimatedMinutes is the fixed set of preparation times a POS board offers
// when accepting an order.
var EstimatedMinutes = []int{15, 20, 30, 45, 60}
