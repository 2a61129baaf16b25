// Package apperr holds the error kinds returned by the order engine.
//
// Call sites wrap one of the sentinels with %w so that callers can branch
// with errors.Is while the message keeps its context, e.g.
//
//	fmt.Errorf("item[%d]: menu item %s: %w", i, id, apperr.ErrNotFound)
package apperr

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidCoupon       = errors.New("invalid coupon")
	ErrDeliveryIneligible  = errors.New("delivery not available for this address")
	ErrBelowMinimumOrder   = errors.New("order is below the minimum order value")
	ErrCatalogMismatch     = errors.New("menu changed while placing the order")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyTransitioned = errors.New("status already changed")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrSlotUnavailable     = errors.New("table is already booked for the selected time")
)

// Kind is the stable, machine-readable name of an error kind.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindInvalidRequest      Kind = "INVALID_REQUEST"
	KindInvalidCoupon       Kind = "INVALID_COUPON"
	KindDeliveryIneligible  Kind = "DELIVERY_INELIGIBLE"
	KindBelowMinimumOrder   Kind = "BELOW_MINIMUM_ORDER"
	KindCatalogMismatch     Kind = "CATALOG_MISMATCH"
	KindStorageUnavailable  Kind = "STORAGE_UNAVAILABLE"
	KindConstraintViolation Kind = "CONSTRAINT_VIOLATION"
	KindInvalidTransition   Kind = "INVALID_TRANSITION"
	KindAlreadyTransitioned Kind = "ALREADY_TRANSITIONED"
	KindDuplicateSubmission Kind = "DUPLICATE_SUBMISSION"
	KindSlotUnavailable     Kind = "SLOT_UNAVAILABLE"
	KindInternal            Kind = "INTERNAL"

	// Reported by the HTTP layer only; no sentinel maps to them.
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrNotFound, KindNotFound},
	{ErrInvalidRequest, KindInvalidRequest},
	{ErrInvalidCoupon, KindInvalidCoupon},
	{ErrDeliveryIneligible, KindDeliveryIneligible},
	{ErrBelowMinimumOrder, KindBelowMinimumOrder},
	{ErrCatalogMismatch, KindCatalogMismatch},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrAlreadyTransitioned, KindAlreadyTransitioned},
	{ErrDuplicateSubmission, KindDuplicateSubmission},
	{ErrSlotUnavailable, KindSlotUnavailable},
	// Storage kinds last: a catalog mismatch is usually reported together
	// with the underlying constraint error.
	{ErrStorageUnavailable, KindStorageUnavailable},
	{ErrConstraintViolation, KindConstraintViolation},
}

// KindOf returns the kind of err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
