package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindInternal},
		{"plain", errors.New("boom"), KindInternal},
		{"not found wrapped", fmt.Errorf("item[0]: %w", ErrNotFound), KindNotFound},
		{"coupon", fmt.Errorf("coupon %q: %w", "FAKE99", ErrInvalidCoupon), KindInvalidCoupon},
		{"catalog wins over constraint", fmt.Errorf("insert: %w: %w", ErrCatalogMismatch, ErrConstraintViolation), KindCatalogMismatch},
		{"storage", fmt.Errorf("begin tx: %w", ErrStorageUnavailable), KindStorageUnavailable},
		{"already", ErrAlreadyTransitioned, KindAlreadyTransitioned},
		{"slot", fmt.Errorf("table %s: %w", "T4", ErrSlotUnavailable), KindSlotUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}
