package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/catalog"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/pricing"
)

const (
	maxOrderNumberRetries = 3

	// persistTimeout bounds a transaction once it has begun.
	persistTimeout = 15 * time.Second
)

// OrderStore defines the DB methods needed to store an order.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	LockAvailableMenuItems(ctx context.Context, arg database.LockAvailableMenuItemsParams) ([]uuid.UUID, error)
	LockAvailableVariations(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	LockAvailableAddons(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateOrderItemVariation(ctx context.Context, arg database.CreateOrderItemVariationParams) (database.OrderItemVariation, error)
	CreateOrderItemAddon(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
type NewOrderStore func(db database.DBTX) OrderStore

// persist stores the priced order. Retries up to maxOrderNumberRetries times
// when the generated id or order number collides with an existing order.
func (s *OrderService) persist(ctx context.Context, p *parsedOrder, q *pricing.Quote) (*PlaceOrderResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		result, err := s.createOrderTx(ctx, p, q)
		if err == nil {
			return result, nil
		}
		if isOrderNumberConflict(err) {
			s.logFor(ctx).Warn("order number collision, retrying", "attempt", attempt+1)
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, database.Classify("create order", lastErr)
}

// isOrderNumberConflict reports a unique violation on the order id or on
// the per-restaurant order number.
func isOrderNumberConflict(err error) bool {
	return database.IsUniqueViolation(err, "orders_restaurant_id_order_number_key") ||
		database.IsUniqueViolation(err, "orders_pkey")
}

// orderNumber is the customer-facing short reference: the first eight hex
// digits of the id, upper-cased.
func orderNumber(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}

// createOrderTx stores header, items and option snapshots in a single
// transaction.
func (s *OrderService) createOrderTx(ctx context.Context, p *parsedOrder, q *pricing.Quote) (*PlaceOrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, database.Classify("begin tx", err)
	}

	// Once the transaction is open it runs to commit or rollback on its own
	// deadline, whatever happens to the caller.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if err := lockCatalog(ctx, store, p.RestaurantID, &catalog.Snapshot{Lines: q.Lines}); err != nil {
		return nil, err
	}

	taxBreakdown, err := json.Marshal(q.Taxes)
	if err != nil {
		return nil, fmt.Errorf("encode tax breakdown: %w", err)
	}

	id := uuid.New()
	params := database.CreateOrderParams{
		ID:              id,
		RestaurantID:    p.RestaurantID,
		OrderNumber:     orderNumber(id),
		OrderType:       q.OrderType,
		Source:          p.Source,
		Subtotal:        database.DecimalToNumeric(q.Subtotal),
		DiscountApplied: database.DecimalToNumeric(q.Discount.Amount),
		TaxAmount:       database.DecimalToNumeric(q.TaxTotal),
		TaxBreakdown:    taxBreakdown,
		DeliveryFee:     database.DecimalToNumeric(q.DeliveryFee),
		Total:           database.DecimalToNumeric(q.Total),
		CouponCode:      textOrNull(q.CouponCode),
		CustomerName:    textOrNull(p.CustomerName),
		CustomerPhone:   textOrNull(p.CustomerPhone),
		DeliveryAddress: textOrNull(p.DeliveryAddress),
		PinCode:         textOrNull(pricing.NormalizePinCode(p.PinCode)),
		Notes:           textOrNull(p.Notes),
	}
	if q.Discount.Discount != nil {
		params.DiscountName = textOrNull(q.Discount.Discount.Name)
	}
	if q.Zone != nil {
		params.DeliveryZone = textOrNull(q.Zone.Name)
	}

	order, err := store.CreateOrder(ctx, params)
	if err != nil {
		if isOrderNumberConflict(err) {
			return nil, err
		}
		return nil, classifyWrite("create order", err)
	}

	items := make([]OrderItemResult, 0, len(q.Lines))
	for i, line := range q.Lines {
		item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:      order.ID,
			MenuItemID:   line.MenuItemID,
			MenuItemName: line.MenuItemName,
			Quantity:     line.Quantity,
			Price:        database.DecimalToNumeric(line.UnitPrice()),
			Notes:        textOrNull(p.Items[i].Notes),
		})
		if err != nil {
			return nil, classifyWrite(fmt.Sprintf("item[%d]: create order item", i), err)
		}
		res := OrderItemResult{Item: item}

		if line.Variation != nil {
			v, err := store.CreateOrderItemVariation(ctx, database.CreateOrderItemVariationParams{
				OrderItemID:     item.ID,
				VariationID:     line.Variation.ID,
				VariationName:   line.Variation.Name,
				PriceAdjustment: database.DecimalToNumeric(line.Variation.PriceAdjustment),
			})
			if err != nil {
				return nil, classifyWrite(fmt.Sprintf("item[%d]: create variation", i), err)
			}
			res.Variation = &v
		}

		for j, a := range line.Addons {
			addon, err := store.CreateOrderItemAddon(ctx, database.CreateOrderItemAddonParams{
				OrderItemID: item.ID,
				AddonID:     a.ID,
				AddonName:   a.Name,
				Price:       database.DecimalToNumeric(a.Price),
				Quantity:    a.Quantity,
			})
			if err != nil {
				return nil, classifyWrite(fmt.Sprintf("item[%d].addons[%d]: create add-on", i, j), err)
			}
			res.Addons = append(res.Addons, addon)
		}
		items = append(items, res)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, database.Classify("commit tx", err)
	}

	return &PlaceOrderResult{Order: order, Quote: q, Items: items}, nil
}

// lockCatalog takes share locks on every catalog row the order references
// and fails when any of them has been removed or marked unavailable since
// the snapshot was read.
func lockCatalog(ctx context.Context, store OrderStore, restaurantID uuid.UUID, snap *catalog.Snapshot) error {
	ids := snap.MenuItemIDs()
	locked, err := store.LockAvailableMenuItems(ctx, database.LockAvailableMenuItemsParams{
		Ids:          ids,
		RestaurantID: restaurantID,
	})
	if err != nil {
		return database.Classify("lock menu items", err)
	}
	if len(locked) != len(ids) {
		return fmt.Errorf("%d of %d menu items no longer available: %w", len(ids)-len(locked), len(ids), apperr.ErrCatalogMismatch)
	}

	if ids := snap.VariationIDs(); len(ids) > 0 {
		locked, err := store.LockAvailableVariations(ctx, ids)
		if err != nil {
			return database.Classify("lock variations", err)
		}
		if len(locked) != len(ids) {
			return fmt.Errorf("%d of %d variations no longer available: %w", len(ids)-len(locked), len(ids), apperr.ErrCatalogMismatch)
		}
	}

	if ids := snap.AddonIDs(); len(ids) > 0 {
		locked, err := store.LockAvailableAddons(ctx, ids)
		if err != nil {
			return database.Classify("lock add-ons", err)
		}
		if len(locked) != len(ids) {
			return fmt.Errorf("%d of %d add-ons no longer available: %w", len(ids)-len(locked), len(ids), apperr.ErrCatalogMismatch)
		}
	}
	return nil
}

// classifyWrite maps a failed insert. A foreign key violation means a
// referenced catalog row disappeared mid-flight.
func classifyWrite(op string, err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrCatalogMismatch, err)
	}
	return database.Classify(op, err)
}
