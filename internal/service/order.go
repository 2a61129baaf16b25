package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/catalog"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/enum"
	"github.com/platewise/api/internal/notify"
	"github.com/platewise/api/internal/pricing"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PricingStore defines the restaurant reads needed to price an order.
// Satisfied by *database.Queries.
type PricingStore interface {
	GetActiveRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	GetRestaurantSettings(ctx context.Context, restaurantID uuid.UUID) (database.RestaurantSetting, error)
	ListActiveRestaurantTaxes(ctx context.Context, restaurantID uuid.UUID) ([]database.RestaurantTax, error)
	ListActiveDiscounts(ctx context.Context, restaurantID uuid.UUID) ([]database.Discount, error)
}

// CatalogReader prices cart lines from the live menu.
// Satisfied by *catalog.Reader.
type CatalogReader interface {
	Snapshot(ctx context.Context, restaurantID uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error)
}

// PlaceOrderRequest is the customer's cart as submitted. It carries no
// prices; every amount is read from the catalog.
type PlaceOrderRequest struct {
	RestaurantID    uuid.UUID
	OrderType       string
	Source          string
	CouponCode      string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	PinCode         string
	Notes           string
	Items           []OrderItemRequest
}

// OrderItemRequest is a single cart line.
type OrderItemRequest struct {
	MenuItemID  string
	VariationID string
	Quantity    int32
	Notes       string
	Addons      []OrderAddonRequest
}

// OrderAddonRequest is an add-on chosen for a cart line.
type OrderAddonRequest struct {
	AddonID  string
	Quantity int32
}

// PlaceOrderResult is the committed order with the receipt it was priced at.
type PlaceOrderResult struct {
	Order database.Order
	Quote *pricing.Quote
	Items []OrderItemResult
}

// OrderItemResult is a stored line with its option snapshots.
type OrderItemResult struct {
	Item      database.OrderItem
	Variation *database.OrderItemVariation
	Addons    []database.OrderItemAddon
}

// OrderService prices and places customer orders.
type OrderService struct {
	pool     TxBeginner
	store    PricingStore
	catalog  CatalogReader
	newStore NewOrderStore
	events   notify.Publisher
	logger   *slog.Logger
	effects  *sideEffects
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(pool TxBeginner, store PricingStore, catalog CatalogReader, newStore NewOrderStore, events notify.Publisher, logger *slog.Logger) *OrderService {
	if events == nil {
		events = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		pool:     pool,
		store:    store,
		catalog:  catalog,
		newStore: newStore,
		events:   events,
		logger:   logger,
		effects:  newSideEffects(logger),
	}
}

// Wait blocks until in-flight event publishing has finished.
func (s *OrderService) Wait() {
	s.effects.Wait()
}

// parsedOrder is a PlaceOrderRequest with its ids parsed.
type parsedOrder struct {
	PlaceOrderRequest
	lines []catalog.Request
}

// Quote prices the cart without storing anything. The returned quote is
// rounded to cents exactly as PlaceOrder would store it.
func (s *OrderService) Quote(ctx context.Context, req PlaceOrderRequest) (*pricing.Quote, error) {
	p, err := parseOrderRequest(req)
	if err != nil {
		return nil, err
	}
	q, err := s.price(ctx, p)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// PlaceOrder prices the cart from the live catalog and stores the order with
// its items in one transaction. On any failure nothing is stored.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	p, err := parseOrderRequest(req)
	if err != nil {
		return nil, err
	}

	q, err := s.price(ctx, p)
	if err != nil {
		return nil, err
	}

	result, err := s.persist(ctx, p, q)
	if err != nil {
		return nil, err
	}

	s.logFor(ctx).Info("order placed",
		"restaurant_id", result.Order.RestaurantID,
		"order_id", result.Order.ID,
		"order_number", result.Order.OrderNumber,
		"total", q.Total.StringFixed(2),
	)

	ev := notify.Event{
		Type:         notify.EventOrderCreated,
		RestaurantID: result.Order.RestaurantID,
		EntityID:     result.Order.ID,
		Data:         orderEventData(result.Order),
		OccurredAt:   time.Now().UTC(),
	}
	s.effects.run(ctx, "publish order.created", func(ctx context.Context) error {
		return s.events.Publish(ctx, ev)
	})

	return result, nil
}

// price loads the restaurant's pricing configuration and the catalog
// snapshot, then builds the rounded quote.
func (s *OrderService) price(ctx context.Context, p *parsedOrder) (*pricing.Quote, error) {
	in, err := loadPricingInput(ctx, s.store, p.RestaurantID)
	if err != nil {
		return nil, err
	}

	snap, err := s.catalog.Snapshot(ctx, p.RestaurantID, p.lines)
	if err != nil {
		return nil, err
	}

	q, err := pricing.BuildQuote(pricing.QuoteInput{
		OrderType:  p.OrderType,
		Lines:      snap.Lines,
		CouponCode: p.CouponCode,
		PinCode:    p.PinCode,
		Discounts:  in.discounts,
		Taxes:      in.taxes,
		Settings:   in.settings,
	})
	if err != nil {
		return nil, err
	}
	return q.Rounded(), nil
}

// pricingInput is the restaurant configuration read once per request.
type pricingInput struct {
	restaurant database.Restaurant
	settings   pricing.Settings
	discounts  []pricing.Discount
	taxes      []pricing.Tax
}

func loadPricingInput(ctx context.Context, store PricingStore, restaurantID uuid.UUID) (*pricingInput, error) {
	restaurant, err := store.GetActiveRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("restaurant %s: %w", restaurantID, apperr.ErrNotFound)
		}
		return nil, database.Classify("get restaurant", err)
	}

	in := &pricingInput{restaurant: restaurant, settings: pricing.DefaultSettings()}

	row, err := store.GetRestaurantSettings(ctx, restaurantID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// No settings row yet: the defaults apply.
	case err != nil:
		return nil, database.Classify("get restaurant settings", err)
	default:
		in.settings, err = settingsFromRow(row)
		if err != nil {
			return nil, err
		}
	}

	taxes, err := store.ListActiveRestaurantTaxes(ctx, restaurantID)
	if err != nil {
		return nil, database.Classify("list restaurant taxes", err)
	}
	for _, t := range taxes {
		in.taxes = append(in.taxes, pricing.Tax{
			Name:      t.Name,
			Rate:      database.NumericToDecimal(t.Rate),
			Active:    t.IsActive,
			SortOrder: t.SortOrder,
		})
	}

	discounts, err := store.ListActiveDiscounts(ctx, restaurantID)
	if err != nil {
		return nil, database.Classify("list discounts", err)
	}
	for _, d := range discounts {
		in.discounts = append(in.discounts, pricing.Discount{
			ID:         d.ID,
			Name:       d.Name,
			Type:       d.Type,
			ValueType:  d.ValueType,
			Value:      database.NumericToDecimal(d.Value),
			CouponCode: d.CouponCode.String,
			Active:     d.IsActive,
		})
	}

	return in, nil
}

func settingsFromRow(row database.RestaurantSetting) (pricing.Settings, error) {
	s := pricing.Settings{
		PickupEnabled:      row.PickupEnabled,
		DeliveryEnabled:    row.DeliveryEnabled,
		TaxIncludedInPrice: row.TaxIncludedInPrice,
		DeliveryCharge:     database.NumericToDecimal(row.DeliveryCharge),
		MinimumOrderValue:  database.NumericToDecimal(row.MinimumOrderValue),
	}
	if len(row.DeliveryZones) > 0 {
		if err := json.Unmarshal(row.DeliveryZones, &s.Zones); err != nil {
			return pricing.Settings{}, fmt.Errorf("decode delivery zones: %w", err)
		}
	}
	return s, nil
}

func parseOrderRequest(req PlaceOrderRequest) (*parsedOrder, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("items are required: %w", apperr.ErrInvalidRequest)
	}
	if !isValidOrderType(req.OrderType) {
		return nil, fmt.Errorf("order_type %q: %w", req.OrderType, apperr.ErrInvalidRequest)
	}
	if req.Source == "" {
		req.Source = enum.OrderSourceWidget
	}
	if !isValidSource(req.Source) {
		return nil, fmt.Errorf("source %q: %w", req.Source, apperr.ErrInvalidRequest)
	}

	p := &parsedOrder{PlaceOrderRequest: req, lines: make([]catalog.Request, len(req.Items))}
	for i, item := range req.Items {
		if item.Quantity <= 0 || item.Quantity > pricing.MaxQuantity {
			return nil, fmt.Errorf("item[%d]: quantity must be between 1 and %d: %w", i, pricing.MaxQuantity, apperr.ErrInvalidRequest)
		}
		menuItemID, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: invalid menu_item_id: %w", i, apperr.ErrInvalidRequest)
		}
		line := catalog.Request{MenuItemID: menuItemID, Quantity: item.Quantity}

		if item.VariationID != "" {
			vid, err := uuid.Parse(item.VariationID)
			if err != nil {
				return nil, fmt.Errorf("item[%d]: invalid variation_id: %w", i, apperr.ErrInvalidRequest)
			}
			line.VariationID = uuid.NullUUID{UUID: vid, Valid: true}
		}

		for j, a := range item.Addons {
			if a.Quantity <= 0 || a.Quantity > pricing.MaxQuantity {
				return nil, fmt.Errorf("item[%d].addons[%d]: quantity must be between 1 and %d: %w", i, j, pricing.MaxQuantity, apperr.ErrInvalidRequest)
			}
			aid, err := uuid.Parse(a.AddonID)
			if err != nil {
				return nil, fmt.Errorf("item[%d].addons[%d]: invalid addon_id: %w", i, j, apperr.ErrInvalidRequest)
			}
			line.Addons = append(line.Addons, catalog.AddonRequest{AddonID: aid, Quantity: a.Quantity})
		}
		p.lines[i] = line
	}
	return p, nil
}

func isValidOrderType(t string) bool {
	switch t {
	case enum.OrderTypeDineIn, enum.OrderTypePickup, enum.OrderTypeDelivery:
		return true
	}
	return false
}

func isValidSource(s string) bool {
	switch s {
	case enum.OrderSourceWidget, enum.OrderSourcePage, enum.OrderSourcePOS:
		return true
	}
	return false
}

// orderEventData is the payload POS boards and stream consumers receive.
func orderEventData(o database.Order) map[string]any {
	data := map[string]any{
		"id":           o.ID,
		"order_number": o.OrderNumber,
		"status":       o.Status,
		"order_type":   o.OrderType,
		"source":       o.Source,
		"total":        database.NumericToDecimal(o.Total).StringFixed(2),
	}
	if o.CustomerName.Valid {
		data["customer_name"] = o.CustomerName.String
	}
	if o.EstimatedReadyAt.Valid {
		data["estimated_ready_at"] = o.EstimatedReadyAt.Time.UTC()
	}
	return data
}

func textOrNull(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
