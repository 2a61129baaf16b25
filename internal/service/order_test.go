package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/catalog"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/enum"
	"github.com/platewise/api/internal/notify"
	"github.com/platewise/api/internal/pricing"
	"github.com/shopspring/decimal"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr   error
	rollbackErr error
	commits     int
	rollbacks   int
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	m.commits++
	return m.commitErr
}
func (m *mockTx) Rollback(ctx context.Context) error {
	m.rollbacks++
	return m.rollbackErr
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	tx    pgx.Tx
	err   error
	calls int
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	m.calls++
	return m.tx, m.err
}

// mockPricingStore implements PricingStore.
type mockPricingStore struct {
	getRestaurantFn func(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	getSettingsFn   func(ctx context.Context, restaurantID uuid.UUID) (database.RestaurantSetting, error)
	listTaxesFn     func(ctx context.Context, restaurantID uuid.UUID) ([]database.RestaurantTax, error)
	listDiscountsFn func(ctx context.Context, restaurantID uuid.UUID) ([]database.Discount, error)
}

func (m *mockPricingStore) GetActiveRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error) {
	return m.getRestaurantFn(ctx, id)
}
func (m *mockPricingStore) GetRestaurantSettings(ctx context.Context, restaurantID uuid.UUID) (database.RestaurantSetting, error) {
	return m.getSettingsFn(ctx, restaurantID)
}
func (m *mockPricingStore) ListActiveRestaurantTaxes(ctx context.Context, restaurantID uuid.UUID) ([]database.RestaurantTax, error) {
	return m.listTaxesFn(ctx, restaurantID)
}
func (m *mockPricingStore) ListActiveDiscounts(ctx context.Context, restaurantID uuid.UUID) ([]database.Discount, error) {
	return m.listDiscountsFn(ctx, restaurantID)
}

// mockCatalog implements CatalogReader.
type mockCatalog struct {
	snapshotFn func(ctx context.Context, restaurantID uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error)
}

func (m *mockCatalog) Snapshot(ctx context.Context, restaurantID uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error) {
	return m.snapshotFn(ctx, restaurantID, reqs)
}

// mockOrderStore implements OrderStore with configurable behavior.
type mockOrderStore struct {
	lockMenuItemsFn   func(ctx context.Context, arg database.LockAvailableMenuItemsParams) ([]uuid.UUID, error)
	lockVariationsFn  func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	lockAddonsFn      func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	createOrderFn     func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	createOrderItemFn func(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	createVariationFn func(ctx context.Context, arg database.CreateOrderItemVariationParams) (database.OrderItemVariation, error)
	createAddonFn     func(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error)
}

func (m *mockOrderStore) LockAvailableMenuItems(ctx context.Context, arg database.LockAvailableMenuItemsParams) ([]uuid.UUID, error) {
	return m.lockMenuItemsFn(ctx, arg)
}
func (m *mockOrderStore) LockAvailableVariations(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return m.lockVariationsFn(ctx, ids)
}
func (m *mockOrderStore) LockAvailableAddons(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return m.lockAddonsFn(ctx, ids)
}
func (m *mockOrderStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	return m.createOrderFn(ctx, arg)
}
func (m *mockOrderStore) CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
	return m.createOrderItemFn(ctx, arg)
}
func (m *mockOrderStore) CreateOrderItemVariation(ctx context.Context, arg database.CreateOrderItemVariationParams) (database.OrderItemVariation, error) {
	return m.createVariationFn(ctx, arg)
}
func (m *mockOrderStore) CreateOrderItemAddon(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error) {
	return m.createAddonFn(ctx, arg)
}

// recordingPublisher collects published events. Safe for use from the
// side-effect goroutines.
type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// --- Test helpers ---

var (
	restaurantID = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	mainsID      = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	burgerID     = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000003")
	largeID      = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000004")
	cheeseID     = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000005")
	friesID      = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000006")
)

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func numericEquals(n pgtype.Numeric, expected string) bool {
	d := database.NumericToDecimal(n)
	exp, _ := decimal.NewFromString(expected)
	return d.Equal(exp)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// burgerLine is a Burger (8.00) with Large (+2.00) and Cheese (1.50).
func burgerLine(qty int32) pricing.Line {
	return pricing.Line{
		MenuItemID:   burgerID,
		MenuItemName: "Burger",
		MenuID:       mainsID,
		MenuName:     "Mains",
		BasePrice:    dec("8.00"),
		Quantity:     qty,
		Variation:    &pricing.VariationSnapshot{ID: largeID, Name: "Large", PriceAdjustment: dec("2.00")},
		Addons:       []pricing.AddonSnapshot{{ID: cheeseID, Name: "Cheese", Price: dec("1.50"), Quantity: 1}},
	}
}

func friesLine(qty int32) pricing.Line {
	return pricing.Line{
		MenuItemID:   friesID,
		MenuItemName: "Fries",
		MenuID:       mainsID,
		MenuName:     "Mains",
		BasePrice:    dec("3.00"),
		Quantity:     qty,
	}
}

func burgerRequest(qty int32) OrderItemRequest {
	return OrderItemRequest{
		MenuItemID:  burgerID.String(),
		VariationID: largeID.String(),
		Quantity:    qty,
		Addons:      []OrderAddonRequest{{AddonID: cheeseID.String(), Quantity: 1}},
	}
}

func defaultPricingStore() *mockPricingStore {
	return &mockPricingStore{
		getRestaurantFn: func(ctx context.Context, id uuid.UUID) (database.Restaurant, error) {
			if id != restaurantID {
				return database.Restaurant{}, pgx.ErrNoRows
			}
			return database.Restaurant{ID: id, Name: "Curry House", Timezone: "UTC", IsActive: true}, nil
		},
		getSettingsFn: func(ctx context.Context, rid uuid.UUID) (database.RestaurantSetting, error) {
			return database.RestaurantSetting{}, pgx.ErrNoRows
		},
		listTaxesFn: func(ctx context.Context, rid uuid.UUID) ([]database.RestaurantTax, error) {
			return nil, nil
		},
		listDiscountsFn: func(ctx context.Context, rid uuid.UUID) ([]database.Discount, error) {
			return nil, nil
		},
	}
}

func catalogOf(lines ...pricing.Line) *mockCatalog {
	return &mockCatalog{
		snapshotFn: func(ctx context.Context, rid uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error) {
			return &catalog.Snapshot{Lines: lines}, nil
		},
	}
}

// defaultOrderStore returns a store where every lock succeeds and every
// insert echoes its params back.
func defaultOrderStore() *mockOrderStore {
	return &mockOrderStore{
		lockMenuItemsFn: func(ctx context.Context, arg database.LockAvailableMenuItemsParams) ([]uuid.UUID, error) {
			return arg.Ids, nil
		},
		lockVariationsFn: func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
		lockAddonsFn: func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
			return ids, nil
		},
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			return database.Order{
				ID:              arg.ID,
				RestaurantID:    arg.RestaurantID,
				OrderNumber:     arg.OrderNumber,
				Status:          enum.OrderStatusNew,
				OrderType:       arg.OrderType,
				Source:          arg.Source,
				Subtotal:        arg.Subtotal,
				DiscountApplied: arg.DiscountApplied,
				TaxAmount:       arg.TaxAmount,
				TaxBreakdown:    arg.TaxBreakdown,
				DeliveryFee:     arg.DeliveryFee,
				Total:           arg.Total,
				CouponCode:      arg.CouponCode,
				DiscountName:    arg.DiscountName,
				CustomerName:    arg.CustomerName,
				CustomerPhone:   arg.CustomerPhone,
			}, nil
		},
		createOrderItemFn: func(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
			return database.OrderItem{
				ID:           uuid.New(),
				OrderID:      arg.OrderID,
				MenuItemID:   arg.MenuItemID,
				MenuItemName: arg.MenuItemName,
				Quantity:     arg.Quantity,
				Price:        arg.Price,
				Notes:        arg.Notes,
			}, nil
		},
		createVariationFn: func(ctx context.Context, arg database.CreateOrderItemVariationParams) (database.OrderItemVariation, error) {
			return database.OrderItemVariation{ID: uuid.New(), OrderItemID: arg.OrderItemID, VariationID: arg.VariationID, VariationName: arg.VariationName, PriceAdjustment: arg.PriceAdjustment}, nil
		},
		createAddonFn: func(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error) {
			return database.OrderItemAddon{ID: uuid.New(), OrderItemID: arg.OrderItemID, AddonID: arg.AddonID, AddonName: arg.AddonName, Price: arg.Price, Quantity: arg.Quantity}, nil
		},
	}
}

type testOrderService struct {
	svc    *OrderService
	tx     *mockTx
	pool   *mockTxBeginner
	events *recordingPublisher
}

func newTestOrderService(prices *mockPricingStore, cat *mockCatalog, store *mockOrderStore) *testOrderService {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	events := &recordingPublisher{}
	newStore := func(db database.DBTX) OrderStore { return store }
	return &testOrderService{
		svc:    NewOrderService(pool, prices, cat, newStore, events, nil),
		tx:     tx,
		pool:   pool,
		events: events,
	}
}

func pgErr(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

// --- PlaceOrder ---

func TestPlaceOrder_Success(t *testing.T) {
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(2)), defaultOrderStore())

	result, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID:  restaurantID,
		OrderType:     enum.OrderTypePickup,
		CustomerName:  "Asha",
		CustomerPhone: "+1 555 0100",
		Items:         []OrderItemRequest{burgerRequest(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts.svc.Wait()

	o := result.Order
	if len(o.OrderNumber) != 8 || o.OrderNumber != strings.ToUpper(o.ID.String()[:8]) {
		t.Errorf("order number %q does not match id %s", o.OrderNumber, o.ID)
	}
	if o.Source != enum.OrderSourceWidget {
		t.Errorf("source = %q, want widget default", o.Source)
	}
	// (8.00 + 2.00 + 1.50) * 2 = 23.00, taxes included, no discount.
	if !numericEquals(o.Subtotal, "23.00") || !numericEquals(o.Total, "23.00") {
		t.Errorf("subtotal/total = %v/%v, want 23.00", database.NumericToDecimal(o.Subtotal), database.NumericToDecimal(o.Total))
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if !numericEquals(item.Item.Price, "11.50") {
		t.Errorf("unit price charged = %v, want 11.50", database.NumericToDecimal(item.Item.Price))
	}
	if item.Variation == nil || item.Variation.VariationName != "Large" {
		t.Errorf("variation snapshot = %+v", item.Variation)
	}
	if len(item.Addons) != 1 || item.Addons[0].AddonName != "Cheese" {
		t.Errorf("addon snapshots = %+v", item.Addons)
	}
	if ts.tx.commits != 1 {
		t.Errorf("commits = %d, want 1", ts.tx.commits)
	}
	if got := ts.events.types(); len(got) != 1 || got[0] != notify.EventOrderCreated {
		t.Errorf("events = %v, want [order.created]", got)
	}
}

func TestPlaceOrder_TotalReconciles(t *testing.T) {
	prices := defaultPricingStore()
	prices.getSettingsFn = func(ctx context.Context, rid uuid.UUID) (database.RestaurantSetting, error) {
		return database.RestaurantSetting{
			PickupEnabled:      true,
			DeliveryEnabled:    true,
			TaxIncludedInPrice: false,
			DeliveryCharge:     makeNumeric("0"),
			MinimumOrderValue:  makeNumeric("0"),
		}, nil
	}
	prices.listTaxesFn = func(ctx context.Context, rid uuid.UUID) ([]database.RestaurantTax, error) {
		return []database.RestaurantTax{{Name: "GST", Rate: makeNumeric("5"), IsActive: true}}, nil
	}
	prices.listDiscountsFn = func(ctx context.Context, rid uuid.UUID) ([]database.Discount, error) {
		return []database.Discount{{
			ID: uuid.New(), Name: "Launch", Type: enum.DiscountTypeCoupon, ValueType: enum.DiscountValuePercentage,
			Value: makeNumeric("10"), CouponCode: pgtype.Text{String: "LAUNCH10", Valid: true}, IsActive: true,
		}}, nil
	}

	var created database.CreateOrderParams
	store := defaultOrderStore()
	echo := store.createOrderFn
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		created = arg
		return echo(ctx, arg)
	}

	ts := newTestOrderService(prices, catalogOf(burgerLine(1), friesLine(1)), store)
	result, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypeDineIn,
		CouponCode:   " launch10 ",
		Items:        []OrderItemRequest{burgerRequest(1), {MenuItemID: friesID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// subtotal 14.50, discount 1.45, after 13.05, GST 0.6525 -> 0.65, total 13.70
	checks := map[string]struct {
		got  pgtype.Numeric
		want string
	}{
		"subtotal": {created.Subtotal, "14.50"},
		"discount": {created.DiscountApplied, "1.45"},
		"tax":      {created.TaxAmount, "0.65"},
		"total":    {created.Total, "13.70"},
	}
	for name, c := range checks {
		if !numericEquals(c.got, c.want) {
			t.Errorf("%s = %v, want %s", name, database.NumericToDecimal(c.got), c.want)
		}
	}
	if created.CouponCode.String != "LAUNCH10" || created.DiscountName.String != "Launch" {
		t.Errorf("coupon/discount name = %q/%q", created.CouponCode.String, created.DiscountName.String)
	}
	if !strings.Contains(string(created.TaxBreakdown), `"name":"GST"`) {
		t.Errorf("tax breakdown = %s", created.TaxBreakdown)
	}

	q := result.Quote
	sum := q.Subtotal.Sub(q.Discount.Amount).Add(q.TaxTotal).Add(q.DeliveryFee)
	if !sum.Equal(q.Total) {
		t.Errorf("total %s does not reconcile with parts %s", q.Total, sum)
	}
}

func TestPlaceOrder_InvalidCouponStoresNothing(t *testing.T) {
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), defaultOrderStore())

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		CouponCode:   "FAKE99",
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrInvalidCoupon) {
		t.Fatalf("expected ErrInvalidCoupon, got %v", err)
	}
	if ts.pool.calls != 0 {
		t.Errorf("no transaction should begin, got %d", ts.pool.calls)
	}
}

func TestPlaceOrder_RestaurantNotFound(t *testing.T) {
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), defaultOrderStore())

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: uuid.New(),
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlaceOrder_CatalogNotFound(t *testing.T) {
	cat := &mockCatalog{snapshotFn: func(ctx context.Context, rid uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error) {
		return nil, errors.Join(errors.New("item[0]: menu item"), apperr.ErrNotFound)
	}}
	ts := newTestOrderService(defaultPricingStore(), cat, defaultOrderStore())

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypeDineIn,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ts.pool.calls != 0 {
		t.Errorf("no transaction should begin, got %d", ts.pool.calls)
	}
}

func TestPlaceOrder_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"no items", PlaceOrderRequest{OrderType: enum.OrderTypePickup}},
		{"bad order type", PlaceOrderRequest{OrderType: "drive-thru", Items: []OrderItemRequest{burgerRequest(1)}}},
		{"bad source", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Source: "kiosk", Items: []OrderItemRequest{burgerRequest(1)}}},
		{"zero quantity", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Items: []OrderItemRequest{burgerRequest(0)}}},
		{"bad menu item id", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Items: []OrderItemRequest{{MenuItemID: "burger", Quantity: 1}}}},
		{"bad variation id", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Items: []OrderItemRequest{{MenuItemID: burgerID.String(), VariationID: "large", Quantity: 1}}}},
		{"bad addon quantity", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Items: []OrderItemRequest{{
			MenuItemID: burgerID.String(), Quantity: 1, Addons: []OrderAddonRequest{{AddonID: cheeseID.String(), Quantity: 0}},
		}}}},
		{"quantity above limit", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Items: []OrderItemRequest{burgerRequest(2147483647)}}},
		{"addon quantity above limit", PlaceOrderRequest{OrderType: enum.OrderTypePickup, Items: []OrderItemRequest{{
			MenuItemID: burgerID.String(), Quantity: 1, Addons: []OrderAddonRequest{{AddonID: cheeseID.String(), Quantity: pricing.MaxQuantity + 1}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), defaultOrderStore())
			tt.req.RestaurantID = restaurantID
			_, err := ts.svc.PlaceOrder(context.Background(), tt.req)
			if !errors.Is(err, apperr.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestPlaceOrder_DeliveryZones(t *testing.T) {
	prices := defaultPricingStore()
	prices.getSettingsFn = func(ctx context.Context, rid uuid.UUID) (database.RestaurantSetting, error) {
		return database.RestaurantSetting{
			PickupEnabled:      true,
			DeliveryEnabled:    true,
			TaxIncludedInPrice: true,
			DeliveryCharge:     makeNumeric("5.00"),
			MinimumOrderValue:  makeNumeric("0"),
			DeliveryZones:      []byte(`[{"name":"Downtown","fee":"3.00","min_order":"10","pin_codes":["10001"]}]`),
		}, nil
	}

	t.Run("matching pin", func(t *testing.T) {
		var created database.CreateOrderParams
		store := defaultOrderStore()
		echo := store.createOrderFn
		store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			created = arg
			return echo(ctx, arg)
		}
		ts := newTestOrderService(prices, catalogOf(burgerLine(1)), store)

		_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
			RestaurantID:    restaurantID,
			OrderType:       enum.OrderTypeDelivery,
			DeliveryAddress: "1 Main St",
			PinCode:         " 10001 ",
			Items:           []OrderItemRequest{burgerRequest(1)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !numericEquals(created.DeliveryFee, "3.00") || !numericEquals(created.Total, "14.50") {
			t.Errorf("fee/total = %v/%v, want 3.00/14.50", database.NumericToDecimal(created.DeliveryFee), database.NumericToDecimal(created.Total))
		}
		if created.DeliveryZone.String != "Downtown" || created.PinCode.String != "10001" {
			t.Errorf("zone/pin = %q/%q", created.DeliveryZone.String, created.PinCode.String)
		}
	})

	t.Run("unmatched pin", func(t *testing.T) {
		ts := newTestOrderService(prices, catalogOf(burgerLine(1)), defaultOrderStore())
		_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
			RestaurantID: restaurantID,
			OrderType:    enum.OrderTypeDelivery,
			PinCode:      "99999",
			Items:        []OrderItemRequest{burgerRequest(1)},
		})
		if !errors.Is(err, apperr.ErrDeliveryIneligible) {
			t.Fatalf("expected ErrDeliveryIneligible, got %v", err)
		}
	})

	t.Run("below zone minimum", func(t *testing.T) {
		ts := newTestOrderService(prices, catalogOf(friesLine(1)), defaultOrderStore())
		_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
			RestaurantID: restaurantID,
			OrderType:    enum.OrderTypeDelivery,
			PinCode:      "10001",
			Items:        []OrderItemRequest{{MenuItemID: friesID.String(), Quantity: 1}},
		})
		if !errors.Is(err, apperr.ErrBelowMinimumOrder) {
			t.Fatalf("expected ErrBelowMinimumOrder, got %v", err)
		}
	})
}

func TestPlaceOrder_CorruptZonesIsInternal(t *testing.T) {
	prices := defaultPricingStore()
	prices.getSettingsFn = func(ctx context.Context, rid uuid.UUID) (database.RestaurantSetting, error) {
		return database.RestaurantSetting{DeliveryEnabled: true, DeliveryZones: []byte(`{not json`)}, nil
	}
	ts := newTestOrderService(prices, catalogOf(burgerLine(1)), defaultOrderStore())

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypeDineIn,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if err == nil || apperr.KindOf(err) != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestPlaceOrder_CatalogChangedBeforeLock(t *testing.T) {
	store := defaultOrderStore()
	store.lockAddonsFn = func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
		return nil, nil // cheese was switched off
	}
	created := false
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		created = true
		return database.Order{}, nil
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), store)

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrCatalogMismatch) {
		t.Fatalf("expected ErrCatalogMismatch, got %v", err)
	}
	if created {
		t.Error("order header must not be inserted")
	}
	if ts.tx.commits != 0 || ts.tx.rollbacks == 0 {
		t.Errorf("commits/rollbacks = %d/%d, want 0/>0", ts.tx.commits, ts.tx.rollbacks)
	}
}

func TestPlaceOrder_ItemInsertFailureRollsBack(t *testing.T) {
	store := defaultOrderStore()
	calls := 0
	echo := store.createOrderItemFn
	store.createOrderItemFn = func(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
		calls++
		if calls == 2 {
			return database.OrderItem{}, pgErr("57P01", "")
		}
		return echo(ctx, arg)
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1), friesLine(1)), store)

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1), {MenuItemID: friesID.String(), Quantity: 1}},
	})
	if !errors.Is(err, apperr.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if ts.tx.commits != 0 {
		t.Error("transaction must not commit")
	}
	if ts.tx.rollbacks == 0 {
		t.Error("transaction must roll back")
	}
	ts.svc.Wait()
	if got := ts.events.types(); len(got) != 0 {
		t.Errorf("no event expected for a failed order, got %v", got)
	}
}

func TestPlaceOrder_ForeignKeyViolationIsCatalogMismatch(t *testing.T) {
	store := defaultOrderStore()
	store.createAddonFn = func(ctx context.Context, arg database.CreateOrderItemAddonParams) (database.OrderItemAddon, error) {
		return database.OrderItemAddon{}, pgErr("23503", "order_item_addons_addon_id_fkey")
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), store)

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrCatalogMismatch) {
		t.Fatalf("expected ErrCatalogMismatch, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindCatalogMismatch {
		t.Errorf("kind = %s", apperr.KindOf(err))
	}
}

func TestPlaceOrder_DataExceptionIsNotRetryable(t *testing.T) {
	store := defaultOrderStore()
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		return database.Order{}, pgErr("22003", "")
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), store)

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if apperr.KindOf(err) != apperr.KindConstraintViolation {
		t.Fatalf("kind = %s, want %s (err: %v)", apperr.KindOf(err), apperr.KindConstraintViolation, err)
	}
	if errors.Is(err, apperr.ErrStorageUnavailable) {
		t.Error("a numeric overflow must not be reported as retryable")
	}
	if ts.tx.commits != 0 {
		t.Error("transaction must not commit")
	}
}

func TestQuote_RejectsOversizedCart(t *testing.T) {
	reads := 0
	cat := &mockCatalog{snapshotFn: func(ctx context.Context, restaurantID uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error) {
		reads++
		return &catalog.Snapshot{Lines: []pricing.Line{burgerLine(pricing.MaxQuantity + 1)}}, nil
	}}
	ts := newTestOrderService(defaultPricingStore(), cat, defaultOrderStore())

	_, err := ts.svc.Quote(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypeDineIn,
		Items:        []OrderItemRequest{burgerRequest(pricing.MaxQuantity + 1)},
	})
	if !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if reads != 0 {
		t.Error("catalog must not be read for a rejected cart")
	}
}

func TestPlaceOrder_RetriesOrderNumberCollision(t *testing.T) {
	store := defaultOrderStore()
	attempts := 0
	echo := store.createOrderFn
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		attempts++
		if attempts == 1 {
			return database.Order{}, pgErr("23505", "orders_restaurant_id_order_number_key")
		}
		return echo(ctx, arg)
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), store)

	if _, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 || ts.pool.calls != 2 {
		t.Errorf("attempts/transactions = %d/%d, want 2/2", attempts, ts.pool.calls)
	}
}

func TestPlaceOrder_GivesUpAfterMaxRetries(t *testing.T) {
	store := defaultOrderStore()
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		return database.Order{}, pgErr("23505", "orders_restaurant_id_order_number_key")
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), store)

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
	if ts.pool.calls != maxOrderNumberRetries {
		t.Errorf("transactions = %d, want %d", ts.pool.calls, maxOrderNumberRetries)
	}
}

func TestPlaceOrder_BeginFailure(t *testing.T) {
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), defaultOrderStore())
	ts.pool.err = errors.New("dial tcp: connection refused")

	_, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	})
	if !errors.Is(err, apperr.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPlaceOrder_SurvivesCallerCancellationAfterBegin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	store := defaultOrderStore()
	lock := store.lockMenuItemsFn
	store.lockMenuItemsFn = func(c context.Context, arg database.LockAvailableMenuItemsParams) ([]uuid.UUID, error) {
		cancel() // client hangs up mid-transaction
		return lock(c, arg)
	}
	echo := store.createOrderItemFn
	store.createOrderItemFn = func(c context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
		if err := c.Err(); err != nil {
			return database.OrderItem{}, err
		}
		return echo(c, arg)
	}
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), store)

	if _, err := ts.svc.PlaceOrder(ctx, PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.tx.commits != 1 {
		t.Errorf("commits = %d, want 1", ts.tx.commits)
	}
}

func TestPlaceOrder_EventFailureDoesNotFailOrder(t *testing.T) {
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(1)), defaultOrderStore())
	ts.events.err = errors.New("kafka down")

	if _, err := ts.svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypePickup,
		Items:        []OrderItemRequest{burgerRequest(1)},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts.svc.Wait()
}

// --- Quote ---

func TestQuote_DoesNotPersist(t *testing.T) {
	ts := newTestOrderService(defaultPricingStore(), catalogOf(burgerLine(2)), defaultOrderStore())

	q, err := ts.svc.Quote(context.Background(), PlaceOrderRequest{
		RestaurantID: restaurantID,
		OrderType:    enum.OrderTypeDineIn,
		Items:        []OrderItemRequest{burgerRequest(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Total.StringFixed(2) != "23.00" {
		t.Errorf("total = %s, want 23.00", q.Total.StringFixed(2))
	}
	if ts.pool.calls != 0 {
		t.Errorf("quote must not open a transaction")
	}
}

func TestQuote_ReadsCatalogEveryTime(t *testing.T) {
	price := "8.00"
	cat := &mockCatalog{snapshotFn: func(ctx context.Context, rid uuid.UUID, reqs []catalog.Request) (*catalog.Snapshot, error) {
		l := friesLine(1)
		l.BasePrice = dec(price)
		return &catalog.Snapshot{Lines: []pricing.Line{l}}, nil
	}}
	ts := newTestOrderService(defaultPricingStore(), cat, defaultOrderStore())
	req := PlaceOrderRequest{RestaurantID: restaurantID, OrderType: enum.OrderTypeDineIn, Items: []OrderItemRequest{{MenuItemID: friesID.String(), Quantity: 1}}}

	first, err := ts.svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	price = "9.00"
	second, err := ts.svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Total.Equal(second.Total) {
		t.Errorf("second quote should see the new price, both were %s", first.Total)
	}
}

func TestOrderNumber(t *testing.T) {
	id := uuid.MustParse("1a2b3c4d-5e6f-4000-8000-000000000000")
	if got := orderNumber(id); got != "1A2B3C4D" {
		t.Errorf("orderNumber = %q, want 1A2B3C4D", got)
	}
}
