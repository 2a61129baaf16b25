package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/enum"
	"github.com/platewise/api/internal/idempotency"
	"github.com/platewise/api/internal/pricing"
	"github.com/platewise/api/internal/service"
)

const maxIdempotencyKeyLen = 255

// OrderPlacer defines the service methods needed to price and place orders.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error)
	Quote(ctx context.Context, req service.PlaceOrderRequest) (*pricing.Quote, error)
}

// OrderAdvancer moves an order through its lifecycle.
// Satisfied by *service.LifecycleService.
type OrderAdvancer interface {
	AdvanceOrderStatus(ctx context.Context, req service.AdvanceOrderRequest) (database.Order, error)
}

// OrderReader defines the database methods needed by order read handlers.
// Satisfied by *database.Queries.
type OrderReader interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListOrderItemVariationsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItemVariation, error)
	ListOrderItemAddonsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItemAddon, error)
}

// IdempotencyGuard deduplicates order submissions by Idempotency-Key.
// Satisfied by *idempotency.Guard.
type IdempotencyGuard interface {
	Claim(ctx context.Context, restaurantID uuid.UUID, key string) (uuid.UUID, error)
	Complete(ctx context.Context, restaurantID uuid.UUID, key string, orderID uuid.UUID) error
	Release(ctx context.Context, restaurantID uuid.UUID, key string) error
}

// ReceiptQR renders the tracking QR code of an order.
// Satisfied by *receipt.QRGenerator.
type ReceiptQR interface {
	TrackingURL(orderID uuid.UUID) string
	Generate(orderID uuid.UUID) ([]byte, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc       OrderPlacer
	lifecycle OrderAdvancer
	store     OrderReader
	qr        ReceiptQR
	guard     IdempotencyGuard
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderPlacer, lifecycle OrderAdvancer, store OrderReader, qr ReceiptQR) *OrderHandler {
	return &OrderHandler{svc: svc, lifecycle: lifecycle, store: store, qr: qr}
}

// WithIdempotency enables Idempotency-Key handling on order placement.
func (h *OrderHandler) WithIdempotency(guard IdempotencyGuard) *OrderHandler {
	h.guard = guard
	return h
}

// RegisterPublicRoutes registers the unauthenticated ordering endpoints.
// Expected to be mounted at /public.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/restaurants/{rid}/orders", h.Place)
	r.Post("/restaurants/{rid}/orders/quote", h.Quote)
	r.Get("/orders/{id}/qr.png", h.QRCode)
}

// RegisterRoutes registers staff order endpoints.
// Expected to be mounted inside a restaurant-scoped subrouter: /restaurants/{rid}/orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type placeOrderRequest struct {
	OrderType       string                  `json:"order_type"`
	Source          string                  `json:"source"`
	CouponCode      string                  `json:"coupon_code"`
	CustomerName    string                  `json:"customer_name"`
	CustomerPhone   string                  `json:"customer_phone"`
	DeliveryAddress string                  `json:"delivery_address"`
	PinCode         string                  `json:"pin_code"`
	Notes           string                  `json:"notes"`
	Items           []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	MenuItemID  string                   `json:"menu_item_id"`
	VariationID string                   `json:"variation_id"`
	Quantity    int32                    `json:"quantity"`
	Notes       string                   `json:"notes"`
	Addons      []placeOrderAddonRequest `json:"addons"`
}

type placeOrderAddonRequest struct {
	AddonID  string `json:"addon_id"`
	Quantity int32  `json:"quantity"`
}

func (req placeOrderRequest) toService(restaurantID uuid.UUID) service.PlaceOrderRequest {
	items := make([]service.OrderItemRequest, len(req.Items))
	for i, item := range req.Items {
		addons := make([]service.OrderAddonRequest, len(item.Addons))
		for j, a := range item.Addons {
			qty := a.Quantity
			if qty == 0 {
				qty = 1
			}
			addons[j] = service.OrderAddonRequest{AddonID: a.AddonID, Quantity: qty}
		}
		items[i] = service.OrderItemRequest{
			MenuItemID:  item.MenuItemID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			Notes:       item.Notes,
			Addons:      addons,
		}
	}
	return service.PlaceOrderRequest{
		RestaurantID:    restaurantID,
		OrderType:       req.OrderType,
		Source:          req.Source,
		CouponCode:      req.CouponCode,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		PinCode:         req.PinCode,
		Notes:           req.Notes,
		Items:           items,
	}
}

type taxLineResponse struct {
	Name   string `json:"name"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

type quoteLineResponse struct {
	MenuItemID  uuid.UUID  `json:"menu_item_id"`
	Name        string     `json:"name"`
	VariationID *uuid.UUID `json:"variation_id"`
	Variation   *string    `json:"variation"`
	Quantity    int32      `json:"quantity"`
	UnitPrice   string     `json:"unit_price"`
	LineTotal   string     `json:"line_total"`
	AddonNames  []string   `json:"addons"`
	MenuTaxRate string     `json:"menu_tax_rate"`
	Menu        string     `json:"menu"`
}

type quoteResponse struct {
	OrderType    string              `json:"order_type"`
	Lines        []quoteLineResponse `json:"lines"`
	Subtotal     string              `json:"subtotal"`
	Discount     string              `json:"discount"`
	DiscountName *string             `json:"discount_name"`
	CouponCode   *string             `json:"coupon_code"`
	Taxes        []taxLineResponse   `json:"taxes"`
	TaxTotal     string              `json:"tax_total"`
	DeliveryFee  string              `json:"delivery_fee"`
	DeliveryZone *string             `json:"delivery_zone"`
	Total        string              `json:"total"`
}

type placeOrderResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TrackingURL string    `json:"tracking_url"`
	quoteResponse
}

type duplicateResponse struct {
	errorResponse
	OrderID uuid.UUID `json:"order_id"`
}

type orderResponse struct {
	ID               uuid.UUID           `json:"id"`
	RestaurantID     uuid.UUID           `json:"restaurant_id"`
	OrderNumber      string              `json:"order_number"`
	Status           string              `json:"status"`
	OrderType        string              `json:"order_type"`
	Source           string              `json:"source"`
	Subtotal         string              `json:"subtotal"`
	DiscountApplied  string              `json:"discount_applied"`
	DiscountName     *string             `json:"discount_name"`
	CouponCode       *string             `json:"coupon_code"`
	TaxAmount        string              `json:"tax_amount"`
	TaxBreakdown     json.RawMessage     `json:"tax_breakdown"`
	DeliveryFee      string              `json:"delivery_fee"`
	DeliveryZone     *string             `json:"delivery_zone"`
	Total            string              `json:"total"`
	CustomerName     *string             `json:"customer_name"`
	CustomerPhone    *string             `json:"customer_phone"`
	DeliveryAddress  *string             `json:"delivery_address"`
	PinCode          *string             `json:"pin_code"`
	Notes            *string             `json:"notes"`
	EstimatedReadyAt *time.Time          `json:"estimated_ready_at"`
	CustomerNotified bool                `json:"customer_notified"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Items            []orderItemResponse `json:"items,omitempty"`
}

type orderItemResponse struct {
	ID           uuid.UUID                `json:"id"`
	MenuItemID   uuid.UUID                `json:"menu_item_id"`
	MenuItemName string                   `json:"menu_item_name"`
	Quantity     int32                    `json:"quantity"`
	Price        string                   `json:"price"`
	Notes        *string                  `json:"notes"`
	Variation    *orderVariationResponse  `json:"variation"`
	Addons       []orderItemAddonResponse `json:"addons"`
}

type orderVariationResponse struct {
	VariationID     uuid.UUID `json:"variation_id"`
	Name            string    `json:"name"`
	PriceAdjustment string    `json:"price_adjustment"`
}

type orderItemAddonResponse struct {
	AddonID  uuid.UUID `json:"addon_id"`
	Name     string    `json:"name"`
	Price    string    `json:"price"`
	Quantity int32     `json:"quantity"`
}

// orderListResponse wraps a list of orders with pagination metadata.
type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type updateStatusRequest struct {
	Status           string `json:"status"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type orderStatusResponse struct {
	ID               uuid.UUID  `json:"id"`
	OrderNumber      string     `json:"order_number"`
	Status           string     `json:"status"`
	EstimatedReadyAt *time.Time `json:"estimated_ready_at"`
}

// --- Public handlers ---

// Place handles POST /public/restaurants/{rid}/orders.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if len(key) > maxIdempotencyKeyLen {
		badRequest(w, "Idempotency-Key is too long")
		return
	}
	claimed, done := h.claim(w, r, restaurantID, key)
	if done {
		return
	}

	result, err := h.svc.PlaceOrder(r.Context(), req.toService(restaurantID))
	if err != nil {
		if claimed {
			h.release(r, restaurantID, key)
		}
		writeError(w, r, err)
		return
	}
	if claimed {
		if err := h.guard.Complete(context.WithoutCancel(r.Context()), restaurantID, key, result.Order.ID); err != nil {
			requestLogger(r).Warn("idempotency complete failed", "order_id", result.Order.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:       result.Order.ID,
		OrderNumber:   result.Order.OrderNumber,
		Status:        result.Order.Status,
		TrackingURL:   h.qr.TrackingURL(result.Order.ID),
		quoteResponse: toQuoteResponse(result.Quote),
	})
}

// claim reserves the Idempotency-Key, if any. done reports that a response
// has already been written. Redis trouble never blocks ordering: the guard
// fails open and the order is placed without deduplication.
func (h *OrderHandler) claim(w http.ResponseWriter, r *http.Request, restaurantID uuid.UUID, key string) (claimed, done bool) {
	if h.guard == nil || key == "" {
		return false, false
	}

	existing, err := h.guard.Claim(r.Context(), restaurantID, key)
	switch {
	case errors.Is(err, idempotency.ErrInFlight):
		writeError(w, r, fmt.Errorf("order with this Idempotency-Key is still being placed: %w", apperr.ErrDuplicateSubmission))
		return false, true
	case err != nil:
		requestLogger(r).Warn("idempotency guard unavailable", "error", err)
		return false, false
	case existing != uuid.Nil:
		writeJSON(w, http.StatusConflict, duplicateResponse{
			errorResponse: errorResponse{
				ErrorKind: apperr.KindDuplicateSubmission,
				Error:     "order already placed with this Idempotency-Key",
			},
			OrderID: existing,
		})
		return false, true
	}
	return true, false
}

func (h *OrderHandler) release(r *http.Request, restaurantID uuid.UUID, key string) {
	if err := h.guard.Release(context.WithoutCancel(r.Context()), restaurantID, key); err != nil {
		requestLogger(r).Warn("idempotency release failed", "error", err)
	}
}

// Quote handles POST /public/restaurants/{rid}/orders/quote.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	q, err := h.svc.Quote(r.Context(), req.toService(restaurantID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponse(q))
}

// QRCode handles GET /public/orders/{id}/qr.png.
func (h *OrderHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid order ID")
		return
	}

	if _, err := h.store.GetOrderByID(r.Context(), orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, r, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound))
			return
		}
		writeError(w, r, database.Classify("get order", err))
		return
	}

	png, err := h.qr.Generate(orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png) //nolint:errcheck
}

// --- Staff handlers ---

// List handles GET /restaurants/{rid}/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}

	limit, offset := parsePagination(r)
	params := database.ListOrdersParams{
		RestaurantID: restaurantID,
		Limit:        int32(limit),
		Offset:       int32(offset),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !isValidOrderStatus(s) {
			badRequest(w, "invalid status filter")
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		writeError(w, r, database.Classify("list orders", err))
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp, Limit: limit, Offset: offset})
}

// Get handles GET /restaurants/{rid}/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid order ID")
		return
	}

	order, err := h.store.GetOrder(r.Context(), database.GetOrderParams{ID: orderID, RestaurantID: restaurantID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, r, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound))
			return
		}
		writeError(w, r, database.Classify("get order", err))
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, database.Classify("list order items", err))
		return
	}
	variations, err := h.store.ListOrderItemVariationsByOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, database.Classify("list order item variations", err))
		return
	}
	addons, err := h.store.ListOrderItemAddonsByOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, database.Classify("list order item add-ons", err))
		return
	}

	resp := toOrderResponse(order)
	resp.Items = toOrderItemResponses(items, variations, addons)
	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /restaurants/{rid}/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Status == "" {
		badRequest(w, "status is required")
		return
	}

	updated, err := h.lifecycle.AdvanceOrderStatus(r.Context(), service.AdvanceOrderRequest{
		RestaurantID:     restaurantID,
		OrderID:          orderID,
		Status:           req.Status,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderStatusResponse{
		ID:               updated.ID,
		OrderNumber:      updated.OrderNumber,
		Status:           updated.Status,
		EstimatedReadyAt: timestamptzPtr(updated.EstimatedReadyAt),
	})
}

// --- Helpers ---

func requestLogger(r *http.Request) *slog.Logger {
	return slog.Default().With("request_id", middleware.GetReqID(r.Context()))
}

// parsePagination reads limit (default 20, max 100) and offset.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

func isValidOrderStatus(s string) bool {
	switch s {
	case enum.OrderStatusNew, enum.OrderStatusAccepted, enum.OrderStatusReady, enum.OrderStatusCompleted:
		return true
	}
	return false
}

func toQuoteResponse(q *pricing.Quote) quoteResponse {
	resp := quoteResponse{
		OrderType:   q.OrderType,
		Lines:       make([]quoteLineResponse, len(q.Lines)),
		Subtotal:    q.Subtotal.StringFixed(2),
		Discount:    q.Discount.Amount.StringFixed(2),
		Taxes:       make([]taxLineResponse, len(q.Taxes)),
		TaxTotal:    q.TaxTotal.StringFixed(2),
		DeliveryFee: q.DeliveryFee.StringFixed(2),
		Total:       q.Total.StringFixed(2),
	}
	if q.Discount.Discount != nil {
		resp.DiscountName = &q.Discount.Discount.Name
	}
	if q.CouponCode != "" {
		resp.CouponCode = &q.CouponCode
	}
	if q.Zone != nil {
		resp.DeliveryZone = &q.Zone.Name
	}
	for i, t := range q.Taxes {
		resp.Taxes[i] = taxLineResponse{Name: t.Name, Rate: t.Rate.String(), Amount: t.Amount.StringFixed(2)}
	}
	for i, l := range q.Lines {
		line := quoteLineResponse{
			MenuItemID:  l.MenuItemID,
			Name:        l.MenuItemName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice().StringFixed(2),
			LineTotal:   l.Total().StringFixed(2),
			AddonNames:  make([]string, len(l.Addons)),
			MenuTaxRate: l.MenuTaxRate.String(),
			Menu:        l.MenuName,
		}
		if l.Variation != nil {
			line.VariationID = &l.Variation.ID
			line.Variation = &l.Variation.Name
		}
		for j, a := range l.Addons {
			line.AddonNames[j] = a.Name
		}
		resp.Lines[i] = line
	}
	return resp
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:               o.ID,
		RestaurantID:     o.RestaurantID,
		OrderNumber:      o.OrderNumber,
		Status:           o.Status,
		OrderType:        o.OrderType,
		Source:           o.Source,
		Subtotal:         numericToString(o.Subtotal),
		DiscountApplied:  numericToString(o.DiscountApplied),
		DiscountName:     textPtr(o.DiscountName),
		CouponCode:       textPtr(o.CouponCode),
		TaxAmount:        numericToString(o.TaxAmount),
		TaxBreakdown:     json.RawMessage("[]"),
		DeliveryFee:      numericToString(o.DeliveryFee),
		DeliveryZone:     textPtr(o.DeliveryZone),
		Total:            numericToString(o.Total),
		CustomerName:     textPtr(o.CustomerName),
		CustomerPhone:    textPtr(o.CustomerPhone),
		DeliveryAddress:  textPtr(o.DeliveryAddress),
		PinCode:          textPtr(o.PinCode),
		Notes:            textPtr(o.Notes),
		EstimatedReadyAt: timestamptzPtr(o.EstimatedReadyAt),
		CustomerNotified: o.CustomerNotified,
		CreatedAt:        o.CreatedAt.Time,
		UpdatedAt:        o.UpdatedAt.Time,
	}
	if len(o.TaxBreakdown) > 0 && json.Valid(o.TaxBreakdown) {
		resp.TaxBreakdown = o.TaxBreakdown
	}
	return resp
}

// toOrderItemResponses joins items with their variation and add-on
// snapshots, preserving item order.
func toOrderItemResponses(items []database.OrderItem, variations []database.OrderItemVariation, addons []database.OrderItemAddon) []orderItemResponse {
	byItemVariation := make(map[uuid.UUID]database.OrderItemVariation, len(variations))
	for _, v := range variations {
		byItemVariation[v.OrderItemID] = v
	}
	byItemAddons := make(map[uuid.UUID][]database.OrderItemAddon)
	for _, a := range addons {
		byItemAddons[a.OrderItemID] = append(byItemAddons[a.OrderItemID], a)
	}

	resp := make([]orderItemResponse, len(items))
	for i, item := range items {
		ir := orderItemResponse{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Price:        numericToString(item.Price),
			Notes:        textPtr(item.Notes),
			Addons:       []orderItemAddonResponse{},
		}
		if v, ok := byItemVariation[item.ID]; ok {
			ir.Variation = &orderVariationResponse{
				VariationID:     v.VariationID,
				Name:            v.VariationName,
				PriceAdjustment: numericToString(v.PriceAdjustment),
			}
		}
		for _, a := range byItemAddons[item.ID] {
			ir.Addons = append(ir.Addons, orderItemAddonResponse{
				AddonID:  a.AddonID,
				Name:     a.AddonName,
				Price:    numericToString(a.Price),
				Quantity: a.Quantity,
			})
		}
		resp[i] = ir
	}
	return resp
}

func numericToString(n pgtype.Numeric) string {
	return database.NumericToDecimal(n).StringFixed(2)
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func timestamptzPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
