package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/service"
)

// BookingCreator creates public table bookings.
// Satisfied by *service.BookingService.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req service.CreateBookingRequest) (database.TableBooking, error)
}

// BookingAdvancer confirms or cancels bookings.
// Satisfied by *service.LifecycleService.
type BookingAdvancer interface {
	AdvanceBookingStatus(ctx context.Context, req service.AdvanceBookingRequest) (database.TableBooking, error)
}

// BookingReader defines the database methods needed by booking list handlers.
// Satisfied by *database.Queries.
type BookingReader interface {
	ListBookings(ctx context.Context, arg database.ListBookingsParams) ([]database.TableBooking, error)
}

// BookingHandler handles table booking endpoints.
type BookingHandler struct {
	svc       BookingCreator
	lifecycle BookingAdvancer
	store     BookingReader
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc BookingCreator, lifecycle BookingAdvancer, store BookingReader) *BookingHandler {
	return &BookingHandler{svc: svc, lifecycle: lifecycle, store: store}
}

// RegisterPublicRoutes registers the unauthenticated booking endpoint.
// Expected to be mounted at /public.
func (h *BookingHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/restaurants/{rid}/bookings", h.Create)
}

// RegisterRoutes registers staff booking endpoints.
// Expected to be mounted inside a restaurant-scoped subrouter: /restaurants/{rid}/bookings
func (h *BookingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type createBookingRequest struct {
	TableID       string `json:"table_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	PartySize     int32  `json:"party_size"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	Notes         string `json:"notes"`
}

type bookingResponse struct {
	ID            uuid.UUID `json:"id"`
	RestaurantID  uuid.UUID `json:"restaurant_id"`
	TableID       uuid.UUID `json:"table_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	PartySize     int32     `json:"party_size"`
	BookingDate   string    `json:"booking_date"`
	BookingTime   string    `json:"booking_time"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type bookingListResponse struct {
	Bookings []bookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// Create handles POST /public/restaurants/{rid}/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.TableID == "" || req.BookingDate == "" || req.BookingTime == "" {
		badRequest(w, "table_id, booking_date and booking_time are required")
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), service.CreateBookingRequest{
		RestaurantID:  restaurantID,
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PartySize:     req.PartySize,
		Date:          req.BookingDate,
		Time:          req.BookingTime,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

// List handles GET /restaurants/{rid}/bookings?date=YYYY-MM-DD.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}

	limit, offset := parsePagination(r)
	params := database.ListBookingsParams{
		RestaurantID: restaurantID,
		Limit:        int32(limit),
		Offset:       int32(offset),
	}
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			badRequest(w, "invalid date format, use YYYY-MM-DD")
			return
		}
		params.BookingDate = pgtype.Date{Time: d, Valid: true}
	}

	bookings, err := h.store.ListBookings(r.Context(), params)
	if err != nil {
		writeError(w, r, database.Classify("list bookings", err))
		return
	}

	resp := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: resp, Limit: limit, Offset: offset})
}

// UpdateStatus handles PATCH /restaurants/{rid}/bookings/{id}/status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "rid"))
	if err != nil {
		badRequest(w, "invalid restaurant ID")
		return
	}
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid booking ID")
		return
	}

	var req updateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Status == "" {
		badRequest(w, "status is required")
		return
	}

	updated, err := h.lifecycle.AdvanceBookingStatus(r.Context(), service.AdvanceBookingRequest{
		RestaurantID: restaurantID,
		BookingID:    bookingID,
		Status:       req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(updated))
}

func toBookingResponse(b database.TableBooking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		RestaurantID:  b.RestaurantID,
		TableID:       b.TableID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		PartySize:     b.PartySize,
		BookingDate:   b.BookingDate.Time.Format(time.DateOnly),
		BookingTime:   b.BookingTime,
		Status:        b.Status,
		Notes:         textPtr(b.Notes),
		CreatedAt:     b.CreatedAt.Time,
	}
}
