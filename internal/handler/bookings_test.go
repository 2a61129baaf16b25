package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/enum"
	"github.com/platewise/api/internal/handler"
	"github.com/platewise/api/internal/middleware"
	"github.com/platewise/api/internal/service"
)

// --- Mocks ---

type mockBookingService struct {
	createFn func(ctx context.Context, req service.CreateBookingRequest) (database.TableBooking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, req service.CreateBookingRequest) (database.TableBooking, error) {
	return m.createFn(ctx, req)
}

type mockBookingLifecycle struct {
	advanceFn func(ctx context.Context, req service.AdvanceBookingRequest) (database.TableBooking, error)
}

func (m *mockBookingLifecycle) AdvanceBookingStatus(ctx context.Context, req service.AdvanceBookingRequest) (database.TableBooking, error) {
	return m.advanceFn(ctx, req)
}

type mockBookingReader struct {
	listFn func(ctx context.Context, arg database.ListBookingsParams) ([]database.TableBooking, error)
}

func (m *mockBookingReader) ListBookings(ctx context.Context, arg database.ListBookingsParams) ([]database.TableBooking, error) {
	return m.listFn(ctx, arg)
}

// --- Helpers ---

func setupBookingRouter(svc *mockBookingService, lifecycle *mockBookingLifecycle, store *mockBookingReader) *chi.Mux {
	h := handler.NewBookingHandler(svc, lifecycle, store)
	r := chi.NewRouter()
	r.Route("/public", h.RegisterPublicRoutes)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testJWTSecret))
		r.Route("/restaurants/{rid}", func(r chi.Router) {
			r.Use(middleware.RequireRestaurant)
			r.Route("/bookings", h.RegisterRoutes)
		})
	})
	return r
}

func testBooking(status string) database.TableBooking {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return database.TableBooking{
		ID:            uuid.New(),
		RestaurantID:  testRestaurantID,
		TableID:       uuid.MustParse("c1000000-0000-4000-8000-000000000001"),
		CustomerName:  "Ravi",
		CustomerPhone: "+919800000002",
		PartySize:     4,
		BookingDate:   pgtype.Date{Time: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), Valid: true},
		BookingTime:   "19:30",
		Status:        status,
		CreatedAt:     pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:     pgtype.Timestamptz{Time: now, Valid: true},
	}
}

func bookingsPath() string {
	return "/restaurants/" + testRestaurantID.String() + "/bookings"
}

// --- Create tests ---

func TestCreateBooking_Created(t *testing.T) {
	var got service.CreateBookingRequest
	svc := &mockBookingService{createFn: func(_ context.Context, req service.CreateBookingRequest) (database.TableBooking, error) {
		got = req
		return testBooking(enum.BookingStatusPending), nil
	}}
	router := setupBookingRouter(svc, &mockBookingLifecycle{}, &mockBookingReader{})

	rr := doRequest(t, router, "POST", "/public"+bookingsPath(), map[string]interface{}{
		"table_id":       "c1000000-0000-4000-8000-000000000001",
		"customer_name":  "Ravi",
		"customer_phone": "+919800000002",
		"party_size":     4,
		"booking_date":   "2026-03-20",
		"booking_time":   "19:30",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if got.RestaurantID != testRestaurantID || got.Date != "2026-03-20" || got.Time != "19:30" || got.PartySize != 4 {
		t.Errorf("request = %+v", got)
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != "pending" || resp["booking_date"] != "2026-03-20" || resp["booking_time"] != "19:30" {
		t.Errorf("response = %v", resp)
	}
}

func TestCreateBooking_MissingFields(t *testing.T) {
	svc := &mockBookingService{createFn: func(context.Context, service.CreateBookingRequest) (database.TableBooking, error) {
		t.Fatal("service called for incomplete request")
		return database.TableBooking{}, nil
	}}
	router := setupBookingRouter(svc, &mockBookingLifecycle{}, &mockBookingReader{})

	rr := doRequest(t, router, "POST", "/public"+bookingsPath(), map[string]interface{}{"customer_name": "Ravi"}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	svc := &mockBookingService{createFn: func(context.Context, service.CreateBookingRequest) (database.TableBooking, error) {
		return database.TableBooking{}, apperr.ErrSlotUnavailable
	}}
	router := setupBookingRouter(svc, &mockBookingLifecycle{}, &mockBookingReader{})

	rr := doRequest(t, router, "POST", "/public"+bookingsPath(), map[string]interface{}{
		"table_id":     "c1000000-0000-4000-8000-000000000001",
		"booking_date": "2026-03-20",
		"booking_time": "19:30",
	}, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp["error_kind"] != "SLOT_UNAVAILABLE" {
		t.Errorf("error_kind = %v", resp["error_kind"])
	}
}

// --- List tests ---

func TestListBookings_DateFilter(t *testing.T) {
	var got database.ListBookingsParams
	store := &mockBookingReader{listFn: func(_ context.Context, arg database.ListBookingsParams) ([]database.TableBooking, error) {
		got = arg
		return []database.TableBooking{testBooking(enum.BookingStatusConfirmed)}, nil
	}}
	router := setupBookingRouter(&mockBookingService{}, &mockBookingLifecycle{}, store)

	rr := doAuthRequest(t, router, "GET", bookingsPath()+"?date=2026-03-20", nil, testClaims(testRestaurantID))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if !got.BookingDate.Valid || got.BookingDate.Time.Format(time.DateOnly) != "2026-03-20" {
		t.Errorf("date filter = %+v", got.BookingDate)
	}
	if got.Limit != 20 || got.Offset != 0 {
		t.Errorf("pagination = %d/%d", got.Limit, got.Offset)
	}
	resp := decodeResponse(t, rr)
	if bookings, _ := resp["bookings"].([]interface{}); len(bookings) != 1 {
		t.Errorf("bookings = %v", resp["bookings"])
	}
}

func TestListBookings_BadDate(t *testing.T) {
	router := setupBookingRouter(&mockBookingService{}, &mockBookingLifecycle{}, &mockBookingReader{})

	rr := doAuthRequest(t, router, "GET", bookingsPath()+"?date=20-03-2026", nil, testClaims(testRestaurantID))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

// --- Status tests ---

func TestUpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"confirmed", nil, http.StatusOK},
		{"already confirmed", apperr.ErrInvalidTransition, http.StatusConflict},
		{"concurrent change", apperr.ErrAlreadyTransitioned, http.StatusConflict},
		{"other restaurant", apperr.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookingID := uuid.New()
			lifecycle := &mockBookingLifecycle{advanceFn: func(_ context.Context, req service.AdvanceBookingRequest) (database.TableBooking, error) {
				if req.BookingID != bookingID || req.RestaurantID != testRestaurantID || req.Status != "confirmed" {
					t.Errorf("request = %+v", req)
				}
				if tt.err != nil {
					return database.TableBooking{}, tt.err
				}
				return testBooking(enum.BookingStatusConfirmed), nil
			}}
			router := setupBookingRouter(&mockBookingService{}, lifecycle, &mockBookingReader{})

			rr := doAuthRequest(t, router, "PATCH", bookingsPath()+"/"+bookingID.String()+"/status",
				map[string]string{"status": "confirmed"}, testClaims(testRestaurantID))
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d; body: %s", rr.Code, tt.wantCode, rr.Body.String())
			}
		})
	}
}
