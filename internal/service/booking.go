package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/notify"
)

// BookingStore defines the DB methods needed to create a table booking.
// Satisfied by *database.Queries (and its WithTx variant).
type BookingStore interface {
	GetActiveRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	GetActiveTable(ctx context.Context, arg database.GetActiveTableParams) (database.RestaurantTable, error)
	LockTable(ctx context.Context, id uuid.UUID) error
	CountActiveBookingsForSlot(ctx context.Context, arg database.CountActiveBookingsForSlotParams) (int64, error)
	CreateBooking(ctx context.Context, arg database.CreateBookingParams) (database.TableBooking, error)
}

// NewBookingStore creates a BookingStore from a DBTX (pool or tx).
type NewBookingStore func(db database.DBTX) BookingStore

// CreateBookingRequest is a public table reservation. Date is YYYY-MM-DD and
// Time is HH:MM in the restaurant's local time.
type CreateBookingRequest struct {
	RestaurantID  uuid.UUID
	TableID       string
	CustomerName  string
	CustomerPhone string
	PartySize     int32
	Date          string
	Time          string
	Notes         string
}

// BookingService creates table bookings.
type BookingService struct {
	pool     TxBeginner
	newStore NewBookingStore
	events   notify.Publisher
	logger   *slog.Logger
	effects  *sideEffects
}

// NewBookingService creates a new BookingService. events may be nil.
func NewBookingService(pool TxBeginner, newStore NewBookingStore, events notify.Publisher, logger *slog.Logger) *BookingService {
	if events == nil {
		events = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		pool:     pool,
		newStore: newStore,
		events:   events,
		logger:   logger,
		effects:  newSideEffects(logger),
	}
}

// Wait blocks until in-flight event publishing has finished.
func (s *BookingService) Wait() {
	s.effects.Wait()
}

// CreateBooking reserves a table in pending state. The table row is locked
// for the duration of the check so two requests for the same slot cannot
// both succeed.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (database.TableBooking, error) {
	params, err := parseBookingRequest(req)
	if err != nil {
		return database.TableBooking{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.TableBooking{}, database.Classify("begin tx", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := store.GetActiveRestaurant(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.TableBooking{}, fmt.Errorf("restaurant %s: %w", req.RestaurantID, apperr.ErrNotFound)
		}
		return database.TableBooking{}, database.Classify("get restaurant", err)
	}

	table, err := store.GetActiveTable(ctx, database.GetActiveTableParams{ID: params.TableID, RestaurantID: req.RestaurantID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.TableBooking{}, fmt.Errorf("table %s: %w", params.TableID, apperr.ErrNotFound)
		}
		return database.TableBooking{}, database.Classify("get table", err)
	}
	if params.PartySize > table.Capacity {
		return database.TableBooking{}, fmt.Errorf("party of %d exceeds table capacity %d: %w", params.PartySize, table.Capacity, apperr.ErrInvalidRequest)
	}

	if err := store.LockTable(ctx, table.ID); err != nil {
		return database.TableBooking{}, database.Classify("lock table", err)
	}
	n, err := store.CountActiveBookingsForSlot(ctx, database.CountActiveBookingsForSlotParams{
		TableID:     table.ID,
		BookingDate: params.BookingDate,
		BookingTime: params.BookingTime,
	})
	if err != nil {
		return database.TableBooking{}, database.Classify("count bookings", err)
	}
	if n > 0 {
		return database.TableBooking{}, fmt.Errorf("table %s at %s %s: %w", table.Name, req.Date, params.BookingTime, apperr.ErrSlotUnavailable)
	}

	booking, err := store.CreateBooking(ctx, params)
	if err != nil {
		return database.TableBooking{}, database.Classify("create booking", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return database.TableBooking{}, database.Classify("commit tx", err)
	}

	loggerFor(ctx, s.logger).Info("booking created", "booking_id", booking.ID, "table", table.Name)

	ev := notify.Event{
		Type:         notify.EventBookingCreated,
		RestaurantID: booking.RestaurantID,
		EntityID:     booking.ID,
		Data:         bookingEventData(booking),
		OccurredAt:   time.Now().UTC(),
	}
	s.effects.run(ctx, "publish booking.created", func(ctx context.Context) error {
		return s.events.Publish(ctx, ev)
	})
	return booking, nil
}

func parseBookingRequest(req CreateBookingRequest) (database.CreateBookingParams, error) {
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return database.CreateBookingParams{}, fmt.Errorf("invalid table_id: %w", apperr.ErrInvalidRequest)
	}
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	if name == "" || phone == "" {
		return database.CreateBookingParams{}, fmt.Errorf("customer_name and customer_phone are required: %w", apperr.ErrInvalidRequest)
	}
	partySize := req.PartySize
	if partySize == 0 {
		partySize = 1
	}
	if partySize < 0 {
		return database.CreateBookingParams{}, fmt.Errorf("party_size must be > 0: %w", apperr.ErrInvalidRequest)
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return database.CreateBookingParams{}, fmt.Errorf("booking_date must be YYYY-MM-DD: %w", apperr.ErrInvalidRequest)
	}
	at, err := time.Parse("15:04", req.Time)
	if err != nil {
		return database.CreateBookingParams{}, fmt.Errorf("booking_time must be HH:MM: %w", apperr.ErrInvalidRequest)
	}

	return database.CreateBookingParams{
		TableID:       tableID,
		RestaurantID:  req.RestaurantID,
		CustomerName:  name,
		CustomerPhone: phone,
		PartySize:     partySize,
		BookingDate:   pgtype.Date{Time: date, Valid: true},
		BookingTime:   at.Format("15:04"),
		Notes:         textOrNull(req.Notes),
	}, nil
}

func bookingEventData(b database.TableBooking) map[string]any {
	return map[string]any{
		"id":            b.ID,
		"table_id":      b.TableID,
		"customer_name": b.CustomerName,
		"party_size":    b.PartySize,
		"booking_date":  b.BookingDate.Time.Format(time.DateOnly),
		"booking_time":  b.BookingTime,
		"status":        b.Status,
	}
}
