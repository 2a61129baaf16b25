package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/enum"
	"github.com/platewise/api/internal/notify"
)

// orderPrior maps each order status to the only status it can be reached
// from. The chain is new → accepted → ready → completed.
var orderPrior = map[string]string{
	enum.OrderStatusAccepted:  enum.OrderStatusNew,
	enum.OrderStatusReady:     enum.OrderStatusAccepted,
	enum.OrderStatusCompleted: enum.OrderStatusReady,
}

// bookingPrior is the same for bookings: pending → confirmed | cancelled.
var bookingPrior = map[string]string{
	enum.BookingStatusConfirmed: enum.BookingStatusPending,
	enum.BookingStatusCancelled: enum.BookingStatusPending,
}

// LifecycleStore defines the DB methods needed to move orders and bookings
// through their states. Satisfied by *database.Queries.
type LifecycleStore interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	MarkCustomerNotified(ctx context.Context, id uuid.UUID) error
	GetActiveRestaurant(ctx context.Context, id uuid.UUID) (database.Restaurant, error)
	GetRestaurantSettings(ctx context.Context, restaurantID uuid.UUID) (database.RestaurantSetting, error)
	GetBooking(ctx context.Context, arg database.GetBookingParams) (database.TableBooking, error)
	UpdateBookingStatus(ctx context.Context, arg database.UpdateBookingStatusParams) (database.TableBooking, error)
}

// AdvanceOrderRequest moves one order to Status. EstimatedMinutes is
// required when accepting and ignored otherwise.
type AdvanceOrderRequest struct {
	RestaurantID     uuid.UUID
	OrderID          uuid.UUID
	Status           string
	EstimatedMinutes int
}

// AdvanceBookingRequest moves one booking to Status.
type AdvanceBookingRequest struct {
	RestaurantID uuid.UUID
	BookingID    uuid.UUID
	Status       string
}

// LifecycleService enforces the order and booking state machines and runs
// the side effects of a transition.
type LifecycleService struct {
	store   LifecycleStore
	events  notify.Publisher
	sender  notify.Sender
	logger  *slog.Logger
	effects *sideEffects
	now     func() time.Time
}

// NewLifecycleService creates a new LifecycleService. events and sender may
// be nil; customer messages are then never sent.
func NewLifecycleService(store LifecycleStore, events notify.Publisher, sender notify.Sender, logger *slog.Logger) *LifecycleService {
	if events == nil {
		events = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LifecycleService{
		store:   store,
		events:  events,
		sender:  sender,
		logger:  logger,
		effects: newSideEffects(logger),
		now:     time.Now,
	}
}

// Wait blocks until in-flight side effects have finished.
func (s *LifecycleService) Wait() {
	s.effects.Wait()
}

// AdvanceOrderStatus applies one forward step of the order state machine.
// The write is a compare-and-set on the prior status, so of two concurrent
// requests for the same step exactly one succeeds and the other gets
// apperr.ErrAlreadyTransitioned.
func (s *LifecycleService) AdvanceOrderStatus(ctx context.Context, req AdvanceOrderRequest) (database.Order, error) {
	prior, err := priorStatus(orderPrior, req.Status, enum.OrderStatusNew)
	if err != nil {
		return database.Order{}, err
	}

	var readyAt pgtype.Timestamptz
	if req.Status == enum.OrderStatusAccepted {
		if !slices.Contains(enum.EstimatedMinutes, req.EstimatedMinutes) {
			return database.Order{}, fmt.Errorf("estimated_minutes must be one of %v: %w", enum.EstimatedMinutes, apperr.ErrInvalidRequest)
		}
		readyAt = pgtype.Timestamptz{
			Time:  s.now().UTC().Add(time.Duration(req.EstimatedMinutes) * time.Minute),
			Valid: true,
		}
	}

	current, err := s.store.GetOrder(ctx, database.GetOrderParams{ID: req.OrderID, RestaurantID: req.RestaurantID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, fmt.Errorf("order %s: %w", req.OrderID, apperr.ErrNotFound)
		}
		return database.Order{}, database.Classify("get order", err)
	}
	if err := checkTransition("order", current.Status, prior, req.Status); err != nil {
		return database.Order{}, err
	}

	updated, err := s.store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:               req.OrderID,
		RestaurantID:     req.RestaurantID,
		Status:           req.Status,
		Status_2:         prior,
		EstimatedReadyAt: readyAt,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Another request moved the order between our read and write.
			return database.Order{}, fmt.Errorf("order %s left %s: %w", req.OrderID, prior, apperr.ErrAlreadyTransitioned)
		}
		return database.Order{}, database.Classify("update order status", err)
	}

	loggerFor(ctx, s.logger).Info("order status changed",
		"order_id", updated.ID,
		"order_number", updated.OrderNumber,
		"from", prior,
		"to", updated.Status,
	)

	s.afterOrderTransition(ctx, updated)
	return updated, nil
}

func (s *LifecycleService) afterOrderTransition(ctx context.Context, order database.Order) {
	ev := notify.Event{
		Type:         notify.EventOrderStatusChanged,
		RestaurantID: order.RestaurantID,
		EntityID:     order.ID,
		Data:         orderEventData(order),
		OccurredAt:   s.now().UTC(),
	}
	s.effects.run(ctx, "publish order.status_changed", func(ctx context.Context) error {
		return s.events.Publish(ctx, ev)
	})

	var kind notify.MessageKind
	switch order.Status {
	case enum.OrderStatusAccepted:
		kind = notify.MessageOrderAccepted
	case enum.OrderStatusReady:
		kind = notify.MessageOrderReady
	default:
		return
	}
	if s.sender == nil || !order.CustomerPhone.Valid || order.CustomerPhone.String == "" {
		return
	}
	s.effects.run(ctx, "notify customer", func(ctx context.Context) error {
		return s.notifyCustomer(ctx, order, kind)
	})
}

// notifyCustomer sends the WhatsApp message for a transition when the
// restaurant has it enabled, then flags the order as notified.
func (s *LifecycleService) notifyCustomer(ctx context.Context, order database.Order, kind notify.MessageKind) error {
	settings, err := s.store.GetRestaurantSettings(ctx, order.RestaurantID)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && !settings.WhatsappEnabled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get restaurant settings: %w", err)
	}

	restaurant, err := s.store.GetActiveRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return fmt.Errorf("get restaurant: %w", err)
	}

	var readyAt time.Time
	if order.EstimatedReadyAt.Valid {
		readyAt = order.EstimatedReadyAt.Time.In(restaurantLocation(restaurant))
	}
	body := notify.CustomerMessage(kind, order.CustomerName.String, order.OrderNumber, restaurant.Name, readyAt)

	if err := s.sender.Send(ctx, order.CustomerPhone.String, body); err != nil {
		return fmt.Errorf("order %s: %w", order.OrderNumber, err)
	}
	if err := s.store.MarkCustomerNotified(ctx, order.ID); err != nil {
		return fmt.Errorf("mark customer notified: %w", err)
	}
	return nil
}

func restaurantLocation(r database.Restaurant) *time.Location {
	if loc, err := time.LoadLocation(r.Timezone); err == nil && r.Timezone != "" {
		return loc
	}
	return time.UTC
}

// AdvanceBookingStatus confirms or cancels a pending booking with the same
// compare-and-set guard as orders.
func (s *LifecycleService) AdvanceBookingStatus(ctx context.Context, req AdvanceBookingRequest) (database.TableBooking, error) {
	prior, err := priorStatus(bookingPrior, req.Status, enum.BookingStatusPending)
	if err != nil {
		return database.TableBooking{}, err
	}

	current, err := s.store.GetBooking(ctx, database.GetBookingParams{ID: req.BookingID, RestaurantID: req.RestaurantID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.TableBooking{}, fmt.Errorf("booking %s: %w", req.BookingID, apperr.ErrNotFound)
		}
		return database.TableBooking{}, database.Classify("get booking", err)
	}
	if err := checkTransition("booking", current.Status, prior, req.Status); err != nil {
		return database.TableBooking{}, err
	}

	updated, err := s.store.UpdateBookingStatus(ctx, database.UpdateBookingStatusParams{
		ID:           req.BookingID,
		RestaurantID: req.RestaurantID,
		Status:       req.Status,
		Status_2:     prior,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.TableBooking{}, fmt.Errorf("booking %s left %s: %w", req.BookingID, prior, apperr.ErrAlreadyTransitioned)
		}
		return database.TableBooking{}, database.Classify("update booking status", err)
	}

	loggerFor(ctx, s.logger).Info("booking status changed", "booking_id", updated.ID, "to", updated.Status)

	ev := notify.Event{
		Type:         notify.EventBookingStatusChanged,
		RestaurantID: updated.RestaurantID,
		EntityID:     updated.ID,
		Data:         bookingEventData(updated),
		OccurredAt:   s.now().UTC(),
	}
	s.effects.run(ctx, "publish booking.status_changed", func(ctx context.Context) error {
		return s.events.Publish(ctx, ev)
	})
	return updated, nil
}

// priorStatus returns the status target must be reached from. The initial
// status can never be a target.
func priorStatus(chain map[string]string, target, initial string) (string, error) {
	if prior, ok := chain[target]; ok {
		return prior, nil
	}
	if target == initial {
		return "", fmt.Errorf("cannot move back to %s: %w", initial, apperr.ErrInvalidTransition)
	}
	return "", fmt.Errorf("unknown status %q: %w", target, apperr.ErrInvalidRequest)
}

func checkTransition(entity, current, prior, target string) error {
	if current == target {
		return fmt.Errorf("%s is already %s: %w", entity, target, apperr.ErrAlreadyTransitioned)
	}
	if current != prior {
		return fmt.Errorf("%s is %s, cannot move to %s: %w", entity, current, target, apperr.ErrInvalidTransition)
	}
	return nil
}
