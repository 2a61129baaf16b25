package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/platewise/api/internal/catalog"
	"github.com/platewise/api/internal/config"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/enum"
	"github.com/platewise/api/internal/handler"
	"github.com/platewise/api/internal/idempotency"
	mw "github.com/platewise/api/internal/middleware"
	"github.com/platewise/api/internal/receipt"
	"github.com/platewise/api/internal/service"
	"github.com/platewise/api/internal/ws"
)

// Services are the application services the HTTP layer calls into. They are
// built by the caller so it can drain their side effects on shutdown.
type Services struct {
	Orders    *service.OrderService
	Lifecycle *service.LifecycleService
	Bookings  *service.BookingService
	// Guard enables Idempotency-Key handling on order placement. May be nil.
	Guard *idempotency.Guard
}

// New creates a Chi router with all application routes wired up.
// Public ordering routes live under /public; staff routes are authenticated
// and scoped to the restaurant in the caller's token.
func New(cfg *config.Config, queries *database.Queries, svc Services, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration. The ordering widget is embedded on restaurant sites,
	// so origins come from the environment.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	qr := receipt.NewQRGenerator(cfg.PublicBaseURL)
	orderHandler := handler.NewOrderHandler(svc.Orders, svc.Lifecycle, queries, qr)
	if svc.Guard != nil {
		orderHandler.WithIdempotency(svc.Guard)
	}
	bookingHandler := handler.NewBookingHandler(svc.Bookings, svc.Lifecycle, queries)
	menuHandler := handler.NewMenuHandler(catalog.NewMenuReader(queries))

	// Customer-facing routes (widget and ordering page)
	r.Route("/public", func(r chi.Router) {
		menuHandler.RegisterPublicRoutes(r)
		orderHandler.RegisterPublicRoutes(r)
		bookingHandler.RegisterPublicRoutes(r)
	})

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/restaurants/{rid}/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Route("/restaurants/{rid}", func(r chi.Router) {
			r.Use(mw.RequireRestaurant)

			r.Route("/orders", orderHandler.RegisterRoutes)

			// Confirming and cancelling tables is a floor-manager decision.
			r.Route("/bookings", func(r chi.Router) {
				r.Use(mw.RequireRole(enum.StaffRoleOwner, enum.StaffRoleManager))
				bookingHandler.RegisterRoutes(r)
			})
		})
	})

	return r
}
