package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/catalog"
	"github.com/ariefcatur/boutique-orders/internal/identity"
	"github.com/ariefcatur/boutique-orders/internal/orders"
	"github.com/ariefcatur/boutique-orders/internal/redisx"
	"github.com/ariefcatur/boutique-orders/internal/rentals"
	"github.com/ariefcatur/boutique-orders/internal/reporting"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Idempotency remembers which order an Idempotency-Key created. Claim
// reports true when the caller now holds key; otherwise it returns the stored
// order id, or 0 while another request holds the key.
type Idempotency interface {
	Claim(ctx context.Context, customerID int64, key string) (int64, bool, error)
	Remember(ctx context.Context, customerID int64, key string, orderID int64) error
	Release(ctx context.Context, customerID int64, key string) error
}

type Notifications interface {
	Recent(ctx context.Context, customerID int64, limit int) ([]redisx.Notification, error)
}

// Deps are the services the router exposes. Idem and Inbox may be nil.
type Deps struct {
	Catalog   *catalog.Store
	Rentals   *rentals.Ledger
	Orders    *orders.Ledger
	Identity  *identity.Service
	Reporting *reporting.Service
	Idem      Idempotency
	Inbox     Notifications
	Log       *zap.Logger
}

type api struct{ Deps }

func NewRouter(d Deps) *chi.Mux {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	a := &api{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(d.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/site-content", a.siteContent)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.register)
		r.Post("/login", a.login)
		r.With(a.authenticate).Get("/me", a.me)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", a.listProducts)
		r.Get("/{id}", a.getProduct)
		r.Get("/{id}/reserved-dates", a.reservedDates)

		r.Group(func(r chi.Router) {
			r.Use(a.authenticate, a.require(boutique.PermManageCatalog))
			r.Post("/", a.createProduct)
			r.Patch("/{id}", a.updateProduct)
			r.Delete("/{id}", a.deleteProduct)
			r.Get("/{id}/rentals", a.productRentals)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(a.authenticate)

		r.With(a.require(boutique.PermPlaceOrders)).Post("/orders", a.createOrder)
		r.Get("/orders", a.listOrders)
		r.Get("/orders/{id}", a.getOrder)
		r.With(a.require(boutique.PermManageOrders)).Patch("/orders/{id}/status", a.setOrderStatus)

		r.With(a.require(boutique.PermViewDashboard)).Get("/dashboard/summary", a.dashboardSummary)
		r.Get("/notifications", a.notifications)

		r.Route("/users", func(r chi.Router) {
			r.Use(a.require(boutique.PermManageUsers))
			r.Get("/", a.listUsers)
			r.Patch("/{id}/role", a.setUserRole)
		})
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
