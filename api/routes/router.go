package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookverse/bookverse-backend/api/controllers"
	"github.com/bookverse/bookverse-backend/api/middleware"
	"github.com/bookverse/bookverse-backend/internal/cart"
	"github.com/bookverse/bookverse-backend/internal/catalog"
	checkoutsvc "github.com/bookverse/bookverse-backend/internal/checkout"
	"github.com/bookverse/bookverse-backend/internal/ledger"
	"github.com/bookverse/bookverse-backend/internal/orders"
	"github.com/bookverse/bookverse-backend/internal/wallet"
	"github.com/bookverse/bookverse-backend/pkg/config"
	"github.com/bookverse/bookverse-backend/pkg/logger"
	"github.com/bookverse/bookverse-backend/pkg/metrics"
	"github.com/bookverse/bookverse-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Cache          controllers.Pinger
	Idempotency    redis.IdempotencyStore
	Catalog        catalog.Service
	Cart           cart.Service
	Wallet         wallet.Service
	BalanceWatcher wallet.Watcher
	Ledger         ledger.Service
	Orders         orders.Service
	Checkout       checkoutsvc.Service
	HTTPMetrics    *metrics.HTTPMetrics
	Registry       *prometheus.Registry
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Cache, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.ListBooks(deps.Catalog, logg))
			r.Get("/genres", controllers.ListGenres(deps.Catalog, logg))
			r.Get("/{bookId}", controllers.GetBook(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Put("/items/{bookId}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{bookId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", controllers.GetBalance(deps.Wallet, logg))
			r.Get("/balance/stream", controllers.StreamBalance(deps.Wallet, deps.BalanceWatcher, logg))
			r.Get("/transactions", controllers.GetTransactions(deps.Ledger, logg))
		})

		r.Get("/orders/{orderId}", controllers.GetOrder(deps.Orders, logg))

		r.With(middleware.Idempotency(deps.Idempotency, cfg.Checkout.IdempotencyTTL, logg)).
			Post("/checkout", controllers.Checkout(deps.Checkout, logg))
	})

	return r
}
