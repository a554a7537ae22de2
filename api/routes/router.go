package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/westcoasttreez/storefront-backend/api/controllers"
	"github.com/westcoasttreez/storefront-backend/api/middleware"
	cartsvc "github.com/westcoasttreez/storefront-backend/internal/cart"
	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	checkoutsvc "github.com/westcoasttreez/storefront-backend/internal/checkout"
	modesvc "github.com/westcoasttreez/storefront-backend/internal/mode"
	ordersvc "github.com/westcoasttreez/storefront-backend/internal/orders"
	"github.com/westcoasttreez/storefront-backend/pkg/config"
	"github.com/westcoasttreez/storefront-backend/pkg/db"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/metrics"
	"github.com/westcoasttreez/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Registry *prometheus.Registry
	DB       db.Pinger
	Redis    *redis.Client
	Catalog  *catalog.Catalog
	Carts    *cartsvc.Service
	Modes    *modesvc.Selector
	Checkout *checkoutsvc.Service
	Orders   ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Metrics),
		middleware.CORS(),
		middleware.Session(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Catalog, deps.Modes, logg))
			r.Get("/{itemId}", controllers.CatalogItem(deps.Catalog, logg))
		})

		r.Route("/mode", func(r chi.Router) {
			r.Get("/", controllers.ModeGet(deps.Modes, logg))
			r.Put("/", controllers.ModeSet(deps.Modes, logg))
			r.Delete("/", controllers.ModeClear(deps.Modes, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Carts, deps.Modes, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, deps.Modes, logg))
			r.Patch("/items/{lineKey}", controllers.CartUpdateItem(deps.Carts, logg))
			r.Delete("/items/{lineKey}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.With(middleware.Throttle(
			"checkout",
			cfg.Checkout.RateLimitMax,
			cfg.Checkout.RateLimitWindow,
			deps.Redis,
			logg,
		)).Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrdersGet(deps.Orders, logg))
		})
	})

	return r
}
