package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukapos/pos-terminal/api/controllers"
	"github.com/dukapos/pos-terminal/api/middleware"
	"github.com/dukapos/pos-terminal/internal/catalog"
	checkoutsvc "github.com/dukapos/pos-terminal/internal/checkout"
	"github.com/dukapos/pos-terminal/internal/session"
	"github.com/dukapos/pos-terminal/pkg/config"
	"github.com/dukapos/pos-terminal/pkg/enums"
	"github.com/dukapos/pos-terminal/pkg/logger"
	pkgredis "github.com/dukapos/pos-terminal/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Backend         controllers.Pinger
	Redis           *pkgredis.Client
	Sessions        *session.Manager
	CatalogService  catalog.Service
	CheckoutService checkoutsvc.Service
	MetricsRegistry *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.Backend, redisPinger(d.Redis)))
	})

	if d.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	registerRoles := []string{
		string(enums.RoleCashier),
		string(enums.RoleManager),
		string(enums.RoleAdmin),
	}

	var idempotencyStore pkgredis.IdempotencyStore
	if d.Redis != nil {
		idempotencyStore = d.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Config.JWT, d.Logger))
		r.Use(middleware.RequireAnyRole(d.Logger, registerRoles...))

		r.Get("/catalog/search", controllers.CatalogSearch(d.CatalogService, d.Config.Search, d.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Sessions, d.Logger))
			r.Delete("/", controllers.CartClear(d.Sessions, d.Logger))
			r.Post("/lines", controllers.CartAddLine(d.Sessions, d.Logger))
			r.Put("/lines/{productID}", controllers.CartUpdateLine(d.Sessions, d.Logger))
			r.Delete("/lines/{productID}", controllers.CartRemoveLine(d.Sessions, d.Logger))
			r.Put("/customer", controllers.CartSetCustomer(d.Sessions, d.Logger))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutBegin(d.Sessions, d.Logger))
			r.Post("/back", controllers.CheckoutBack(d.Sessions, d.Logger))
			r.Put("/payment", controllers.CheckoutPayment(d.Sessions, d.Logger))
			r.With(middleware.Idempotency(idempotencyStore, d.Logger)).
				Post("/submit", controllers.CheckoutSubmit(d.CheckoutService, d.Sessions, d.Config.Checkout, d.Logger))
		})
	})

	return r
}

// redisPinger keeps a nil *Client from turning into a non-nil Pinger
// interface value.
func redisPinger(c *pkgredis.Client) controllers.Pinger {
	if c == nil {
		return nil
	}
	return c
}
