package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/advanceapparels/tradeshow-portal/api/controllers"
	"github.com/advanceapparels/tradeshow-portal/api/middleware"
	"github.com/advanceapparels/tradeshow-portal/pkg/config"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/metrics"
	"github.com/advanceapparels/tradeshow-portal/pkg/redis"
)

// Params carries everything the router wires. Redis and Storage may be nil:
// without Redis the idempotency and rate limit middleware pass through.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Storage  controllers.Pinger
	Registry *prometheus.Registry

	Customers controllers.CustomerService
	Catalog   controllers.CatalogService
	Portals   controllers.PortalService
	Sync      controllers.SyncService
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	deps := map[string]controllers.Pinger{"db": p.DB, "redis": nil, "storage": p.Storage}
	var (
		idempotency       = middleware.Idempotency(nil, logg)
		uploadIdempotency = idempotency
		linkLimit         = middleware.RateLimit(middleware.RateLimitPolicy{}, nil, logg)
	)
	if p.Redis != nil {
		deps["redis"] = p.Redis
		idempotency = middleware.Idempotency(p.Redis, logg)
		// multipart overhead on top of the file itself
		uploadIdempotency = middleware.IdempotencyWithLimit(p.Redis, cfg.Uploads.MaxBytes()+1<<20, logg)
		linkLimit = middleware.RateLimit(
			middleware.NewRateLimitPolicy("portal_link", cfg.RateLimit.PortalWindow, cfg.RateLimit.PortalIPLimit),
			p.Redis,
			logg,
		)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, deps))
	})
	r.Handle("/metrics", metrics.Handler(p.Registry))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/customers", func(r chi.Router) {
			r.Get("/search", controllers.CustomerSearch(p.Customers, logg))
			r.Get("/locations", controllers.CustomerLocations(p.Customers, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/search", controllers.ProductSearch(p.Catalog, logg))
			r.Get("/skus", controllers.ProductSKUs(p.Catalog, logg))
		})

		r.Route("/portals", func(r chi.Router) {
			r.With(idempotency).Post("/create", controllers.PortalCreate(p.Portals, logg))
			r.Get("/list", controllers.PortalList(p.Portals, logg))
			r.Post("/update-status", controllers.PortalUpdateStatus(p.Portals, false, logg))
			r.Delete("/delete", controllers.PortalDelete(p.Portals, logg))
			if cfg.FeatureFlags.Uploads {
				r.With(uploadIdempotency).Post("/upload", controllers.PortalUpload(p.Portals, cfg.Uploads.MaxBytes(), logg))
			}
			r.Group(func(r chi.Router) {
				r.Use(linkLimit)
				r.Get("/{link}", controllers.PortalByLink(p.Portals, logg))
				r.Post("/{link}/confirm", controllers.PortalConfirm(p.Portals, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/ping", controllers.AdminPing())
			r.Route("/portals", func(r chi.Router) {
				r.Get("/", controllers.PortalList(p.Portals, logg))
				r.Put("/status", controllers.PortalUpdateStatus(p.Portals, true, logg))
				r.Post("/delete", controllers.PortalDelete(p.Portals, logg))
				r.Put("/{portalId}/items", controllers.PortalReplaceItems(p.Portals, logg))
			})

			for _, kind := range enums.SyncOrder {
				r.Post("/sync-"+kind.Slug(), controllers.AdminSync(p.Sync, kind, logg))
			}
			r.Post("/sync-all", controllers.AdminSyncAll(p.Sync, logg))
			r.Get("/sync/history", controllers.AdminSyncHistory(p.Sync, logg))
		})
	})

	return r
}
