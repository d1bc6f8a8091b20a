package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bunnybot/storefront-api/api/controllers"
	"github.com/bunnybot/storefront-api/api/middleware"
	"github.com/bunnybot/storefront-api/internal/cart"
	"github.com/bunnybot/storefront-api/internal/catalog"
	"github.com/bunnybot/storefront-api/internal/contact"
	"github.com/bunnybot/storefront-api/internal/medusa"
	"github.com/bunnybot/storefront-api/internal/orders"
	"github.com/bunnybot/storefront-api/internal/revalidate"
	"github.com/bunnybot/storefront-api/internal/strapi"
	"github.com/bunnybot/storefront-api/pkg/config"
	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/bunnybot/storefront-api/pkg/metrics"
	"github.com/bunnybot/storefront-api/pkg/redis"
)

type Dependencies struct {
	Config     *config.Config
	Logger     *logger.Logger
	Redis      *redis.Client
	Strapi     *strapi.Client
	Medusa     *medusa.Client
	Catalog    catalog.Service
	Cart       cart.Service
	Contact    contact.Service
	Orders     orders.Service
	Revalidate revalidate.Service
	HTTPStats  *metrics.HTTPMetrics
	CacheStats *metrics.PageCacheMetrics
	Metrics    prometheus.Gatherer
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPStats),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessProbes(deps)))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	pageCached := func(next http.Handler) http.Handler { return next }
	if deps.Redis != nil {
		pageCached = middleware.PageCache(deps.Redis, deps.CacheStats, cfg.Cache.PageTTL, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(pageCached)
			r.Get("/banners", controllers.BannerList(deps.Strapi, logg))
			r.Get("/categories", controllers.CategoryList(deps.Catalog, logg))
			r.Get("/pages/{slug}", controllers.PageDetail(deps.Strapi, logg))
			r.Get("/products", controllers.ProductList(deps.Catalog, logg))
			r.Get("/products/{slug}", controllers.ProductDetail(deps.Catalog, logg))
			r.Get("/news", controllers.NewsList(deps.Strapi, logg))
			r.Get("/news/{slug}", controllers.NewsDetail(deps.Strapi, logg))
		})

		r.Post("/contact", controllers.ContactSubmit(deps.Contact, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.App.IsProd(), cfg.Cache.SessionTTL))
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/", controllers.CartAddItem(deps.Cart, logg))
			r.Post("/items/{itemId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(deps.Medusa, logg))
			r.With(middleware.CustomerAuth(logg)).Post("/logout", controllers.AuthLogout(deps.Medusa, logg))
		})
		r.Post("/customers", controllers.AuthRegister(deps.Medusa, logg))

		r.Route("/account", func(r chi.Router) {
			r.Use(middleware.CustomerAuth(logg))
			r.Get("/me", controllers.AccountProfile(deps.Medusa, logg))
			r.Get("/orders", controllers.OrderHistory(deps.Orders, logg))
			r.Get("/orders/{orderId}", controllers.OrderDetail(deps.Orders, logg))
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/revalidate", controllers.RevalidateWebhook(deps.Revalidate, logg))
			r.Get("/revalidate", controllers.RevalidatePath(deps.Revalidate, logg))
		})
	})

	return r
}

func readinessProbes(deps Dependencies) map[string]controllers.Pinger {
	probes := map[string]controllers.Pinger{}
	if deps.Redis != nil {
		probes["redis"] = deps.Redis
	}
	if deps.Strapi != nil {
		probes["strapi"] = deps.Strapi
	}
	if deps.Medusa != nil {
		probes["medusa"] = deps.Medusa
	}
	return probes
}
