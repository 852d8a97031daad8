package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/electroquick/api/controllers"
	cartcontrollers "github.com/angelmondragon/electroquick/api/controllers/cart"
	catalogcontrollers "github.com/angelmondragon/electroquick/api/controllers/catalog"
	"github.com/angelmondragon/electroquick/api/middleware"
	"github.com/angelmondragon/electroquick/internal/cart"
	"github.com/angelmondragon/electroquick/internal/catalog"
	"github.com/angelmondragon/electroquick/internal/checkout"
	"github.com/angelmondragon/electroquick/pkg/config"
	"github.com/angelmondragon/electroquick/pkg/kvstore"
	"github.com/angelmondragon/electroquick/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	backend kvstore.Backend,
	catalogService catalog.Service,
	cartStore *cart.Store,
	calculator *checkout.Calculator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, backend, cartStore))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", catalogcontrollers.Categories(catalogService, logg))
		r.Get("/products", catalogcontrollers.Products(catalogService, logg))
		r.Get("/products/featured", catalogcontrollers.Featured(catalogService, logg))
		r.Get("/products/{productID}", catalogcontrollers.Product(catalogService, logg))
		r.Get("/products/{productID}/recommendations", catalogcontrollers.Recommended(catalogService, logg))
		r.Get("/search", catalogcontrollers.Search(catalogService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", cartcontrollers.CartFetch(cartStore, logg))
		r.Delete("/", cartcontrollers.CartClear(cartStore, logg))
		r.Get("/count", cartcontrollers.CartCount(cartStore, logg))
		r.Get("/summary", cartcontrollers.CartSummary(cartStore, calculator, logg))
		r.Get("/events", cartcontrollers.CartEvents(cartStore, logg))
		r.Post("/items", cartcontrollers.CartAddItem(cartStore, catalogService, logg))
		r.Get("/items/{productID}", cartcontrollers.CartItemStatus(cartStore, logg))
		r.Put("/items/{productID}", cartcontrollers.CartUpdateItem(cartStore, logg))
		r.Delete("/items/{productID}", cartcontrollers.CartRemoveItem(cartStore, logg))
	})

	return r
}
