package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lacomanda/comanda-backend/api/controllers"
	backofficecontrollers "github.com/lacomanda/comanda-backend/api/controllers/backoffice"
	kdscontrollers "github.com/lacomanda/comanda-backend/api/controllers/kds"
	poscontrollers "github.com/lacomanda/comanda-backend/api/controllers/pos"
	"github.com/lacomanda/comanda-backend/api/middleware"
	"github.com/lacomanda/comanda-backend/internal/checkout"
	"github.com/lacomanda/comanda-backend/internal/events"
	"github.com/lacomanda/comanda-backend/internal/kds"
	"github.com/lacomanda/comanda-backend/internal/orders"
	"github.com/lacomanda/comanda-backend/pkg/config"
	"github.com/lacomanda/comanda-backend/pkg/db"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	boardService kds.Service,
	flowService orders.Service,
	checkoutService checkout.Service,
	recorder events.Recorder,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/kds/v1", func(r chi.Router) {
		r.Use(middleware.LocationContext(logg))
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", kdscontrollers.Board(boardService, logg))
			r.Get("/{orderId}", kdscontrollers.Detail(boardService, logg))
			r.Post("/{orderId}/start", kdscontrollers.Start(flowService, boardService, logg))
			r.Post("/{orderId}/ready", kdscontrollers.Ready(flowService, boardService, logg))
			r.Post("/{orderId}/cancel", kdscontrollers.Cancel(flowService, boardService, logg))
		})
	})

	r.Route("/api/pos/v1", func(r chi.Router) {
		r.Use(middleware.LocationContext(logg))
		r.Post("/checkout", poscontrollers.Create(checkoutService, logg))
	})

	r.Route("/api/backoffice/v1", func(r chi.Router) {
		r.Get("/orders/{orderId}/events", backofficecontrollers.OrderEvents(recorder, logg))
	})

	return r
}
