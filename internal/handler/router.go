// Package handler exposes the pricing records and the pricing report over
// HTTP. Every /v1 route except the metrics snapshot needs a Supabase access
// token; the token subject scopes all data.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Pinger is the store health check used by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups what the router needs. Store may be nil, in which case
// /healthz only reports the API itself.
type Deps struct {
	Catalog   *service.CatalogService
	Pricing   *service.PricingService
	Tokens    *service.TokenValidator
	Store     Pinger
	StoreName string
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(d.Store, d.StoreName, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics/pricing", pricingMetricsHandler(d.Metrics))

		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(d.Tokens, logger))

			// Configuration (singleton per user)
			r.Get("/config", getConfigHandler(d.Catalog, logger))
			r.Put("/config", putConfigHandler(d.Catalog, logger))

			// Fixed costs
			r.Get("/fixed-costs", listFixedCostsHandler(d.Catalog, logger))
			r.Post("/fixed-costs", createFixedCostHandler(d.Catalog, logger))
			r.Put("/fixed-costs/{id}", updateFixedCostHandler(d.Catalog, logger))
			r.Delete("/fixed-costs/{id}", deleteFixedCostHandler(d.Catalog, logger))

			// Materials (insumos)
			r.Get("/materials", listMaterialsHandler(d.Catalog, logger))
			r.Post("/materials", createMaterialHandler(d.Catalog, logger))
			r.Put("/materials/{id}", updateMaterialHandler(d.Catalog, logger))
			r.Delete("/materials/{id}", deleteMaterialHandler(d.Catalog, logger))

			// Products
			r.Get("/products", listProductsHandler(d.Catalog, logger))
			r.Post("/products", createProductHandler(d.Catalog, logger))
			r.Put("/products/{id}", updateProductHandler(d.Catalog, logger))
			r.Delete("/products/{id}", deleteProductHandler(d.Catalog, logger))

			// Bill of materials (ficha técnica)
			r.Get("/bom-entries", listBOMEntriesHandler(d.Catalog, logger))
			r.Post("/bom-entries", createBOMEntryHandler(d.Catalog, logger))
			r.Put("/bom-entries/{id}", updateBOMEntryHandler(d.Catalog, logger))
			r.Delete("/bom-entries/{id}", deleteBOMEntryHandler(d.Catalog, logger))

			// Resale pricing
			r.Get("/resale-entries", listResaleEntriesHandler(d.Catalog, logger))
			r.Post("/resale-entries", createResaleEntryHandler(d.Catalog, logger))
			r.Put("/resale-entries/{id}", updateResaleEntryHandler(d.Catalog, logger))
			r.Delete("/resale-entries/{id}", deleteResaleEntryHandler(d.Catalog, logger))

			// Pricing
			r.Get("/dashboard", dashboardHandler(d.Pricing, logger))
			r.Get("/pricing/report", reportHandler(d.Pricing, logger))
			r.Post("/pricing/simulate", simulateHandler(d.Pricing, logger))
		})
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler(store Pinger, storeName string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "precifica-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if store != nil {
			start := time.Now()
			err := store.Ping(r.Context())
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
				logger.Warn("health check: store unreachable", zap.String("store", storeName), zap.Error(err))
			}
			services = append(services, domain.ServiceHealth{
				Name: storeName, Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func pricingMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetPricingSnapshot())
	}
}
