package handler

import (
	"net/http"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Pricing
// ============================================================

func dashboardHandler(svc *service.PricingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		dash, err := svc.Dashboard(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, dash)
	}
}

func reportHandler(svc *service.PricingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/pricing/report")
		defer span.End()

		report, err := svc.Report(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func simulateHandler(svc *service.PricingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/pricing/simulate")
		defer span.End()

		var req domain.SimulationRequest
		if !decodeBody(w, r, &req) {
			return
		}

		res, err := svc.Simulate(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
