package handler

import (
	"net/http"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Configuration
// ============================================================

func getConfigHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/config")
		defer span.End()

		cfg, err := svc.GetConfiguration(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func putConfigHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/config")
		defer span.End()

		var req domain.ConfigurationRequest
		if !decodeBody(w, r, &req) {
			return
		}

		cfg, err := svc.SaveConfiguration(ctx, UserIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}
