package handler

import (
	"net/http"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Bill of materials (ficha técnica)
// ============================================================

func listBOMEntriesHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bom-entries")
		defer span.End()

		productID := r.URL.Query().Get("productId")
		entries, err := svc.ListBOMEntries(ctx, UserIDFromContext(ctx), productID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func createBOMEntryHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/bom-entries")
		defer span.End()

		var req domain.BOMEntryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		e, err := svc.CreateBOMEntry(ctx, UserIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

func updateBOMEntryHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/bom-entries/{id}")
		defer span.End()

		var req domain.BOMEntryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		e, err := svc.UpdateBOMEntry(ctx, UserIDFromContext(ctx), chi.URLParam(r, "id"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func deleteBOMEntryHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/bom-entries/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")
		if err := svc.DeleteBOMEntry(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "Item da ficha técnica removido", ID: id})
	}
}

// ============================================================
// Resale pricing
// ============================================================

func listResaleEntriesHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/resale-entries")
		defer span.End()

		entries, err := svc.ListResaleEntries(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func createResaleEntryHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/resale-entries")
		defer span.End()

		var req domain.ResaleEntryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		e, err := svc.CreateResaleEntry(ctx, UserIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

func updateResaleEntryHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/resale-entries/{id}")
		defer span.End()

		var req domain.ResaleEntryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		e, err := svc.UpdateResaleEntry(ctx, UserIDFromContext(ctx), chi.URLParam(r, "id"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func deleteResaleEntryHandler(svc *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/resale-entries/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")
		if err := svc.DeleteResaleEntry(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "Item de revenda removido", ID: id})
	}
}
