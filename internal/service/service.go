// Package service provides the business logic layer (use cases).
// CatalogService validates and persists the pricing records; PricingService
// loads a user's records and runs them through the pricing engine.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var hundred = decimal.NewFromInt(100)

// isBackendFailure reports whether err came from the store rather than from
// the caller (bad input, unknown id, abandoned request).
func isBackendFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var (
		nf       *domain.ErrNotFound
		invalid  *domain.ErrValidation
		conflict *domain.ErrConflict
	)
	return !errors.As(err, &nf) && !errors.As(err, &invalid) && !errors.As(err, &conflict)
}

// finish records duration and failure for one operation and marks the span.
func finish(metrics *observability.Metrics, span trace.Span, op string, start time.Time, err error) {
	metrics.RecordRequestDuration(op, time.Since(start))
	if err == nil {
		return
	}
	span.RecordError(err)
	if isBackendFailure(err) {
		span.SetStatus(codes.Error, err.Error())
		metrics.IncrStoreError(op)
	}
}

func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &domain.ErrValidation{Field: field, Message: "is required"}
	}
	return v, nil
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ErrValidation{Field: field, Message: "is required"}
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &domain.ErrValidation{Field: field, Message: "must not be negative"}
	}
	return nil
}

func percent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return &domain.ErrValidation{Field: field, Message: "must be between 0 and 100"}
	}
	return nil
}
