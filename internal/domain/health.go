package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// PricingMetrics is returned by GET /v1/metrics/pricing.
type PricingMetrics struct {
	ReportsBuilt     int64   `json:"reportsBuilt"`
	ProductsPriced   int64   `json:"productsPriced"`
	InfeasibleQuotes int64   `json:"infeasibleQuotes"`
	InfeasibleRate   float64 `json:"infeasibleRate"`
	StoreErrors      int64   `json:"storeErrors"`
	Mutations        int64   `json:"mutations"`
	Period           string  `json:"period"`
}

// SuccessResponse wraps a successful single-entity response.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
