package services

import (
	"context"
	"time"

	"retailboard/internal/store"
)

// HealthStatus describes service health and the loaded dataset.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	RowCount  int       `json:"row_count"`
	Countries int       `json:"countries"`
	MinDate   time.Time `json:"min_date"`
	MaxDate   time.Time `json:"max_date"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthService reports readiness. The service is healthy once the dataset
// is loaded; an empty store is degraded, not down.
type HealthService struct {
	store   *store.Store
	version string
	started time.Time
}

// NewHealthService creates a new health service.
func NewHealthService(s *store.Store, version string) *HealthService {
	return &HealthService{
		store:   s,
		version: version,
		started: time.Now(),
	}
}

// Check returns the current health status.
func (h *HealthService) Check(ctx context.Context) HealthStatus {
	min, max := h.store.DateBounds()

	status := "healthy"
	if h.store.Len() == 0 {
		status = "degraded"
	}

	return HealthStatus{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		RowCount:  h.store.Len(),
		Countries: len(h.store.Countries()),
		MinDate:   min,
		MaxDate:   max,
		Timestamp: time.Now().UTC(),
	}
}
