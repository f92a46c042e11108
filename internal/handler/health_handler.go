package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/smsforge/campaign-service/internal/db"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db     *db.DB
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(database *db.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     database,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: map[string]string{"database": "healthy"},
	}
	status := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		h.logger.Error("database health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, response)
}
