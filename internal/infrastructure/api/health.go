package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler provides a basic liveness check
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, logger, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// readyHandler pings every backing store
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func readyHandler(checkers map[string]ports.HealthChecker, logger zerolog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		response := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checkers[name].Ping(ctx); err != nil {
				logger.Error().Err(err).Str("check", name).Msg("Readiness check failed")
				response.Status = "unavailable"
				response.Checks[name] = "unavailable"
				continue
			}
			response.Checks[name] = "ok"
		}

		status := http.StatusOK
		if response.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, logger, status, response)
	}
}
