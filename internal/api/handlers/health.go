package handlers

import (
	"context"
	"crew-route-service/internal/platform/obs"
	"net/http"
	"time"
)

// HealthHandler reports liveness. When Check is set, a failing check turns
// the response into 503.
type HealthHandler struct {
	Check func(ctx context.Context) error
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Check(ctx); err != nil {
			obs.Logger(ctx).Warn().Err(err).Msg("health check failed")
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
