package handlers

import (
	"context"
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/services"
	"errors"
	"net/http"
	"strings"
	"time"
)

type OptimizationHandler struct {
	Planner   *services.DayPlanner
	Optimizer *services.Optimizer
	// Timeout bounds one optimization request. Zero means no limit.
	Timeout time.Duration
}

// Optimize plans the stored jobs of a day. Engine failures are reported in
// the body with success=false; collaborator failures map to 5xx.
func (h *OptimizationHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	res, err := h.Planner.PlanDay(ctx, services.PlanDayRequest{
		Date:          date,
		Persist:       req.Persist,
		RoadDistances: req.RoadDistances,
	})
	switch {
	case errors.Is(err, services.ErrRoadDistancesUnavailable):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "optimization timed out")
		return
	case err != nil:
		obs.Logger(ctx).Error().Err(err).Msg("plan day failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizationFrom(res))
}

// Preview runs the engine on a caller-supplied snapshot without reading or
// writing any store.
func (h *OptimizationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	jobs := make([]domain.Job, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		dj, err := j.ToDomain()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		jobs = append(jobs, dj)
	}
	if dups := domain.DuplicateJobIDs(jobs); len(dups) > 0 {
		writeError(w, r, http.StatusBadRequest, "duplicate job ids: "+strings.Join(dups, ", "))
		return
	}
	crews := make([]domain.Crew, 0, len(req.Crews))
	for _, c := range req.Crews {
		dc, err := c.ToDomain()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		crews = append(crews, dc)
	}

	res := h.Optimizer.Optimize(services.Request{Date: date, Jobs: jobs, Crews: crews})
	writeJSON(w, r, http.StatusOK, dto.OptimizationFrom(res))
}
