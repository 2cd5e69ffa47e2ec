package handlers

import (
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"net/http"
	"time"
)

// JobHandler exposes read-only job and crew listings.
type JobHandler struct {
	Jobs  ports.JobRepository
	Crews ports.CrewRepository
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	jobs, err := h.Jobs.ListJobs(r.Context(), date)
	if err != nil {
		obs.Logger(r.Context()).Error().Err(err).Msg("list jobs failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListJobsResponse{
		Date: date.Format(time.DateOnly),
		Jobs: make([]dto.Job, 0, len(jobs)),
	}
	for _, j := range jobs {
		res.Jobs = append(res.Jobs, dto.JobFrom(j))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *JobHandler) ListCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := h.Crews.ListCrews(r.Context())
	if err != nil {
		obs.Logger(r.Context()).Error().Err(err).Msg("list crews failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCrewsResponse{Crews: make([]dto.Crew, 0, len(crews))}
	for _, c := range crews {
		res.Crews = append(res.Crews, dto.CrewFrom(c))
	}
	writeJSON(w, r, http.StatusOK, res)
}
