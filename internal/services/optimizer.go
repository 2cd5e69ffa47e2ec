package services

import (
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/metrics"
	"crew-route-service/internal/ports"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request is one optimization run's input snapshot.
type Request struct {
	Date  time.Time
	Jobs  []domain.Job
	Crews []domain.Crew
	// Model overrides the optimizer's distance model for this run.
	Model ports.DistanceModel
}

// Optimizer runs the routing engine. It performs no I/O and keeps no state
// between calls, so one instance may serve concurrent callers.
type Optimizer struct {
	cfg      config.Engine
	model    ports.DistanceModel
	policies Policies
	log      zerolog.Logger
	now      func() time.Time
}

func NewOptimizer(cfg config.Engine, model ports.DistanceModel, policies Policies, logger zerolog.Logger) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new optimizer: %w", err)
	}
	if model == nil {
		return nil, &config.ConfigurationError{Field: "distance_model", Reason: "must not be nil"}
	}
	return &Optimizer{
		cfg:      cfg,
		model:    model,
		policies: policies.withDefaults(),
		log:      logger,
		now:      time.Now,
	}, nil
}

// Config returns the engine settings the optimizer was built with.
func (o *Optimizer) Config() config.Engine { return o.cfg }

// Optimize assigns jobs to crews and schedules every route.
//
// Failures never escape as errors or panics: the result carries
// Success=false, the error text and empty route lists instead.
func (o *Optimizer) Optimize(req Request) (res *domain.OptimizationResult) {
	start := o.now()
	runID := uuid.NewString()
	log := o.log.With().Str("run_id", runID).Logger()

	defer func() {
		if r := recover(); r != nil {
			err := &ComputationError{Cause: r}
			log.Error().Err(err).Msg("optimization panicked")
			res = o.failure(runID, req.Date, err)
		}
		metrics.ObserveOptimization(res.Success, time.Since(start), unassignedByReason(res.Unassigned))
	}()

	model := o.model
	if req.Model != nil {
		model = req.Model
	}

	if dups := domain.DuplicateJobIDs(req.Jobs); len(dups) > 0 {
		err := &DataQualityError{JobIDs: dups, Reason: "duplicate job ids"}
		log.Warn().Err(err).Msg("optimization rejected")
		return o.failure(runID, req.Date, err)
	}

	warnings, err := o.checkCoordinates(req.Jobs)
	if err != nil {
		log.Warn().Err(err).Msg("optimization rejected")
		return o.failure(runID, req.Date, err)
	}

	jobs := make([]domain.Job, len(req.Jobs))
	for i, j := range req.Jobs {
		j.DurationMinutes = j.Duration(o.cfg.DefaultJobMinutes)
		jobs[i] = j
	}

	pools := ClassifyJobs(jobs, o.policies.SplitFlexible)
	crews := PartitionCrews(req.Crews)

	morning := RouteMorning(pools.Morning, crews.Morning, model, o.cfg, o.policies.DistributeMorning)
	afternoon := RouteAfternoon(pools.Afternoon, crews.Afternoon, model, o.cfg, o.policies.SeedAfternoon)

	res = &domain.OptimizationResult{
		RunID:     runID,
		Date:      req.Date,
		Success:   true,
		Morning:   morning,
		Afternoon: afternoon,
		Warnings:  warnings,
		Timestamp: o.now(),
	}
	res.Unassigned = DetectUnassigned(jobs, pools, crews, res.Routes())
	res.Metrics = ComputeMetrics(res.Routes(), len(jobs), len(res.Unassigned), o.cfg)

	log.Info().
		Int("jobs", len(jobs)).
		Int("crews", len(req.Crews)).
		Int("routed", res.Metrics.TotalJobs).
		Int("unassigned", len(res.Unassigned)).
		Float64("miles", res.Metrics.TotalDistanceMiles).
		Dur("took", time.Since(start)).
		Msg("optimization complete")

	return res
}

// checkCoordinates applies the missing-coordinate policy. Under degrade it
// returns one warning per affected job.
func (o *Optimizer) checkCoordinates(jobs []domain.Job) ([]string, error) {
	missing := make([]string, 0)
	for _, j := range jobs {
		if !j.HasLocation() {
			missing = append(missing, j.ID)
		}
	}
	if len(missing) == 0 {
		return []string{}, nil
	}

	if o.cfg.MissingCoordinates == config.CoordinatesStrict {
		return nil, &DataQualityError{JobIDs: missing, Reason: "jobs without coordinates"}
	}

	warnings := make([]string, 0, len(missing))
	for _, id := range missing {
		warnings = append(warnings, fmt.Sprintf("job %s has no coordinates; routed as (0,0)", id))
	}
	return warnings, nil
}

func (o *Optimizer) failure(runID string, date time.Time, err error) *domain.OptimizationResult {
	return &domain.OptimizationResult{
		RunID:      runID,
		Date:       date,
		Success:    false,
		Error:      err.Error(),
		Morning:    []domain.Route{},
		Afternoon:  []domain.Route{},
		Unassigned: []domain.UnassignedJob{},
		Warnings:   []string{},
		Timestamp:  o.now(),
	}
}

func unassignedByReason(jobs []domain.UnassignedJob) map[string]int {
	out := make(map[string]int)
	for _, j := range jobs {
		out[string(j.Reason)]++
	}
	return out
}
