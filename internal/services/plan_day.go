package services

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ModelBuilder prepares a distance model over the given points, typically by
// prefetching road distances.
type ModelBuilder func(ctx context.Context, points []domain.Coordinates) (ports.DistanceModel, error)

type PlanDayRequest struct {
	Date time.Time
	// Persist writes assignments back and publishes route events.
	Persist bool
	// RoadDistances routes on prefetched road distances instead of haversine.
	RoadDistances bool
}

// DayPlanner runs the optimizer against the stored jobs and crews of a day.
// Geocoder, RoadModel, Persister and Publisher are optional.
type DayPlanner struct {
	Jobs      ports.JobRepository
	Crews     ports.CrewRepository
	Geocoder  ports.Geocoder
	RoadModel ModelBuilder
	Persister *AssignmentPersister
	Publisher ports.EventPublisher
	Optimizer *Optimizer
}

// ErrRoadDistancesUnavailable is returned when road distances are requested
// but no provider is configured.
var ErrRoadDistancesUnavailable = errors.New("road distances are not configured")

// PlanDay loads the day's jobs and crews, fills in missing coordinates,
// optimizes, and, when asked, persists and announces the routes.
//
// Collaborator failures are returned as errors. Engine failures come back as
// a result with Success=false and are never persisted.
func (p *DayPlanner) PlanDay(ctx context.Context, req PlanDayRequest) (_ *domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "services.PlanDay")(&err)

	jobs, err := p.Jobs.ListJobs(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("plan day: list jobs: %w", err)
	}
	crews, err := p.Crews.ListCrews(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan day: list crews: %w", err)
	}

	if err := p.geocodeMissing(ctx, jobs); err != nil {
		return nil, fmt.Errorf("plan day: %w", err)
	}

	optReq := Request{Date: req.Date, Jobs: jobs, Crews: crews}
	if req.RoadDistances {
		if p.RoadModel == nil {
			return nil, fmt.Errorf("plan day: %w", ErrRoadDistancesUnavailable)
		}
		points := []domain.Coordinates{p.Optimizer.Config().Base().Location}
		for _, j := range jobs {
			if j.HasLocation() {
				points = append(points, *j.Location)
			}
		}
		model, err := p.RoadModel(ctx, points)
		if err != nil {
			return nil, fmt.Errorf("plan day: road distances: %w", err)
		}
		optReq.Model = model
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan day: %w", err)
	}
	res := p.Optimizer.Optimize(optReq)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan day: %w", err)
	}

	if !res.Success || !req.Persist {
		return res, nil
	}

	if p.Persister != nil {
		if err := p.Persister.Save(ctx, res.Assignments()); err != nil {
			return nil, fmt.Errorf("plan day: %w", err)
		}
	}
	p.publish(ctx, res)

	return res, nil
}

// geocodeMissing resolves jobs that have an address but no coordinates.
// Unresolved jobs are left as they are for the coordinate policy to handle.
func (p *DayPlanner) geocodeMissing(ctx context.Context, jobs []domain.Job) error {
	if p.Geocoder == nil {
		return nil
	}

	addresses := make([]string, 0)
	for _, j := range jobs {
		if !j.HasLocation() && strings.TrimSpace(j.Address) != "" {
			addresses = append(addresses, j.Address)
		}
	}
	if len(addresses) == 0 {
		return nil
	}

	found, err := p.Geocoder.Geocode(ctx, addresses)
	if err != nil {
		return fmt.Errorf("geocode: %w", err)
	}

	for i := range jobs {
		if jobs[i].HasLocation() {
			continue
		}
		if c, ok := found[jobs[i].Address]; ok {
			jobs[i].Location = &c
		}
	}
	return nil
}

// publish announces every non-empty route. Delivery is best effort: the
// assignments are already stored, so failures are only logged.
func (p *DayPlanner) publish(ctx context.Context, res *domain.OptimizationResult) {
	if p.Publisher == nil {
		return
	}

	date := res.Date.Format(time.DateOnly)
	for _, r := range res.Routes() {
		if len(r.Jobs) == 0 {
			continue
		}
		evt := domain.RouteEvent{
			RunID:          res.RunID,
			Date:           date,
			CrewID:         r.CrewID,
			Shift:          r.Shift,
			JobIDs:         r.JobIDs(),
			EstimatedStart: r.EstimatedStart(),
			EstimatedEnd:   r.EstimatedEnd(),
			PublishedAt:    time.Now().UTC(),
		}
		if err := p.Publisher.PublishRoute(ctx, evt); err != nil {
			obs.Logger(ctx).Warn().Err(err).Str("crew_id", r.CrewID).Str("run_id", res.RunID).Msg("route event not published")
		}
	}
}
