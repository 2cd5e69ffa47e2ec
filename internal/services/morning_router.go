package services

import (
	"cmp"
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
	"slices"
)

// RouteMorning plans morning routes far to near.
//
// Jobs are ordered by distance from home base, farthest first, and handed out
// by distribute. Each crew then visits its jobs in that order; a job that
// would run past the end of the shift is skipped and never offered to
// another crew. The first leg takes the fixed first-stop time.
func RouteMorning(
	jobs []domain.Job,
	crews []domain.Crew,
	model ports.DistanceModel,
	cfg config.Engine,
	distribute DistributePolicy,
) []domain.Route {
	routes := make([]domain.Route, 0, len(crews))
	if len(crews) == 0 {
		return routes
	}
	if distribute == nil {
		distribute = RoundRobin
	}

	base := cfg.Base().Location
	sorted := slices.Clone(jobs)
	slices.SortStableFunc(sorted, func(a, b domain.Job) int {
		return cmp.Compare(model.DistanceMiles(base, b.Coords()), model.DistanceMiles(base, a.Coords()))
	})

	buckets := distribute(sorted, len(crews))
	for i, crew := range crews {
		s := newScheduler(crew, domain.ShiftMorning, cfg, model, true)
		if i < len(buckets) {
			for _, job := range buckets[i] {
				stop, ok := s.plan(job)
				if !ok {
					s.skip(job)
					continue
				}
				s.accept(stop)
			}
		}
		routes = append(routes, s.finish())
	}
	return routes
}
