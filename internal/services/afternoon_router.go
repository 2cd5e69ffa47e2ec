package services

import (
	"cmp"
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
	"slices"
)

// RouteAfternoon plans afternoon routes near to far with a greedy
// nearest-neighbor walk.
//
// Crews draw from one shared pool, one crew at a time, so earlier crews get
// first pick. A crew starts at the job chosen by seed and then always moves
// to the closest unclaimed job. Its route ends at the first candidate that
// would overrun the shift; that job stays in the pool for the next crew.
func RouteAfternoon(
	jobs []domain.Job,
	crews []domain.Crew,
	model ports.DistanceModel,
	cfg config.Engine,
	seed SeedPolicy,
) []domain.Route {
	routes := make([]domain.Route, 0, len(crews))
	if len(crews) == 0 {
		return routes
	}
	if seed == nil {
		seed = SeedByIndex
	}

	base := cfg.Base().Location
	sorted := slices.Clone(jobs)
	slices.SortStableFunc(sorted, func(a, b domain.Job) int {
		return cmp.Compare(model.DistanceMiles(base, a.Coords()), model.DistanceMiles(base, b.Coords()))
	})
	claimed := make([]bool, len(sorted))

	for i, crew := range crews {
		s := newScheduler(crew, domain.ShiftAfternoon, cfg, model, false)

		next := seed(i, sorted, claimed)
		for next >= 0 {
			stop, ok := s.plan(sorted[next])
			if !ok {
				s.skip(sorted[next])
				break
			}
			s.accept(stop)
			claimed[next] = true
			next = nearestUnclaimed(s.location, sorted, claimed, model)
		}

		r := s.finish()
		if n := len(r.Jobs); n > 0 {
			r.EndsAwayFromBase = r.Jobs[n-1].Coords().Key() != base.Key()
		}
		routes = append(routes, r)
	}
	return routes
}

// nearestUnclaimed returns the sorted index of the unclaimed job closest to
// from, preferring the lower index on ties, or -1 when all are claimed.
func nearestUnclaimed(from domain.Coordinates, sorted []domain.Job, claimed []bool, model ports.DistanceModel) int {
	best := -1
	bestMiles := 0.0
	for i, j := range sorted {
		if claimed[i] {
			continue
		}
		d := model.DistanceMiles(from, j.Coords())
		// Strict comparison keeps the lower index on ties.
		if best < 0 || d < bestMiles {
			best = i
			bestMiles = d
		}
	}
	return best
}
