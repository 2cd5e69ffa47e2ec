package services

import (
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
)

// scheduler walks one crew through its shift, accepting jobs while they
// finish before the shift ends.
type scheduler struct {
	cfg        config.Engine
	model      ports.DistanceModel
	base       domain.Coordinates
	fixedFirst bool

	route    domain.Route
	clock    float64
	location domain.Coordinates
	shiftEnd float64
}

func newScheduler(crew domain.Crew, shift domain.Shift, cfg config.Engine, model ports.DistanceModel, fixedFirst bool) *scheduler {
	base := cfg.Base().Location
	start := cfg.ShiftStart(shift)
	return &scheduler{
		cfg:        cfg,
		model:      model,
		base:       base,
		fixedFirst: fixedFirst,
		route: domain.Route{
			CrewID:       crew.ID,
			CrewName:     crew.Name,
			Shift:        shift,
			Jobs:         []domain.RoutedJob{},
			StartMinutes: start,
			EndMinutes:   start,
		},
		clock:    start,
		location: base,
		shiftEnd: cfg.ShiftEnd(shift),
	}
}

// plan computes the timing of job as the next stop. ok is false when the
// job would finish after the shift ends.
func (s *scheduler) plan(job domain.Job) (stop domain.RoutedJob, ok bool) {
	to := job.Coords()
	miles := s.model.DistanceMiles(s.location, to)

	travel := s.model.TravelMinutes(s.location, to)
	if s.fixedFirst && len(s.route.Jobs) == 0 {
		travel = s.cfg.FirstStopMinutes
	}

	arrival := s.clock + travel
	departure := arrival + float64(job.Duration(s.cfg.DefaultJobMinutes))
	if departure > s.shiftEnd {
		return domain.RoutedJob{}, false
	}

	job.DurationMinutes = job.Duration(s.cfg.DefaultJobMinutes)
	return domain.RoutedJob{
		Job:              job,
		CrewID:           s.route.CrewID,
		OrderInRoute:     len(s.route.Jobs) + 1,
		ArrivalMinutes:   arrival,
		DepartureMinutes: departure,
		TravelMinutes:    travel,
		TravelMiles:      miles,
	}, true
}

func (s *scheduler) accept(stop domain.RoutedJob) {
	s.route.Jobs = append(s.route.Jobs, stop)
	s.route.TotalDistanceMiles += stop.TravelMiles
	s.route.EndMinutes = stop.DepartureMinutes
	s.clock = stop.DepartureMinutes + s.cfg.BufferMinutes
	s.location = stop.Coords()
}

func (s *scheduler) skip(job domain.Job) {
	s.route.SkippedJobIDs = append(s.route.SkippedJobIDs, job.ID)
}

// finish closes the route: the drive home counts toward distance but not
// toward the schedule.
func (s *scheduler) finish() domain.Route {
	r := s.route
	r.TotalJobs = len(r.Jobs)
	if r.TotalJobs > 0 {
		r.ReturnLegMiles = s.model.DistanceMiles(s.location, s.base)
		r.TotalDistanceMiles += r.ReturnLegMiles
	}
	r.EfficiencyScore = EfficiencyScore(r, s.cfg)
	return r
}
