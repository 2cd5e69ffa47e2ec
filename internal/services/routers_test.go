package services

import (
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteMorningFarthestFirst(t *testing.T) {
	cfg := config.DefaultEngine()
	jobs := []domain.Job{
		job("near", 40.03, -75.0, domain.TimeWindowMorning),
		job("far", 40.10, -75.0, domain.TimeWindowMorning),
	}
	crews := []domain.Crew{{ID: "c1", Name: "Alpha"}}

	routes := RouteMorning(jobs, crews, haversine(), cfg, nil)
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, []string{"far", "near"}, r.JobIDs())
	assert.Equal(t, "Alpha", r.CrewName)
	assert.Equal(t, domain.ShiftMorning, r.Shift)

	first := r.Jobs[0]
	assert.Equal(t, 1, first.OrderInRoute)
	assert.InDelta(t, 20.0, first.TravelMinutes, 1e-9)
	assert.Equal(t, "08:20", first.EstimatedArrival())
	assert.InDelta(t, 6.91, first.TravelMiles, 0.01)

	second := r.Jobs[1]
	assert.Equal(t, 2, second.OrderInRoute)
	// Buffer after the first job, then model travel time.
	assert.InDelta(t, 575+second.TravelMinutes, second.ArrivalMinutes, 1e-9)
	assert.InDelta(t, 4.84, second.TravelMiles, 0.01)

	assert.InDelta(t, first.TravelMiles+second.TravelMiles+r.ReturnLegMiles, r.TotalDistanceMiles, 1e-9)
	assert.InDelta(t, second.DepartureMinutes, r.EndMinutes, 1e-9)
}

func TestRouteMorningSkipsJobsPastShiftEnd(t *testing.T) {
	cfg := config.DefaultEngine()
	jobs := make([]domain.Job, 0, 5)
	for _, id := range []string{"j1", "j2", "j3", "j4", "j5"} {
		jobs = append(jobs, job(id, 40.01, -75.0, domain.TimeWindowMorning))
	}

	routes := RouteMorning(jobs, []domain.Crew{{ID: "c1"}}, haversine(), cfg, nil)
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, []string{"j1", "j2", "j3"}, r.JobIDs())
	assert.Equal(t, []string{"j4", "j5"}, r.SkippedJobIDs)
	assert.Equal(t, "11:50", r.EstimatedEnd())
	for _, j := range r.Jobs {
		assert.LessOrEqual(t, j.DepartureMinutes, cfg.ShiftEnd(domain.ShiftMorning))
	}
}

func TestRouteMorningRoundRobin(t *testing.T) {
	cfg := config.DefaultEngine()
	jobs := []domain.Job{
		job("d1", 40.01, -75.0, ""),
		job("d4", 40.04, -75.0, ""),
		job("d2", 40.02, -75.0, ""),
		job("d3", 40.03, -75.0, ""),
	}
	crews := []domain.Crew{{ID: "c1"}, {ID: "c2"}}

	routes := RouteMorning(jobs, crews, haversine(), cfg, nil)
	require.Len(t, routes, 2)
	assert.Equal(t, []string{"d4", "d2"}, routes[0].JobIDs())
	assert.Equal(t, []string{"d3", "d1"}, routes[1].JobIDs())
}

func TestRouteAfternoonNearestNeighbor(t *testing.T) {
	cfg := config.DefaultEngine()
	jobs := []domain.Job{
		job("p2", 39.98, -75.0, domain.TimeWindowAfternoon),
		job("p3", 40.025, -75.0, domain.TimeWindowAfternoon),
		job("p1", 40.01, -75.0, domain.TimeWindowAfternoon),
	}

	routes := RouteAfternoon(jobs, []domain.Crew{{ID: "c1"}}, haversine(), cfg, nil)
	require.Len(t, routes, 1)

	r := routes[0]
	// Sorted by base distance the order would be p1, p2, p3.
	assert.Equal(t, []string{"p1", "p3", "p2"}, r.JobIDs())
	assert.True(t, r.EndsAwayFromBase)
	assert.Equal(t, "13:00", r.EstimatedStart())

	for i := 1; i < len(r.Jobs); i++ {
		assert.Greater(t, r.Jobs[i].ArrivalMinutes, r.Jobs[i-1].DepartureMinutes)
	}
}

func TestRouteAfternoonSharedPool(t *testing.T) {
	cfg := config.DefaultEngine()
	jobs := make([]domain.Job, 0, 5)
	for _, id := range []string{"j1", "j2", "j3", "j4", "j5"} {
		jobs = append(jobs, job(id, 40.01, -75.0, domain.TimeWindowAfternoon))
	}
	crews := []domain.Crew{{ID: "c1"}, {ID: "c2"}}

	routes := RouteAfternoon(jobs, crews, haversine(), cfg, nil)
	require.Len(t, routes, 2)

	assert.Equal(t, []string{"j1", "j2", "j3"}, routes[0].JobIDs())
	assert.Equal(t, []string{"j4"}, routes[0].SkippedJobIDs)
	assert.Equal(t, []string{"j4", "j5"}, routes[1].JobIDs())
	assert.Empty(t, routes[1].SkippedJobIDs)
}

func TestRouteAfternoonEmptyPool(t *testing.T) {
	cfg := config.DefaultEngine()

	routes := RouteAfternoon(nil, []domain.Crew{{ID: "c1"}}, haversine(), cfg, nil)
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Empty(t, r.Jobs)
	assert.Equal(t, "0.0", r.FormattedDistance())
	assert.Equal(t, r.EstimatedStart(), r.EstimatedEnd())
	assert.False(t, r.EndsAwayFromBase)
	assert.Equal(t, 0, r.EfficiencyScore)
}

func TestRoutersWithoutCrews(t *testing.T) {
	cfg := config.DefaultEngine()
	jobs := []domain.Job{job("j1", 40.01, -75.0, "")}

	assert.Empty(t, RouteMorning(jobs, nil, haversine(), cfg, nil))
	assert.Empty(t, RouteAfternoon(jobs, nil, haversine(), cfg, nil))
}
