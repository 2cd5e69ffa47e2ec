package services

import (
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEfficiencyScore(t *testing.T) {
	cfg := config.DefaultEngine()

	cases := []struct {
		name  string
		route domain.Route
		want  int
	}{
		{
			name:  "empty",
			route: domain.Route{StartMinutes: 480, EndMinutes: 480},
			want:  0,
		},
		{
			name: "half high priority, full shift",
			route: domain.Route{
				Jobs: []domain.RoutedJob{
					{Job: domain.Job{Priority: domain.PriorityHigh}},
					{Job: domain.Job{}},
				},
				TotalDistanceMiles: 20,
				StartMinutes:       480,
				EndMinutes:         720,
			},
			// 0.4*0.1 + 0.3*0.5 + 0.3*1
			want: 49,
		},
		{
			name: "clamped",
			route: domain.Route{
				Jobs:         make([]domain.RoutedJob, 5),
				StartMinutes: 480,
				EndMinutes:   720,
			},
			want: 100,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, EfficiencyScore(c.route, cfg))
		})
	}
}

func TestEfficiencyScoreCustomWeights(t *testing.T) {
	cfg := config.DefaultEngine()
	cfg.EfficiencyWeights = config.EfficiencyWeights{Utilization: 1}

	r := domain.Route{
		Jobs:               make([]domain.RoutedJob, 1),
		TotalDistanceMiles: 3,
		StartMinutes:       780,
		EndMinutes:         900,
	}
	assert.Equal(t, 50, EfficiencyScore(r, cfg))
}

func TestComputeMetrics(t *testing.T) {
	cfg := config.DefaultEngine()
	routes := []domain.Route{
		{TotalJobs: 3, TotalDistanceMiles: 12, EfficiencyScore: 40},
		{TotalJobs: 1, TotalDistanceMiles: 4, EfficiencyScore: 20},
	}

	m := ComputeMetrics(routes, 5, 1, cfg)
	assert.Equal(t, 4, m.TotalJobs)
	assert.Equal(t, 5, m.InputJobs)
	assert.Equal(t, 1, m.UnassignedJobs)
	assert.Equal(t, 2, m.TotalRoutes)
	assert.InDelta(t, 16.0, m.TotalDistanceMiles, 1e-9)
	assert.InDelta(t, 40.0, m.BaselineDistanceMiles, 1e-9)
	assert.InDelta(t, 24.0, m.DistanceSavedMiles, 1e-9)
	assert.InDelta(t, 60.0, m.PercentImprovement, 1e-9)
	assert.InDelta(t, 1.92, m.FuelSavedGallons, 1e-9)
	assert.InDelta(t, 8.64, m.CostSaved, 1e-9)
	assert.InDelta(t, 57.6, m.TimeSavedMinutes, 1e-9)
	assert.InDelta(t, 30.0, m.AverageEfficiency, 1e-9)
	assert.InDelta(t, 4.0, m.DistanceStdDevMiles, 1e-9)
}

func TestComputeMetricsNoSavings(t *testing.T) {
	cfg := config.DefaultEngine()

	m := ComputeMetrics([]domain.Route{{TotalJobs: 1, TotalDistanceMiles: 25}}, 1, 0, cfg)
	assert.Equal(t, 0.0, m.DistanceSavedMiles)
	assert.Equal(t, 0.0, m.PercentImprovement)
	assert.Equal(t, 0.0, m.DistanceStdDevMiles)

	empty := ComputeMetrics(nil, 0, 0, cfg)
	assert.False(t, math.IsNaN(empty.AverageEfficiency))
	assert.Equal(t, domain.Metrics{}, empty)
}
