package services

import (
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"math"

	"gonum.org/v1/gonum/stat"
)

// EfficiencyScore rates a route from 0 to 100 by blending jobs per mile,
// the share of high-priority jobs and shift utilization.
func EfficiencyScore(r domain.Route, cfg config.Engine) int {
	n := len(r.Jobs)
	if n == 0 {
		return 0
	}

	high := 0
	for _, j := range r.Jobs {
		if j.IsHighPriority() {
			high++
		}
	}

	jobsPerMile := float64(n) / math.Max(r.TotalDistanceMiles, 1)
	priority := float64(high) / float64(n)
	utilization := (r.EndMinutes - r.StartMinutes) / cfg.ShiftLengthMinutes

	w := cfg.EfficiencyWeights
	score := math.Round(100 * (w.JobsPerMile*jobsPerMile + w.Priority*priority + w.Utilization*utilization))
	return int(math.Max(0, math.Min(100, score)))
}

// ComputeMetrics aggregates a run. Savings are measured against a flat
// per-job mileage baseline.
func ComputeMetrics(routes []domain.Route, inputJobs, unassigned int, cfg config.Engine) domain.Metrics {
	m := domain.Metrics{
		InputJobs:      inputJobs,
		UnassignedJobs: unassigned,
		TotalRoutes:    len(routes),
	}

	distances := make([]float64, 0, len(routes))
	scores := make([]float64, 0, len(routes))
	for _, r := range routes {
		m.TotalJobs += r.TotalJobs
		m.TotalDistanceMiles += r.TotalDistanceMiles
		distances = append(distances, r.TotalDistanceMiles)
		scores = append(scores, float64(r.EfficiencyScore))
	}

	m.BaselineDistanceMiles = cfg.BaselineMilesPerJob * float64(m.TotalJobs)
	m.DistanceSavedMiles = math.Max(0, m.BaselineDistanceMiles-m.TotalDistanceMiles)
	if m.BaselineDistanceMiles > 0 {
		m.PercentImprovement = m.DistanceSavedMiles / m.BaselineDistanceMiles * 100
	}
	m.FuelSavedGallons = m.DistanceSavedMiles * cfg.FuelGallonsPerMile
	m.CostSaved = m.FuelSavedGallons * cfg.FuelCostPerGallon
	if cfg.AverageSpeedMph > 0 {
		m.TimeSavedMinutes = m.DistanceSavedMiles / cfg.AverageSpeedMph * 60
	}

	if len(routes) > 0 {
		m.AverageEfficiency = stat.Mean(scores, nil)
		_, m.DistanceStdDevMiles = stat.PopMeanStdDev(distances, nil)
	}
	return m
}
