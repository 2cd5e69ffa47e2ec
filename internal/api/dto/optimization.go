package dto

import (
	"crew-route-service/internal/domain"
	"math"
	"time"
)

type OptimizeRequest struct {
	Date          string `json:"date"`
	Persist       bool   `json:"persist"`
	RoadDistances bool   `json:"road_distances"`
}

type PreviewRequest struct {
	Date  string `json:"date"`
	Jobs  []Job  `json:"jobs"`
	Crews []Crew `json:"crews"`
}

type RoutedJob struct {
	ID                 string   `json:"id"`
	Customer           string   `json:"customer"`
	Address            string   `json:"address"`
	Lat                *float64 `json:"lat,omitempty"`
	Lng                *float64 `json:"lng,omitempty"`
	Priority           string   `json:"priority"`
	DurationMinutes    int      `json:"duration_minutes"`
	OrderInRoute       int      `json:"order_in_route"`
	EstimatedArrival   string   `json:"estimated_arrival"`
	EstimatedDeparture string   `json:"estimated_departure"`
	TravelMinutes      int      `json:"travel_time_minutes"`
	TravelMiles        float64  `json:"travel_distance_miles"`
}

type Route struct {
	CrewID           string      `json:"crew_id"`
	CrewName         string      `json:"crew_name"`
	Shift            string      `json:"shift"`
	Jobs             []RoutedJob `json:"jobs"`
	TotalJobs        int         `json:"total_jobs"`
	TotalDistance    string      `json:"total_distance"`
	EstimatedStart   string      `json:"estimated_start"`
	EstimatedEnd     string      `json:"estimated_end"`
	EfficiencyScore  int         `json:"efficiency_score"`
	EndsAwayFromBase bool        `json:"ends_away_from_base,omitempty"`
	SkippedJobIDs    []string    `json:"skipped_job_ids,omitempty"`
}

// UnassignedJob carries the full job so it can be scheduled by hand.
type UnassignedJob struct {
	Job
	Shift  string `json:"shift"`
	Reason string `json:"reason"`
}

type Metrics struct {
	TotalJobs          int     `json:"total_jobs"`
	InputJobs          int     `json:"input_jobs"`
	UnassignedJobs     int     `json:"unassigned_jobs"`
	TotalRoutes        int     `json:"total_routes"`
	TotalDistance      float64 `json:"total_distance"`
	BaselineDistance   float64 `json:"baseline_distance"`
	DistanceSaved      float64 `json:"distance_saved"`
	PercentImprovement float64 `json:"percent_improvement"`
	FuelSavedGallons   float64 `json:"fuel_saved_gallons"`
	CostSaved          float64 `json:"cost_saved"`
	TimeSavedMinutes   float64 `json:"time_saved_minutes"`
	AverageEfficiency  float64 `json:"average_efficiency"`
	DistanceStdDev     float64 `json:"distance_std_dev"`
}

type OptimizationResponse struct {
	RunID           string          `json:"run_id"`
	Date            string          `json:"date"`
	Success         bool            `json:"success"`
	Error           string          `json:"error,omitempty"`
	MorningRoutes   []Route         `json:"morning_routes"`
	AfternoonRoutes []Route         `json:"afternoon_routes"`
	Metrics         Metrics         `json:"metrics"`
	UnassignedJobs  []UnassignedJob `json:"unassigned_jobs"`
	Warnings        []string        `json:"warnings"`
	Timestamp       time.Time       `json:"timestamp"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func routesFrom(routes []domain.Route) []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		jobs := make([]RoutedJob, 0, len(r.Jobs))
		for _, j := range r.Jobs {
			wire := JobFrom(j.Job)
			jobs = append(jobs, RoutedJob{
				ID:                 j.ID,
				Customer:           j.Customer,
				Address:            j.Address,
				Lat:                wire.Lat,
				Lng:                wire.Lng,
				Priority:           string(j.Priority),
				DurationMinutes:    j.DurationMinutes,
				OrderInRoute:       j.OrderInRoute,
				EstimatedArrival:   j.EstimatedArrival(),
				EstimatedDeparture: j.EstimatedDeparture(),
				TravelMinutes:      int(math.Round(j.TravelMinutes)),
				TravelMiles:        round2(j.TravelMiles),
			})
		}
		out = append(out, Route{
			CrewID:           r.CrewID,
			CrewName:         r.CrewName,
			Shift:            string(r.Shift),
			Jobs:             jobs,
			TotalJobs:        r.TotalJobs,
			TotalDistance:    r.FormattedDistance(),
			EstimatedStart:   r.EstimatedStart(),
			EstimatedEnd:     r.EstimatedEnd(),
			EfficiencyScore:  r.EfficiencyScore,
			EndsAwayFromBase: r.EndsAwayFromBase,
			SkippedJobIDs:    r.SkippedJobIDs,
		})
	}
	return out
}

// OptimizationFrom renders an engine result for the API.
func OptimizationFrom(res *domain.OptimizationResult) OptimizationResponse {
	m := res.Metrics
	out := OptimizationResponse{
		RunID:           res.RunID,
		Success:         res.Success,
		Error:           res.Error,
		MorningRoutes:   routesFrom(res.Morning),
		AfternoonRoutes: routesFrom(res.Afternoon),
		Metrics: Metrics{
			TotalJobs:          m.TotalJobs,
			InputJobs:          m.InputJobs,
			UnassignedJobs:     m.UnassignedJobs,
			TotalRoutes:        m.TotalRoutes,
			TotalDistance:      round2(m.TotalDistanceMiles),
			BaselineDistance:   round2(m.BaselineDistanceMiles),
			DistanceSaved:      round2(m.DistanceSavedMiles),
			PercentImprovement: round2(m.PercentImprovement),
			FuelSavedGallons:   round2(m.FuelSavedGallons),
			CostSaved:          round2(m.CostSaved),
			TimeSavedMinutes:   round2(m.TimeSavedMinutes),
			AverageEfficiency:  round2(m.AverageEfficiency),
			DistanceStdDev:     round2(m.DistanceStdDevMiles),
		},
		UnassignedJobs: make([]UnassignedJob, 0, len(res.Unassigned)),
		Warnings:       res.Warnings,
		Timestamp:      res.Timestamp,
	}
	if !res.Date.IsZero() {
		out.Date = res.Date.Format(time.DateOnly)
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	for _, u := range res.Unassigned {
		out.UnassignedJobs = append(out.UnassignedJobs, UnassignedJob{
			Job:    JobFrom(u.Job),
			Shift:  string(u.Shift),
			Reason: string(u.Reason),
		})
	}
	return out
}
