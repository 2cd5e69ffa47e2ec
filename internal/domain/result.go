package domain

import "time"

type UnassignedReason string

const (
	// The job's shift had no crews at all.
	ReasonNoCrew UnassignedReason = "no_crew_available"
	// Every crew that was offered the job ran out of shift time.
	ReasonShiftBudget UnassignedReason = "exceeds_shift_budget"
)

// Input job that no route accommodated, with the pool it was classified into.
type UnassignedJob struct {
	Job
	Shift  Shift
	Reason UnassignedReason
}

// Aggregate figures for one optimization run. Savings are measured against a
// fixed per-job mileage baseline, not a measured unoptimized schedule.
type Metrics struct {
	TotalJobs             int
	InputJobs             int
	UnassignedJobs        int
	TotalRoutes           int
	TotalDistanceMiles    float64
	BaselineDistanceMiles float64
	DistanceSavedMiles    float64
	PercentImprovement    float64
	FuelSavedGallons      float64
	CostSaved             float64
	TimeSavedMinutes      float64
	AverageEfficiency     float64
	DistanceStdDevMiles   float64
}

// Output of a single optimization call. It holds no persistent identity;
// RunID only correlates logs, events and write-backs of the same call.
type OptimizationResult struct {
	RunID      string
	Date       time.Time
	Success    bool
	Error      string
	Morning    []Route
	Afternoon  []Route
	Metrics    Metrics
	Unassigned []UnassignedJob
	Warnings   []string
	Timestamp  time.Time
}

// Routes returns morning routes followed by afternoon routes.
func (r *OptimizationResult) Routes() []Route {
	out := make([]Route, 0, len(r.Morning)+len(r.Afternoon))
	out = append(out, r.Morning...)
	return append(out, r.Afternoon...)
}
