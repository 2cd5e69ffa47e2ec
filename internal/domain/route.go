package domain

import (
	"fmt"
	"math"
)

// Represents a job placed on a crew route, with simulated timing.
// Times are minutes after midnight on the optimization date.
type RoutedJob struct {
	Job
	CrewID           string
	OrderInRoute     int
	ArrivalMinutes   float64
	DepartureMinutes float64
	TravelMinutes    float64
	TravelMiles      float64
}

func (r RoutedJob) EstimatedArrival() string   { return ClockTime(r.ArrivalMinutes) }
func (r RoutedJob) EstimatedDeparture() string { return ClockTime(r.DepartureMinutes) }

// Represents the planned route for a single crew within one shift.
// A Route is the output of a routing algorithm and is immutable planning data.
// TotalDistanceMiles includes the return leg to base even though that leg is
// not scheduled.
type Route struct {
	CrewID             string
	CrewName           string
	Shift              Shift
	Jobs               []RoutedJob
	TotalJobs          int
	TotalDistanceMiles float64
	ReturnLegMiles     float64
	StartMinutes       float64
	EndMinutes         float64
	EfficiencyScore    int
	EndsAwayFromBase   bool
	SkippedJobIDs      []string
}

func (r Route) EstimatedStart() string { return ClockTime(r.StartMinutes) }
func (r Route) EstimatedEnd() string   { return ClockTime(r.EndMinutes) }

// FormattedDistance renders the total distance with one decimal, e.g. "12.3".
func (r Route) FormattedDistance() string {
	return fmt.Sprintf("%.1f", r.TotalDistanceMiles)
}

// JobIDs returns the ids of the routed jobs in visiting order.
func (r Route) JobIDs() []string {
	ids := make([]string, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

// ClockTime formats minutes after midnight as HH:MM, rounded to the nearest minute.
func ClockTime(minutes float64) string {
	m := int(math.Round(minutes))
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
