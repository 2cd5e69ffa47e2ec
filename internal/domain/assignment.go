package domain

import "time"

// Write-back record for one job of a run. Applying the same assignment twice
// is harmless: the store simply overwrites the previous values. An empty
// CrewID clears any earlier routing of the job.
type Assignment struct {
	JobID            string
	CrewID           string
	Shift            Shift
	OrderInRoute     int
	EstimatedArrival time.Time
}

// Clears reports whether the record removes a previous assignment.
func (a Assignment) Clears() bool { return a.CrewID == "" }

// Notification payload describing one crew's schedule for the day.
type RouteEvent struct {
	RunID          string    `json:"run_id"`
	Date           string    `json:"date"`
	CrewID         string    `json:"crew_id"`
	Shift          Shift     `json:"shift"`
	JobIDs         []string  `json:"job_ids"`
	EstimatedStart string    `json:"estimated_start"`
	EstimatedEnd   string    `json:"estimated_end"`
	PublishedAt    time.Time `json:"published_at"`
}

// Assignments flattens a successful result into write-back records: one per
// routed job, with arrival times anchored on the result date, followed by a
// clearing record per unassigned job.
func (r *OptimizationResult) Assignments() []Assignment {
	if r == nil || !r.Success {
		return nil
	}

	day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())

	out := make([]Assignment, 0)
	for _, route := range r.Routes() {
		for _, j := range route.Jobs {
			out = append(out, Assignment{
				JobID:            j.ID,
				CrewID:           route.CrewID,
				Shift:            route.Shift,
				OrderInRoute:     j.OrderInRoute,
				EstimatedArrival: day.Add(time.Duration(j.ArrivalMinutes * float64(time.Minute))).Round(time.Minute),
			})
		}
	}
	for _, u := range r.Unassigned {
		out = append(out, Assignment{JobID: u.ID, Shift: u.Shift})
	}
	return out
}
