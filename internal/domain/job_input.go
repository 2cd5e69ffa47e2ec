package domain

import (
	"fmt"
	"math"
	"strings"
)

// JobInput is a job as it arrives from request bodies and data files, before
// validation.
type JobInput struct {
	ID              string
	Customer        string
	Address         string
	Lat             *float64
	Lng             *float64
	DurationMinutes int
	Priority        string
	TimeWindow      string
}

// NewJob validates in and converts it. Priority defaults to normal and the
// time window to flexible.
func NewJob(in JobInput) (Job, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return Job{}, fmt.Errorf("job: id must not be empty")
	}
	if in.DurationMinutes < 0 {
		return Job{}, fmt.Errorf("job %s: duration_minutes must not be negative", id)
	}

	j := Job{
		ID:              id,
		Customer:        in.Customer,
		Address:         strings.TrimSpace(in.Address),
		DurationMinutes: in.DurationMinutes,
		Priority:        PriorityNormal,
		TimeWindow:      TimeWindowFlexible,
	}

	switch {
	case in.Lat != nil && in.Lng != nil:
		c := Coordinates{Lat: *in.Lat, Lng: *in.Lng}
		if !c.Valid() {
			return Job{}, fmt.Errorf("job %s: coordinates %v,%v out of range", id, c.Lat, c.Lng)
		}
		j.Location = &c
	case in.Lat != nil || in.Lng != nil:
		return Job{}, fmt.Errorf("job %s: lat and lng must be given together", id)
	}

	switch p := Priority(strings.ToLower(strings.TrimSpace(in.Priority))); p {
	case "":
	case PriorityNormal, PriorityHigh:
		j.Priority = p
	default:
		return Job{}, fmt.Errorf("job %s: unknown priority %q", id, in.Priority)
	}

	switch w := TimeWindow(strings.ToLower(strings.TrimSpace(in.TimeWindow))); w {
	case "":
	case TimeWindowMorning, TimeWindowAfternoon, TimeWindowFlexible:
		j.TimeWindow = w
	default:
		return Job{}, fmt.Errorf("job %s: unknown time window %q", id, in.TimeWindow)
	}

	return j, nil
}

// Valid reports whether c is a finite point on the globe.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DuplicateJobIDs returns every id used by more than one job, once each, in
// order of first repetition.
func DuplicateJobIDs(jobs []Job) []string {
	seen := make(map[string]int, len(jobs))
	var dups []string
	for _, j := range jobs {
		seen[j.ID]++
		if seen[j.ID] == 2 {
			dups = append(dups, j.ID)
		}
	}
	return dups
}
