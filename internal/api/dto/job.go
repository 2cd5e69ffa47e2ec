package dto

import (
	"crew-route-service/internal/domain"
)

// Job is the wire shape of a job, used in listings and preview requests.
type Job struct {
	ID              string   `json:"id"`
	Customer        string   `json:"customer"`
	Address         string   `json:"address"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Priority        string   `json:"priority,omitempty"`
	TimeWindow      string   `json:"time_window,omitempty"`
}

type ListJobsResponse struct {
	Date string `json:"date"`
	Jobs []Job  `json:"jobs"`
}

type Crew struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shift string `json:"shift,omitempty"`
}

type ListCrewsResponse struct {
	Crews []Crew `json:"crews"`
}

func JobFrom(j domain.Job) Job {
	out := Job{
		ID:              j.ID,
		Customer:        j.Customer,
		Address:         j.Address,
		DurationMinutes: j.DurationMinutes,
		Priority:        string(j.Priority),
		TimeWindow:      string(j.TimeWindow),
	}
	if j.Location != nil {
		lat, lng := j.Location.Lat, j.Location.Lng
		out.Lat, out.Lng = &lat, &lng
	}
	return out
}

func CrewFrom(c domain.Crew) Crew {
	return Crew{ID: c.ID, Name: c.Name, Shift: string(c.Shift)}
}

// ToDomain validates a job from a request body.
func (j Job) ToDomain() (domain.Job, error) {
	return domain.NewJob(domain.JobInput{
		ID:              j.ID,
		Customer:        j.Customer,
		Address:         j.Address,
		Lat:             j.Lat,
		Lng:             j.Lng,
		DurationMinutes: j.DurationMinutes,
		Priority:        j.Priority,
		TimeWindow:      j.TimeWindow,
	})
}

func (c Crew) ToDomain() (domain.Crew, error) {
	return domain.NewCrew(c.ID, c.Name, c.Shift)
}
