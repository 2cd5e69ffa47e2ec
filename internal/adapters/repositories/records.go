package repositories

import (
	"crew-route-service/internal/domain"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// JobRecord is the JSON shape of a job in seed and input files.
type JobRecord struct {
	ID              string   `json:"id"`
	Customer        string   `json:"customer"`
	Address         string   `json:"address"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Priority        string   `json:"priority,omitempty"`
	TimeWindow      string   `json:"time_window,omitempty"`
	// Date is YYYY-MM-DD. Seeding requires it; one-off input files may omit it.
	Date string `json:"date,omitempty"`
}

// CrewRecord is the JSON shape of a crew.
type CrewRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shift string `json:"shift,omitempty"`
}

// ToDomain validates the record and converts it.
func (r JobRecord) ToDomain() (domain.Job, error) {
	return domain.NewJob(domain.JobInput{
		ID:              r.ID,
		Customer:        r.Customer,
		Address:         r.Address,
		Lat:             r.Lat,
		Lng:             r.Lng,
		DurationMinutes: r.DurationMinutes,
		Priority:        r.Priority,
		TimeWindow:      r.TimeWindow,
	})
}

// ScheduledDate parses the record date.
func (r JobRecord) ScheduledDate() (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}, fmt.Errorf("job %s: date: %w", r.ID, err)
	}
	return d, nil
}

func (r CrewRecord) ToDomain() (domain.Crew, error) {
	return domain.NewCrew(r.ID, r.Name, r.Shift)
}

// JobRecordFrom converts a domain job back to its JSON shape.
func JobRecordFrom(j domain.Job, date time.Time) JobRecord {
	r := JobRecord{
		ID:              j.ID,
		Customer:        j.Customer,
		Address:         j.Address,
		DurationMinutes: j.DurationMinutes,
		Priority:        string(j.Priority),
		TimeWindow:      string(j.TimeWindow),
	}
	if j.Location != nil {
		lat, lng := j.Location.Lat, j.Location.Lng
		r.Lat, r.Lng = &lat, &lng
	}
	if !date.IsZero() {
		r.Date = date.Format(time.DateOnly)
	}
	return r
}

func readJSON[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return out, nil
}

// ReadJobRecords loads a JSON array of jobs.
func ReadJobRecords(path string) ([]JobRecord, error) { return readJSON[JobRecord](path) }

// ReadCrews loads and validates a JSON array of crews.
func ReadCrews(path string) ([]domain.Crew, error) {
	recs, err := readJSON[CrewRecord](path)
	if err != nil {
		return nil, err
	}
	crews := make([]domain.Crew, 0, len(recs))
	for i, r := range recs {
		c, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("crew #%d: %w", i+1, err)
		}
		crews = append(crews, c)
	}
	return crews, nil
}

// ReadJobs loads and validates a JSON array of jobs, ignoring dates. Job ids
// must be unique within the file.
func ReadJobs(path string) ([]domain.Job, error) {
	recs, err := ReadJobRecords(path)
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(recs))
	for i, r := range recs {
		j, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("job #%d: %w", i+1, err)
		}
		jobs = append(jobs, j)
	}
	if dups := domain.DuplicateJobIDs(jobs); len(dups) > 0 {
		return nil, fmt.Errorf("read %q: duplicate job ids: %s", path, strings.Join(dups, ", "))
	}
	return jobs, nil
}
