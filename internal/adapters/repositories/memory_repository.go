package repositories

import (
	"cmp"
	"context"
	"crew-route-service/internal/domain"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrJobNotFound is returned when an assignment names an unknown job.
var ErrJobNotFound = errors.New("job not found")

// MemoryRepository is an in-process store used when no DATABASE_URL is set
// and by tests.
type MemoryRepository struct {
	mu          sync.Mutex
	jobs        []memJob
	crews       []domain.Crew
	assignments map[string]domain.Assignment
}

type memJob struct {
	job  domain.Job
	date string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{assignments: map[string]domain.Assignment{}}
}

// AddJobs schedules jobs on date. A job with an existing id replaces it.
func (m *MemoryRepository) AddJobs(date time.Time, jobs ...domain.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := date.Format(time.DateOnly)
	for _, j := range jobs {
		i := slices.IndexFunc(m.jobs, func(x memJob) bool { return x.job.ID == j.ID })
		if i >= 0 {
			m.jobs[i] = memJob{job: j, date: d}
			continue
		}
		m.jobs = append(m.jobs, memJob{job: j, date: d})
	}
}

// AddCrews registers crews. A crew with an existing id replaces it.
func (m *MemoryRepository) AddCrews(crews ...domain.Crew) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range crews {
		i := slices.IndexFunc(m.crews, func(x domain.Crew) bool { return x.ID == c.ID })
		if i >= 0 {
			m.crews[i] = c
			continue
		}
		m.crews = append(m.crews, c)
	}
}

// LoadJSON seeds the store from the same files the Postgres seeder reads.
func (m *MemoryRepository) LoadJSON(jobsPath, crewsPath string) error {
	if crewsPath != "" {
		crews, err := ReadCrews(crewsPath)
		if err != nil {
			return fmt.Errorf("load crews: %w", err)
		}
		m.AddCrews(crews...)
	}

	if jobsPath != "" {
		recs, err := ReadJobRecords(jobsPath)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}
		for i, r := range recs {
			j, err := r.ToDomain()
			if err != nil {
				return fmt.Errorf("load jobs: item %d: %w", i+1, err)
			}
			date, err := r.ScheduledDate()
			if err != nil {
				return fmt.Errorf("load jobs: item %d: %w", i+1, err)
			}
			m.AddJobs(date, j)
		}
	}
	return nil
}

func (m *MemoryRepository) ListJobs(_ context.Context, date time.Time) ([]domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := date.Format(time.DateOnly)
	out := make([]domain.Job, 0)
	for _, mj := range m.jobs {
		if mj.date == d {
			out = append(out, mj.job)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Job) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemoryRepository) ListCrews(_ context.Context) ([]domain.Crew, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := slices.Clone(m.crews)
	slices.SortFunc(out, func(a, b domain.Crew) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// SaveAssignments applies all assignments or none. Clearing records drop the
// job's stored assignment.
func (m *MemoryRepository) SaveAssignments(_ context.Context, assignments []domain.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range assignments {
		if !slices.ContainsFunc(m.jobs, func(x memJob) bool { return x.job.ID == a.JobID }) {
			return fmt.Errorf("save assignments: job_id=%s: %w", a.JobID, ErrJobNotFound)
		}
	}
	for _, a := range assignments {
		if a.Clears() {
			delete(m.assignments, a.JobID)
			continue
		}
		m.assignments[a.JobID] = a
	}
	return nil
}

// Assignment returns the last assignment written for a job.
func (m *MemoryRepository) Assignment(jobID string) (domain.Assignment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assignments[jobID]
	return a, ok
}
