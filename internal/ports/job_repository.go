package ports

import (
	"context"
	"crew-route-service/internal/domain"
	"time"
)

// Port: a boundary for retrieving Job entities from the job store.
type JobRepository interface {
	// Retrieve all jobs scheduled for the given date, in stable input order.
	ListJobs(ctx context.Context, date time.Time) ([]domain.Job, error)
}

// Port: a boundary for retrieving crews.
type CrewRepository interface {
	ListCrews(ctx context.Context) ([]domain.Crew, error)
}

// Port: writes routing decisions back onto stored job records.
// Writes are idempotent; callers serialize concurrent writes per job id.
type AssignmentWriter interface {
	SaveAssignments(ctx context.Context, assignments []domain.Assignment) error
}
