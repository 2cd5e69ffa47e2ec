package repositories

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the job, crew and assignment ports.
type PostgresRepository struct{ DB *sql.DB }

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// Return the jobs scheduled for date, ordered by id.
func (p *PostgresRepository) ListJobs(ctx context.Context, date time.Time) (_ []domain.Job, err error) {
	defer obs.Time(ctx, "repo.ListJobs")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT id, customer, address, lat, lng, duration_minutes, priority, time_window
	FROM jobs
	WHERE scheduled_date = $1::date
	ORDER BY id;
	`, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("list jobs: query jobs table: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0, 64)
	for rows.Next() {
		var (
			j                domain.Job
			lat, lng         sql.NullFloat64
			priority, window string
		)
		if err := rows.Scan(&j.ID, &j.Customer, &j.Address, &lat, &lng, &j.DurationMinutes, &priority, &window); err != nil {
			return nil, fmt.Errorf("list jobs: scan row: %w", err)
		}
		if lat.Valid && lng.Valid {
			j.Location = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
		}
		j.Priority = domain.Priority(priority)
		j.TimeWindow = domain.TimeWindow(window)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: row iteration: %w", err)
	}

	return jobs, nil
}

// Return every crew ordered by id.
func (p *PostgresRepository) ListCrews(ctx context.Context) (_ []domain.Crew, err error) {
	defer obs.Time(ctx, "repo.ListCrews")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT id, name, COALESCE(shift, '') FROM crews ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list crews: query crews table: %w", err)
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0, 16)
	for rows.Next() {
		var c domain.Crew
		var shift string
		if err := rows.Scan(&c.ID, &c.Name, &shift); err != nil {
			return nil, fmt.Errorf("list crews: scan row: %w", err)
		}
		c.Shift = domain.Shift(shift)
		crews = append(crews, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list crews: row iteration: %w", err)
	}

	return crews, nil
}

// Write routing decisions onto job rows in one transaction. Clearing records
// reset the routing columns. Re-applying the same assignments leaves the rows
// unchanged.
func (p *PostgresRepository) SaveAssignments(ctx context.Context, assignments []domain.Assignment) (err error) {
	defer obs.Time(ctx, "repo.SaveAssignments")(&err)

	if p.DB == nil {
		return errors.New("postgres repository: DB is nil")
	}
	if len(assignments) == 0 {
		return nil
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save assignments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	assign, err := tx.PrepareContext(ctx, `
	UPDATE jobs
	SET assigned_crew = $2,
		order_in_route = $3,
		estimated_arrival = $4,
		optimized = true,
		updated_at = now()
	WHERE id = $1;
	`)
	if err != nil {
		return fmt.Errorf("save assignments: prepare: %w", err)
	}
	defer assign.Close()

	reset, err := tx.PrepareContext(ctx, `
	UPDATE jobs
	SET assigned_crew = NULL,
		order_in_route = NULL,
		estimated_arrival = NULL,
		optimized = false,
		updated_at = now()
	WHERE id = $1;
	`)
	if err != nil {
		return fmt.Errorf("save assignments: prepare clear: %w", err)
	}
	defer reset.Close()

	for _, a := range assignments {
		var res sql.Result
		if a.Clears() {
			res, err = reset.ExecContext(ctx, a.JobID)
		} else {
			res, err = assign.ExecContext(ctx, a.JobID, a.CrewID, a.OrderInRoute, a.EstimatedArrival)
		}
		if err != nil {
			return fmt.Errorf("save assignments: job_id=%s: %w", a.JobID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("save assignments: job_id=%s: %w", a.JobID, ErrJobNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save assignments: commit tx: %w", err)
	}
	return nil
}
