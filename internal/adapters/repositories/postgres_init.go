package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS crews (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		shift TEXT CHECK (shift IN ('morning', 'afternoon'))
	);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		customer TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		duration_minutes INTEGER NOT NULL DEFAULT 60,
		priority TEXT NOT NULL DEFAULT 'normal',
		time_window TEXT NOT NULL DEFAULT 'flexible',
		scheduled_date DATE NOT NULL,
		assigned_crew TEXT REFERENCES crews(id) ON DELETE SET NULL,
		order_in_route INTEGER,
		estimated_arrival TIMESTAMPTZ,
		optimized BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_scheduled_date ON jobs(scheduled_date);`,
	`CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (origin, destination)
	);`,
	`CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
}

// Create the tables used by the service. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

// Upsert crews and jobs from JSON files. Either path may be empty.
// Crews are written first so job assignments can reference them.
func SeedFromJSON(ctx context.Context, db *sql.DB, jobsPath, crewsPath string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	var crews []CrewRecord
	if crewsPath != "" {
		cs, err := ReadCrews(crewsPath)
		if err != nil {
			return fmt.Errorf("seed crews: %w", err)
		}
		for _, c := range cs {
			crews = append(crews, CrewRecord{ID: c.ID, Name: c.Name, Shift: string(c.Shift)})
		}
	}

	var jobs []JobRecord
	if jobsPath != "" {
		recs, err := ReadJobRecords(jobsPath)
		if err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}
		for i, r := range recs {
			if _, err := r.ToDomain(); err != nil {
				return fmt.Errorf("seed jobs: item %d: %w", i+1, err)
			}
			if _, err := r.ScheduledDate(); err != nil {
				return fmt.Errorf("seed jobs: item %d: %w", i+1, err)
			}
		}
		jobs = recs
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range crews {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO crews (id, name, shift)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, shift = EXCLUDED.shift;
		`, c.ID, c.Name, c.Shift)
		if err != nil {
			return fmt.Errorf("seed crews: insert id=%s: %w", c.ID, err)
		}
	}

	for _, r := range jobs {
		j, _ := r.ToDomain()
		date, _ := r.ScheduledDate()

		var lat, lng sql.NullFloat64
		if j.Location != nil {
			lat = sql.NullFloat64{Float64: j.Location.Lat, Valid: true}
			lng = sql.NullFloat64{Float64: j.Location.Lng, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO jobs (id, customer, address, lat, lng, duration_minutes, priority, time_window, scheduled_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET customer = EXCLUDED.customer,
			address = EXCLUDED.address,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			duration_minutes = EXCLUDED.duration_minutes,
			priority = EXCLUDED.priority,
			time_window = EXCLUDED.time_window,
			scheduled_date = EXCLUDED.scheduled_date,
			updated_at = now();
		`, j.ID, j.Customer, j.Address, lat, lng, j.Duration(60), string(j.Priority), string(j.TimeWindow), date)
		if err != nil {
			return fmt.Errorf("seed jobs: insert id=%s: %w", j.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}
	return nil
}
