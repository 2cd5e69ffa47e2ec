package cache

import (
	"context"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLDistanceCache stores road distances between coordinate keys
// (domain.Coordinates.Key) in Postgres.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch cached legs from one origin to many destinations. Destinations with
// no cached leg are absent from the result.
func (s *SQLDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("distance cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("get distance cache: origin must not be empty")
	}

	keys := uniqueKeys(destinations)
	if len(keys) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT destination, distance_meters, duration_seconds
	FROM distance_cache
	WHERE origin = $1
		AND destination = ANY($2::text[]);
	`, origin, keys)
	if err != nil {
		return nil, fmt.Errorf("get distance cache: query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.DistanceResult, len(keys))
	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("get distance cache: scan: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get distance cache: rows: %w", err)
	}

	return out, nil
}

// Upsert legs from one origin in a single statement.
func (s *SQLDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) (err error) {
	defer obs.Time(ctx, "distance.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" {
		return errors.New("put distance cache: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	dests := make([]string, 0, len(results))
	meters := make([]int64, 0, len(results))
	seconds := make([]int64, 0, len(results))
	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("put distance cache: empty destination key")
		}
		dests = append(dests, dest)
		meters = append(meters, int64(r.DistanceMeters))
		seconds = append(seconds, int64(r.DurationSeconds))
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO distance_cache (origin, destination, distance_meters, duration_seconds)
	SELECT $1, d, m, s
	FROM unnest($2::text[], $3::bigint[], $4::bigint[]) AS t(d, m, s)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		updated_at = now();
	`, origin, dests, meters, seconds)
	if err != nil {
		return fmt.Errorf("put distance cache: origin=%q: %w", origin, err)
	}
	return nil
}
