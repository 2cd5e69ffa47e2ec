package cache

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache maps normalized street addresses to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given addresses.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	keys := uniqueKeys(addresses)
	if len(keys) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT address, lat, lng
	FROM geocode_cache
	WHERE address = ANY($1::text[]);
	`, keys)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(keys))
	for rows.Next() {
		var addr string
		var c domain.Coordinates
		if err := rows.Scan(&addr, &c.Lat, &c.Lng); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan: %w", err)
		}
		out[addr] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: rows: %w", err)
	}

	return out, nil
}

// Store address -> coordinate mappings, replacing earlier lookups.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	addrs := make([]string, 0, len(results))
	lats := make([]float64, 0, len(results))
	lngs := make([]float64, 0, len(results))
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return errors.New("put geocode cache: empty address key")
		}
		addrs = append(addrs, addr)
		lats = append(lats, c.Lat)
		lngs = append(lngs, c.Lng)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (address, lat, lng)
	SELECT a, la, ln
	FROM unnest($1::text[], $2::float8[], $3::float8[]) AS t(a, la, ln)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		updated_at = now();
	`, addrs, lats, lngs)
	if err != nil {
		return fmt.Errorf("put geocode cache: %w", err)
	}
	return nil
}
