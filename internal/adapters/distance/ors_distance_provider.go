package distance

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DistanceCache persists origin->destination results keyed by coordinate keys.
type DistanceCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error
}

// GeocodeCache persists address -> coordinate lookups.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// ORSDistanceProvider implements DistanceMatrixProvider and Geocoder using
// OpenRouteService.
//
// It coordinates:
//   - Persistent geocode caching
//   - Persistent distance matrix caching
//   - Client-side rate limiting
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	country       string
	limiter       *rate.Limiter
	distanceCache DistanceCache
	geocodeCache  GeocodeCache
}

type ORSOption func(*ORSDistanceProvider)

// WithBaseURL points the provider at a different ORS deployment.
func WithBaseURL(u string) ORSOption {
	return func(o *ORSDistanceProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithRateLimit caps outgoing requests per minute. Zero disables limiting.
func WithRateLimit(perMinute int) ORSOption {
	return func(o *ORSDistanceProvider) {
		if perMinute <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSDistanceProvider) { o.session = c }
}

func NewORSDistanceProvider(
	apiKey string,
	distanceCache DistanceCache,
	geocodeCache GeocodeCache,
	opts ...ORSOption,
) (*ORSDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDistanceProvider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       "https://api.openrouteservice.org",
		profile:       "driving-car",
		country:       "US",
		distanceCache: distanceCache,
		geocodeCache:  geocodeCache,
	}
	// Free ORS plans allow 40 matrix requests per minute.
	WithRateLimit(40)(provider)

	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSDistanceProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Compute road distances from a single origin to many destinations.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	originKey := origin.Key()

	out := make(map[string]ports.DistanceResult, len(destinations))

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]domain.Coordinates, 0, len(destinations))
	destKeys := make([]string, 0, len(destinations))
	for _, d := range destinations {
		k := d.Key()
		if k == originKey {
			out[k] = ports.DistanceResult{}
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		destList = append(destList, d)
		destKeys = append(destKeys, k)
	}

	if len(destList) == 0 {
		return out, nil
	}

	hits := map[string]ports.DistanceResult{}
	// Check persistent distance cache before issuing external API calls.
	if o.distanceCache != nil {
		hits, err = o.distanceCache.GetMany(ctx, originKey, destKeys)
		if err != nil {
			return nil, fmt.Errorf("ORS get distance cache: %w", err)
		}
	}

	misses := make([]domain.Coordinates, 0, len(destList))
	for _, d := range destList {
		if r, ok := hits[d.Key()]; ok {
			out[d.Key()] = r
			continue
		}
		misses = append(misses, d)
	}

	if len(misses) == 0 {
		return out, nil
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, origin, misses)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	missing := make([]string, 0)
	for _, d := range misses {
		if _, ok := fetched[d.Key()]; !ok {
			missing = append(missing, d.Key())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"ORS matrix service did not return the following destinations: %s",
			strings.Join(missing, ", "),
		)
	}

	if o.distanceCache != nil {
		if err := o.distanceCache.PutMany(ctx, originKey, fetched); err != nil {
			obs.Logger(ctx).Warn().Err(err).Msg("distance cache write failed")
		}
	}

	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// Geocode resolves addresses to coordinates, consulting the geocode cache
// first. Addresses ORS cannot resolve are left out of the result.
func (o *ORSDistanceProvider) Geocode(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	normToOrig := make(map[string][]string, len(addresses))
	needed := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := o.normalize(a)
		if n == "" {
			continue
		}
		if _, ok := normToOrig[n]; !ok {
			needed = append(needed, n)
		}
		normToOrig[n] = append(normToOrig[n], a)
	}

	if len(needed) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	hits := map[string]domain.Coordinates{}
	// Resolve coordinates via cache before calling ORS geocoding.
	if o.geocodeCache != nil {
		hits, err = o.geocodeCache.GetMany(ctx, needed)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(needed))
	for _, a := range needed {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := map[string]domain.Coordinates{}
	if len(misses) > 0 {
		fresh, err = o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("retrieving coordinates: %w", err)
		}
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			obs.Logger(ctx).Warn().Err(err).Msg("geocode cache write failed")
		}
	}

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, src := range []map[string]domain.Coordinates{hits, fresh} {
		for norm, c := range src {
			for _, orig := range normToOrig[norm] {
				out[orig] = c
			}
		}
	}
	return out, nil
}
