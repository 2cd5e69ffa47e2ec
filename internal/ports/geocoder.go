package ports

import (
	"context"
	"crew-route-service/internal/domain"
)

// Resolves street addresses to coordinates.
type Geocoder interface {
	// Return coordinates keyed by the input address. Addresses that cannot be
	// resolved are absent from the result rather than reported as errors.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}
