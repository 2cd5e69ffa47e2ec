package ports

import (
	"context"
	"crew-route-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving road distances from one origin to many destinations.
// Results are keyed by domain.Coordinates.Key of each destination.
type DistanceMatrixProvider interface {
	GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) (map[string]DistanceResult, error)
}
