package ports

import "crew-route-service/internal/domain"

// Synchronous distance and travel-time estimate between two coordinates.
// Implementations must be pure lookups: the routing engine calls them in tight
// loops and never passes a context.
type DistanceModel interface {
	// Return the distance in miles. Must be symmetric and non-negative.
	DistanceMiles(a, b domain.Coordinates) float64
	// Return the estimated driving time in minutes.
	TravelMinutes(a, b domain.Coordinates) float64
}
