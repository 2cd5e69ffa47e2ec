package distance

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
	"fmt"
	"math"
	"net/http"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// newMatrixRequest places origin at index 0 followed by every destination.
func newMatrixRequest(origin domain.Coordinates, destinations []domain.Coordinates) matrixRequest {
	req := matrixRequest{
		Locations:    make([][]float64, 0, len(destinations)+1),
		Destinations: make([]int, len(destinations)),
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	}
	req.Locations = append(req.Locations, origin.CoordsToList())
	for i, d := range destinations {
		req.Locations = append(req.Locations, d.CoordsToList())
		req.Destinations[i] = i + 1
	}
	return req
}

// row extracts the single source row and checks it covers n destinations.
func (mr matrixResponse) row(n int) (dist, dur []*float64, err error) {
	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, nil, fmt.Errorf("want 1 source row, got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations))
	}
	dist, dur = mr.Distances[0], mr.Durations[0]
	if len(dist) != n || len(dur) != n {
		return nil, nil, fmt.Errorf("row covers %d/%d entries, want %d", len(dist), len(dur), n)
	}
	return dist, dur, nil
}

// fetchMatrixRow asks ORS for legs from origin to each destination, keyed by
// destination coordinate key.
func (o *ORSDistanceProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	if len(destinations) == 0 {
		return out, nil
	}

	var mr matrixResponse
	call := orsCall{
		Method: http.MethodPost,
		Path:   "/v2/matrix/" + o.profile,
		Body:   newMatrixRequest(origin, destinations),
	}
	if err := o.callJSON(ctx, call, &mr); err != nil {
		return nil, fmt.Errorf("matrix from %s: %w", origin.Key(), err)
	}

	dist, dur, err := mr.row(len(destinations))
	if err != nil {
		return nil, fmt.Errorf("matrix from %s: %w", origin.Key(), err)
	}

	for i, d := range destinations {
		// Unroutable pairs come back as null.
		if dist[i] == nil || dur[i] == nil {
			return nil, fmt.Errorf("matrix from %s: no route to %s", origin.Key(), d.Key())
		}
		out[d.Key()] = ports.DistanceResult{
			DistanceMeters:  int(math.Round(*dist[i])),
			DurationSeconds: int(math.Round(*dur[i])),
		}
	}
	return out, nil
}
