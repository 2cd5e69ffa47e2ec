package distance

import (
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
)

const metersPerMile = 1609.344

// MatrixModel serves road distances fetched before a run. Pairs it does not
// hold fall back to the wrapped model, so the engine never blocks on I/O.
//
// Road legs are rarely symmetric; when both directions are known the model
// returns their mean so routing sees a symmetric metric.
type MatrixModel struct {
	pairs    map[string]ports.DistanceResult
	fallback ports.DistanceModel
}

func NewMatrixModel(fallback ports.DistanceModel) *MatrixModel {
	return &MatrixModel{
		pairs:    make(map[string]ports.DistanceResult),
		fallback: fallback,
	}
}

func pairKey(a, b domain.Coordinates) string { return a.Key() + "|" + b.Key() }

// Set stores the road result for the directed leg a -> b.
func (m *MatrixModel) Set(a, b domain.Coordinates, r ports.DistanceResult) {
	m.pairs[pairKey(a, b)] = r
}

// Len returns the number of directed legs held.
func (m *MatrixModel) Len() int { return len(m.pairs) }

func (m *MatrixModel) lookup(a, b domain.Coordinates) (meters, seconds float64, ok bool) {
	ab, okAB := m.pairs[pairKey(a, b)]
	ba, okBA := m.pairs[pairKey(b, a)]

	switch {
	case okAB && okBA:
		return float64(ab.DistanceMeters+ba.DistanceMeters) / 2, float64(ab.DurationSeconds+ba.DurationSeconds) / 2, true
	case okAB:
		return float64(ab.DistanceMeters), float64(ab.DurationSeconds), true
	case okBA:
		return float64(ba.DistanceMeters), float64(ba.DurationSeconds), true
	}
	return 0, 0, false
}

func (m *MatrixModel) DistanceMiles(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}
	if meters, _, ok := m.lookup(a, b); ok {
		return meters / metersPerMile
	}
	return m.fallback.DistanceMiles(a, b)
}

func (m *MatrixModel) TravelMinutes(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}
	if _, seconds, ok := m.lookup(a, b); ok {
		return seconds / 60
	}
	return m.fallback.TravelMinutes(a, b)
}
