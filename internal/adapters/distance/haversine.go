package distance

import (
	"crew-route-service/internal/domain"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used by the great-circle estimate.
const EarthRadiusMiles = 3959.0

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(a, b domain.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng
	return 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// HaversineModel estimates distance as the crow flies and travel time at a
// constant average speed. It is the default ports.DistanceModel.
type HaversineModel struct {
	SpeedMph float64
}

func NewHaversineModel(speedMph float64) *HaversineModel {
	return &HaversineModel{SpeedMph: speedMph}
}

func (m *HaversineModel) DistanceMiles(a, b domain.Coordinates) float64 {
	return HaversineMiles(a, b)
}

func (m *HaversineModel) TravelMinutes(a, b domain.Coordinates) float64 {
	if m.SpeedMph <= 0 {
		return 0
	}
	return m.DistanceMiles(a, b) / m.SpeedMph * 60
}
