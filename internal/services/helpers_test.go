package services

import (
	"crew-route-service/internal/adapters/distance"
	"crew-route-service/internal/config"
	"crew-route-service/internal/domain"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func at(lat, lng float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lng: lng}
}

func job(id string, lat, lng float64, window domain.TimeWindow) domain.Job {
	return domain.Job{ID: id, Location: at(lat, lng), DurationMinutes: 60, TimeWindow: window}
}

func newTestOptimizer(t *testing.T, cfg config.Engine) *Optimizer {
	t.Helper()
	o, err := NewOptimizer(cfg, distance.NewHaversineModel(cfg.AverageSpeedMph), Policies{}, zerolog.Nop())
	require.NoError(t, err)
	return o
}

func haversine() *distance.HaversineModel {
	return distance.NewHaversineModel(config.DefaultEngine().AverageSpeedMph)
}
