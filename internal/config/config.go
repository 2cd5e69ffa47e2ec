package config

import (
	"crew-route-service/internal/domain"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix scopes engine settings in the environment. Nested keys use "__",
// e.g. ROUTEOPT_HOME_BASE__LAT.
const EnvPrefix = "ROUTEOPT_"

// CoordinatePolicy decides what happens to jobs without coordinates.
type CoordinatePolicy string

const (
	// Treat the job as located at (0,0) and report a warning.
	CoordinatesDegrade CoordinatePolicy = "degrade"
	// Fail the run before routing.
	CoordinatesStrict CoordinatePolicy = "strict"
)

type HomeBase struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type EfficiencyWeights struct {
	JobsPerMile float64 `json:"jobs_per_mile"`
	Priority    float64 `json:"priority"`
	Utilization float64 `json:"utilization"`
}

// Engine holds the home base and every tuning constant of the routing engine.
// It is passed to the engine explicitly; nothing reads it from globals.
type Engine struct {
	HomeBase              HomeBase          `json:"home_base"`
	AverageSpeedMph       float64           `json:"average_speed_mph"`
	BufferMinutes         float64           `json:"buffer_minutes"`
	ShiftLengthMinutes    float64           `json:"shift_length_minutes"`
	MorningStartMinutes   float64           `json:"morning_start_minutes"`
	AfternoonStartMinutes float64           `json:"afternoon_start_minutes"`
	FirstStopMinutes      float64           `json:"first_stop_minutes"`
	DefaultJobMinutes     int               `json:"default_job_minutes"`
	BaselineMilesPerJob   float64           `json:"baseline_miles_per_job"`
	FuelGallonsPerMile    float64           `json:"fuel_gallons_per_mile"`
	FuelCostPerGallon     float64           `json:"fuel_cost_per_gallon"`
	EfficiencyWeights     EfficiencyWeights `json:"efficiency_weights"`
	MissingCoordinates    CoordinatePolicy  `json:"missing_coordinates"`
}

// DefaultEngine returns the documented defaults.
func DefaultEngine() Engine {
	return Engine{
		HomeBase: HomeBase{
			Lat:     40.0,
			Lng:     -75.0,
			Address: "Company Headquarters",
		},
		AverageSpeedMph:       25,
		BufferMinutes:         15,
		ShiftLengthMinutes:    240,
		MorningStartMinutes:   8 * 60,
		AfternoonStartMinutes: 13 * 60,
		FirstStopMinutes:      20,
		DefaultJobMinutes:     60,
		BaselineMilesPerJob:   10,
		FuelGallonsPerMile:    0.08,
		FuelCostPerGallon:     4.50,
		EfficiencyWeights: EfficiencyWeights{
			JobsPerMile: 0.4,
			Priority:    0.3,
			Utilization: 0.3,
		},
		MissingCoordinates: CoordinatesDegrade,
	}
}

// Load builds the engine configuration from defaults, an optional YAML/JSON
// file and ROUTEOPT_* environment variables, in that order of precedence.
// An empty path skips the file layer.
func Load(path string) (Engine, error) {
	cfg := DefaultEngine()
	k := koanf.New(".")

	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".yaml", ".yml", ".json":
			// YAML is a superset of JSON, one parser covers both.
		default:
			return Engine{}, fmt.Errorf("load config: unsupported config format %q", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Engine{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return Engine{}, fmt.Errorf("load config: env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Engine{}, fmt.Errorf("load config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Engine{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (e Engine) Validate() error {
	for _, f := range []struct {
		field string
		v     float64
	}{
		{"home_base.lat", e.HomeBase.Lat},
		{"home_base.lng", e.HomeBase.Lng},
		{"average_speed_mph", e.AverageSpeedMph},
		{"buffer_minutes", e.BufferMinutes},
		{"shift_length_minutes", e.ShiftLengthMinutes},
		{"morning_start_minutes", e.MorningStartMinutes},
		{"afternoon_start_minutes", e.AfternoonStartMinutes},
		{"first_stop_minutes", e.FirstStopMinutes},
		{"baseline_miles_per_job", e.BaselineMilesPerJob},
		{"fuel_gallons_per_mile", e.FuelGallonsPerMile},
		{"fuel_cost_per_gallon", e.FuelCostPerGallon},
		{"efficiency_weights.jobs_per_mile", e.EfficiencyWeights.JobsPerMile},
		{"efficiency_weights.priority", e.EfficiencyWeights.Priority},
		{"efficiency_weights.utilization", e.EfficiencyWeights.Utilization},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ConfigurationError{Field: f.field, Reason: fmt.Sprintf("%v is not a finite number", f.v)}
		}
	}

	hb := e.HomeBase
	switch {
	case hb.Lat < -90 || hb.Lat > 90:
		return &ConfigurationError{Field: "home_base.lat", Reason: fmt.Sprintf("latitude %v out of range", hb.Lat)}
	case hb.Lng < -180 || hb.Lng > 180:
		return &ConfigurationError{Field: "home_base.lng", Reason: fmt.Sprintf("longitude %v out of range", hb.Lng)}
	case e.AverageSpeedMph <= 0:
		return &ConfigurationError{Field: "average_speed_mph", Reason: "must be positive"}
	case e.ShiftLengthMinutes <= 0:
		return &ConfigurationError{Field: "shift_length_minutes", Reason: "must be positive"}
	case e.BufferMinutes < 0:
		return &ConfigurationError{Field: "buffer_minutes", Reason: "must not be negative"}
	case e.FirstStopMinutes < 0:
		return &ConfigurationError{Field: "first_stop_minutes", Reason: "must not be negative"}
	case e.DefaultJobMinutes <= 0:
		return &ConfigurationError{Field: "default_job_minutes", Reason: "must be positive"}
	case e.MorningStartMinutes < 0 || e.MorningStartMinutes+e.ShiftLengthMinutes > 24*60:
		return &ConfigurationError{Field: "morning_start_minutes", Reason: "shift must fit within the day"}
	case e.AfternoonStartMinutes < 0 || e.AfternoonStartMinutes+e.ShiftLengthMinutes > 24*60:
		return &ConfigurationError{Field: "afternoon_start_minutes", Reason: "shift must fit within the day"}
	case e.BaselineMilesPerJob < 0 || e.FuelGallonsPerMile < 0 || e.FuelCostPerGallon < 0:
		return &ConfigurationError{Field: "baseline", Reason: "savings constants must not be negative"}
	}

	switch e.MissingCoordinates {
	case CoordinatesDegrade, CoordinatesStrict:
	default:
		return &ConfigurationError{Field: "missing_coordinates", Reason: fmt.Sprintf("unknown policy %q", e.MissingCoordinates)}
	}
	return nil
}

// Base returns the configured home base as a domain value.
func (e Engine) Base() domain.HomeBase {
	return domain.HomeBase{
		Location: domain.Coordinates{Lat: e.HomeBase.Lat, Lng: e.HomeBase.Lng},
		Address:  e.HomeBase.Address,
	}
}

// ShiftStart returns the start of the shift in minutes after midnight.
func (e Engine) ShiftStart(s domain.Shift) float64 {
	if s == domain.ShiftAfternoon {
		return e.AfternoonStartMinutes
	}
	return e.MorningStartMinutes
}

// ShiftEnd returns the latest minute a job may finish in the shift.
func (e Engine) ShiftEnd(s domain.Shift) float64 {
	return e.ShiftStart(s) + e.ShiftLengthMinutes
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDuration parses a Go duration from the environment, or returns fallback
// when unset or malformed.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
