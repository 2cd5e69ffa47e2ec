package cmd

import (
	"bytes"
	"crew-route-service/internal/api/dto"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func runCLI(t *testing.T, args ...string) (dto.OptimizationResponse, error) {
	t.Helper()
	// Flag values persist on the package-level command between runs.
	jobsPath, crewsPath, dateFlag, cfgPath, compact = "", "", "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	var res dto.OptimizationResponse
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	}
	return res, err
}

func TestOptimizeCommand(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.json", `[
		{"id": "J1", "lat": 40.05, "lng": -75.0, "duration_minutes": 60},
		{"id": "J2", "lat": 39.95, "lng": -75.0, "duration_minutes": 60}
	]`)
	crews := writeFile(t, dir, "crews.json", `[
		{"id": "m", "name": "Morning", "shift": "morning"},
		{"id": "a", "name": "Afternoon", "shift": "afternoon"}
	]`)

	res, err := runCLI(t, "optimize", "--jobs", jobs, "--crews", crews, "--date", "2026-01-05")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "2026-01-05", res.Date)
	assert.Equal(t, "08:20", res.MorningRoutes[0].Jobs[0].EstimatedArrival)
	assert.Equal(t, "14:08", res.AfternoonRoutes[0].Jobs[0].EstimatedDeparture)
}

func TestOptimizeCommandStrictFailure(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.json", `[{"id": "J1", "address": "somewhere"}]`)
	crews := writeFile(t, dir, "crews.json", `[{"id": "m"}]`)
	cfg := writeFile(t, dir, "engine.yaml", "missing_coordinates: strict\n")

	res, err := runCLI(t, "optimize", "--jobs", jobs, "--crews", crews, "--date", "2026-01-05", "--config", cfg)
	require.ErrorIs(t, err, errRunFailed)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "J1")
}

func TestOptimizeCommandBadInput(t *testing.T) {
	dir := t.TempDir()
	crews := writeFile(t, dir, "crews.json", `[{"id": "m"}]`)

	_, err := runCLI(t, "optimize", "--jobs", filepath.Join(dir, "missing.json"), "--crews", crews)
	require.Error(t, err)

	_, err = runCLI(t, "optimize", "--jobs", crews, "--crews", crews, "--date", "tomorrow")
	require.Error(t, err)
}
