package repositories

import (
	"crew-route-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestJobRecordToDomain(t *testing.T) {
	j, err := JobRecord{ID: " j1 ", Lat: ptr(40.1), Lng: ptr(-75.2), Priority: "HIGH"}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "j1", j.ID)
	assert.Equal(t, domain.PriorityHigh, j.Priority)
	assert.Equal(t, domain.TimeWindowFlexible, j.TimeWindow)
	assert.Equal(t, &domain.Coordinates{Lat: 40.1, Lng: -75.2}, j.Location)

	j, err = JobRecord{ID: "j2"}.ToDomain()
	require.NoError(t, err)
	assert.False(t, j.HasLocation())
	assert.Equal(t, domain.PriorityNormal, j.Priority)
}

func TestJobRecordToDomainRejects(t *testing.T) {
	cases := map[string]JobRecord{
		"empty id":       {},
		"half location":  {ID: "j", Lat: ptr(1)},
		"bad priority":   {ID: "j", Priority: "urgent"},
		"bad timewindow": {ID: "j", TimeWindow: "evening"},
	}
	for name, r := range cases {
		_, err := r.ToDomain()
		assert.Error(t, err, name)
	}
}

func TestCrewRecordToDomain(t *testing.T) {
	c, err := CrewRecord{ID: "c1", Name: " Alpha ", Shift: "Morning"}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.Crew{ID: "c1", Name: "Alpha", Shift: domain.ShiftMorning}, c)

	_, err = CrewRecord{ID: "c2", Shift: "night"}.ToDomain()
	require.Error(t, err)
}

func TestJobRecordFromRoundTrip(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	in := domain.Job{
		ID:         "j1",
		Location:   &domain.Coordinates{Lat: 40, Lng: -75},
		Priority:   domain.PriorityHigh,
		TimeWindow: domain.TimeWindowAfternoon,
	}

	rec := JobRecordFrom(in, date)
	assert.Equal(t, "2026-01-05", rec.Date)

	out, err := rec.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadJobsAndCrews(t *testing.T) {
	jobsPath := writeFile(t, "jobs.json", `[
		{"id": "j1", "lat": 40.05, "lng": -75.0, "time_window": "morning"},
		{"id": "j2", "address": "2 South St"}
	]`)
	crewsPath := writeFile(t, "crews.json", `[{"id": "c1", "name": "Alpha"}]`)

	jobs, err := ReadJobs(jobsPath)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, domain.TimeWindowMorning, jobs[0].TimeWindow)
	assert.Equal(t, "2 South St", jobs[1].Address)

	crews, err := ReadCrews(crewsPath)
	require.NoError(t, err)
	assert.Equal(t, []domain.Crew{{ID: "c1", Name: "Alpha"}}, crews)

	_, err = ReadJobs(writeFile(t, "bad.json", `{"id": "j1"}`))
	require.Error(t, err)

	_, err = ReadJobs(writeFile(t, "dups.json", `[{"id": "j1"}, {"id": "j2"}, {"id": "j1"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate job ids: j1")
}
