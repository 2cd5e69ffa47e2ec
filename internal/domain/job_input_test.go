package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestNewJobDefaults(t *testing.T) {
	j, err := NewJob(JobInput{ID: " j1 ", Address: " 1 Main St ", Lat: fp(40.1), Lng: fp(-75.2), Priority: "HIGH"})
	require.NoError(t, err)
	assert.Equal(t, "j1", j.ID)
	assert.Equal(t, "1 Main St", j.Address)
	assert.Equal(t, PriorityHigh, j.Priority)
	assert.Equal(t, TimeWindowFlexible, j.TimeWindow)
	assert.Equal(t, &Coordinates{Lat: 40.1, Lng: -75.2}, j.Location)

	j, err = NewJob(JobInput{ID: "j2", TimeWindow: "Afternoon"})
	require.NoError(t, err)
	assert.False(t, j.HasLocation())
	assert.Equal(t, PriorityNormal, j.Priority)
	assert.Equal(t, TimeWindowAfternoon, j.TimeWindow)
}

func TestNewJobRejects(t *testing.T) {
	cases := map[string]JobInput{
		"empty id":          {ID: "  "},
		"negative duration": {ID: "j", DurationMinutes: -5},
		"half location":     {ID: "j", Lat: fp(1)},
		"lat out of range":  {ID: "j", Lat: fp(91), Lng: fp(0)},
		"nan lng":           {ID: "j", Lat: fp(40), Lng: fp(math.NaN())},
		"bad priority":      {ID: "j", Priority: "urgent"},
		"bad time window":   {ID: "j", TimeWindow: "evening"},
	}
	for name, in := range cases {
		_, err := NewJob(in)
		assert.Error(t, err, name)
	}
}

func TestNewCrew(t *testing.T) {
	c, err := NewCrew(" c1 ", " Alpha ", "Morning")
	require.NoError(t, err)
	assert.Equal(t, Crew{ID: "c1", Name: "Alpha", Shift: ShiftMorning}, c)

	c, err = NewCrew("c2", "", "")
	require.NoError(t, err)
	assert.Empty(t, c.Shift)

	_, err = NewCrew("c3", "", "night")
	assert.Error(t, err)
	_, err = NewCrew("", "x", "")
	assert.Error(t, err)
}

func TestDuplicateJobIDs(t *testing.T) {
	jobs := []Job{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"}, {ID: "a"}}
	assert.Equal(t, []string{"a", "b"}, DuplicateJobIDs(jobs))
	assert.Empty(t, DuplicateJobIDs([]Job{{ID: "a"}, {ID: "b"}}))
}
