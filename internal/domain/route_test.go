package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTime(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{480, "08:00"},
		{500, "08:20"},
		{788.28, "13:08"},
		{848.6, "14:09"},
		{-3, "00:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClockTime(c.in), "ClockTime(%v)", c.in)
	}
}

func TestEmptyRouteFormatting(t *testing.T) {
	r := Route{StartMinutes: 480, EndMinutes: 480}
	assert.Equal(t, "0.0", r.FormattedDistance())
	assert.Equal(t, r.EstimatedStart(), r.EstimatedEnd())
}

func TestJobDefaults(t *testing.T) {
	j := Job{ID: "j1"}
	assert.Equal(t, 60, j.Duration(60))
	assert.True(t, j.IsFlexible())
	assert.False(t, j.HasLocation())
	assert.Equal(t, Coordinates{}, j.Coords())

	j.DurationMinutes = 45
	j.TimeWindow = TimeWindowAfternoon
	assert.Equal(t, 45, j.Duration(60))
	assert.False(t, j.IsFlexible())
}

func TestResultAssignments(t *testing.T) {
	date := time.Date(2026, 1, 5, 15, 30, 0, 0, time.UTC)
	res := &OptimizationResult{
		Date:    date,
		Success: true,
		Morning: []Route{{
			CrewID: "c1",
			Shift:  ShiftMorning,
			Jobs: []RoutedJob{
				{Job: Job{ID: "a"}, OrderInRoute: 1, ArrivalMinutes: 500},
			},
		}},
		Afternoon: []Route{{
			CrewID: "c2",
			Shift:  ShiftAfternoon,
			Jobs: []RoutedJob{
				{Job: Job{ID: "b"}, OrderInRoute: 1, ArrivalMinutes: 788.28},
			},
		}},
		Unassigned: []UnassignedJob{
			{Job: Job{ID: "c"}, Shift: ShiftAfternoon, Reason: ReasonShiftBudget},
		},
	}

	got := res.Assignments()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].JobID)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 20, 0, 0, time.UTC), got[0].EstimatedArrival)
	assert.Equal(t, "c2", got[1].CrewID)
	assert.Equal(t, time.Date(2026, 1, 5, 13, 8, 0, 0, time.UTC), got[1].EstimatedArrival)
	assert.False(t, got[1].Clears())
	assert.Equal(t, "c", got[2].JobID)
	assert.True(t, got[2].Clears())
	assert.True(t, got[2].EstimatedArrival.IsZero())

	res.Success = false
	assert.Nil(t, res.Assignments())
}
