package domain

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Declared shift preference of a job. The zero value and TimeWindowFlexible
// both mean the job may be served in either shift.
type TimeWindow string

const (
	TimeWindowMorning   TimeWindow = "morning"
	TimeWindowAfternoon TimeWindow = "afternoon"
	TimeWindowFlexible  TimeWindow = "flexible"
)

// Represents a single field-service visit.
// Job records are owned by the external job store; the engine only reads them.
// Location is optional because imported jobs are not always geocoded.
type Job struct {
	ID              string
	Customer        string
	Address         string
	Location        *Coordinates
	DurationMinutes int
	Priority        Priority
	TimeWindow      TimeWindow
}

// HasLocation reports whether the job carries coordinates.
func (j Job) HasLocation() bool { return j.Location != nil }

// Coords returns the job location, or the zero coordinate when it is missing.
func (j Job) Coords() Coordinates {
	if j.Location == nil {
		return Coordinates{}
	}
	return *j.Location
}

// Duration returns the job duration in minutes, falling back to def when unset.
func (j Job) Duration(def int) int {
	if j.DurationMinutes > 0 {
		return j.DurationMinutes
	}
	return def
}

func (j Job) IsHighPriority() bool { return j.Priority == PriorityHigh }

// IsFlexible reports whether the job has no explicit shift preference.
func (j Job) IsFlexible() bool {
	return j.TimeWindow != TimeWindowMorning && j.TimeWindow != TimeWindowAfternoon
}
