package domain

import (
	"fmt"
	"strings"
)

// One of the two fixed daily working windows.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
)

func (s Shift) Valid() bool { return s == ShiftMorning || s == ShiftAfternoon }

// Field crew. Shift is empty when the crew has no fixed assignment.
type Crew struct {
	ID    string
	Name  string
	Shift Shift
}

// NewCrew validates a crew from loosely typed input. An empty shift leaves
// the crew unlabeled.
func NewCrew(id, name, shift string) (Crew, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Crew{}, fmt.Errorf("crew: id must not be empty")
	}
	c := Crew{ID: id, Name: strings.TrimSpace(name)}
	if s := strings.TrimSpace(shift); s != "" {
		c.Shift = Shift(strings.ToLower(s))
		if !c.Shift.Valid() {
			return Crew{}, fmt.Errorf("crew %s: unknown shift %q", id, shift)
		}
	}
	return c, nil
}
