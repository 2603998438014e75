package attendance

import (
	"errors"
	"fmt"
	"strings"
)

// Attendance domain errors
var (
	// Punch errors
	ErrDuplicatePunch   = errors.New("punch type already recorded for this day")
	ErrInvalidPunchType = errors.New("punch type is not one of the six recognized values")
	ErrDayNotClosed     = errors.New("attendance day has no clock-out punch yet")

	// General errors
	ErrDayNotFound = errors.New("attendance day not found")
)

// State is the punch-sequence state of an employee's day.
type State string

const (
	StateNotClockedIn  State = "not_clocked_in"
	StateClockedIn     State = "clocked_in"
	StateOnLunchBreak1 State = "on_lunch_break_1"
	StateWorking       State = "working"
	StateOnLunchBreak2 State = "on_lunch_break_2"
	StateClockedOut    State = "clocked_out"
)

// SequenceError reports a punch that is not valid in the current state.
// It carries the set of valid next punch types for terminal display.
type SequenceError struct {
	CurrentState State
	Requested    PunchType
	AllowedNext  []PunchType
}

func (e *SequenceError) Error() string {
	allowed := make([]string, 0, len(e.AllowedNext))
	for _, pt := range e.AllowedNext {
		allowed = append(allowed, string(pt))
	}
	if len(allowed) == 0 {
		return fmt.Sprintf("punch %q not allowed in state %q: day is closed", e.Requested, e.CurrentState)
	}
	return fmt.Sprintf("punch %q not allowed in state %q: expected one of %s",
		e.Requested, e.CurrentState, strings.Join(allowed, ", "))
}
