package attendance

import (
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
)

// Punch sequence state machine:
//
//	not_clocked_in -> clocked_in -> on_lunch_break_1 -> working
//	              -> on_lunch_break_2 -> working -> clocked_out
//
// The allowed next punches depend on the last recorded punch, not just the
// named state: "working" after lunch 1 may still open lunch 2, "working"
// after lunch 2 may only clock out.

// StateOf derives the current sequence state from the punches already
// recorded for the day.
func StateOf(day *attendance.AttendanceDay) attendance.State {
	switch day.LastPunch() {
	case attendance.PunchClockIn:
		return attendance.StateClockedIn
	case attendance.PunchLunchOut1:
		return attendance.StateOnLunchBreak1
	case attendance.PunchLunchIn1, attendance.PunchLunchIn2:
		return attendance.StateWorking
	case attendance.PunchLunchOut2:
		return attendance.StateOnLunchBreak2
	case attendance.PunchClockOut:
		return attendance.StateClockedOut
	}
	return attendance.StateNotClockedIn
}

// AllowedNext returns the punch types valid from the day's current state.
// Empty for a closed day.
func AllowedNext(day *attendance.AttendanceDay) []attendance.PunchType {
	switch day.LastPunch() {
	case attendance.PunchClockIn:
		return []attendance.PunchType{attendance.PunchLunchOut1, attendance.PunchClockOut}
	case attendance.PunchLunchOut1:
		return []attendance.PunchType{attendance.PunchLunchIn1}
	case attendance.PunchLunchIn1:
		return []attendance.PunchType{attendance.PunchLunchOut2, attendance.PunchClockOut}
	case attendance.PunchLunchOut2:
		return []attendance.PunchType{attendance.PunchLunchIn2}
	case attendance.PunchLunchIn2:
		return []attendance.PunchType{attendance.PunchClockOut}
	case attendance.PunchClockOut:
		return nil
	}
	return []attendance.PunchType{attendance.PunchClockIn}
}

// ValidatePunch decides whether the requested punch may be recorded. The
// duplicate check runs before sequence validation: a punch type already on
// record is rejected even when the transition table would allow it. Pure
// decision function, no side effects.
func ValidatePunch(day *attendance.AttendanceDay, pt attendance.PunchType) error {
	if !pt.IsValid() {
		return attendance.ErrInvalidPunchType
	}

	if day.HasPunch(pt) {
		return attendance.ErrDuplicatePunch
	}

	allowed := AllowedNext(day)
	for _, a := range allowed {
		if a == pt {
			return nil
		}
	}

	return &attendance.SequenceError{
		CurrentState: StateOf(day),
		Requested:    pt,
		AllowedNext:  allowed,
	}
}
