package attendance

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
)

// PunchType is one of the six clock events a factory terminal can send.
type PunchType string

const (
	PunchClockIn   PunchType = "clock_in"
	PunchLunchOut1 PunchType = "lunch_out1"
	PunchLunchIn1  PunchType = "lunch_in1"
	PunchLunchOut2 PunchType = "lunch_out2"
	PunchLunchIn2  PunchType = "lunch_in2"
	PunchClockOut  PunchType = "clock_out"
)

// PunchTypes lists all punch types in canonical daily order.
var PunchTypes = []PunchType{
	PunchClockIn,
	PunchLunchOut1,
	PunchLunchIn1,
	PunchLunchOut2,
	PunchLunchIn2,
	PunchClockOut,
}

// IsValid reports whether pt is one of the six recognized punch types.
func (pt PunchType) IsValid() bool {
	switch pt {
	case PunchClockIn, PunchLunchOut1, PunchLunchIn1, PunchLunchOut2, PunchLunchIn2, PunchClockOut:
		return true
	}
	return false
}

// Label returns the Japanese display name used on punch terminals.
func (pt PunchType) Label() string {
	switch pt {
	case PunchClockIn:
		return "出社"
	case PunchLunchOut1:
		return "昼休出１"
	case PunchLunchIn1:
		return "昼休入１"
	case PunchLunchOut2:
		return "昼休出２"
	case PunchLunchIn2:
		return "昼休入２"
	case PunchClockOut:
		return "退社"
	}
	return string(pt)
}

// Granularity is a time-rounding resolution in minutes.
type Granularity int

const (
	Granularity15 Granularity = 15
	Granularity10 Granularity = 10
	Granularity5  Granularity = 5
	Granularity1  Granularity = 1
)

// Granularities lists every tracked rounding resolution, coarsest first.
var Granularities = []Granularity{Granularity15, Granularity10, Granularity5, Granularity1}

// IsValid reports whether g is one of the four tracked granularities.
func (g Granularity) IsValid() bool {
	switch g {
	case Granularity15, Granularity10, Granularity5, Granularity1:
		return true
	}
	return false
}

// Suffix returns the field/column suffix for this granularity, e.g. "15min".
// Payroll consumers depend on this naming.
func (g Granularity) Suffix() string {
	switch g {
	case Granularity15:
		return "15min"
	case Granularity10:
		return "10min"
	case Granularity5:
		return "5min"
	case Granularity1:
		return "1min"
	}
	return ""
}

// PunchTimes holds one timestamp slot per punch type. Nil means not punched.
type PunchTimes struct {
	ClockIn   *time.Time
	LunchOut1 *time.Time
	LunchIn1  *time.Time
	LunchOut2 *time.Time
	LunchIn2  *time.Time
	ClockOut  *time.Time
}

// Get returns the slot for the given punch type.
func (p *PunchTimes) Get(pt PunchType) *time.Time {
	switch pt {
	case PunchClockIn:
		return p.ClockIn
	case PunchLunchOut1:
		return p.LunchOut1
	case PunchLunchIn1:
		return p.LunchIn1
	case PunchLunchOut2:
		return p.LunchOut2
	case PunchLunchIn2:
		return p.LunchIn2
	case PunchClockOut:
		return p.ClockOut
	}
	return nil
}

// Set stores t in the slot for the given punch type.
func (p *PunchTimes) Set(pt PunchType, t *time.Time) {
	switch pt {
	case PunchClockIn:
		p.ClockIn = t
	case PunchLunchOut1:
		p.LunchOut1 = t
	case PunchLunchIn1:
		p.LunchIn1 = t
	case PunchLunchOut2:
		p.LunchOut2 = t
	case PunchLunchIn2:
		p.LunchIn2 = t
	case PunchClockOut:
		p.ClockOut = t
	}
}

// AttendanceDay is one record per (employee, work date). Raw punch times are
// immutable once set; every rounded and derived field is a pure function of the
// raw times and can always be recomputed from them.
type AttendanceDay struct {
	ID         string
	EmployeeID string
	Date       time.Time

	Raw     PunchTimes
	Rounded map[Granularity]PunchTimes

	WorkedMinutes   map[Granularity]int
	OvertimeMinutes map[Granularity]int
	Finalized       bool

	Allowances *allowance.Breakdown

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAttendanceDay returns an empty day with the granularity maps allocated.
func NewAttendanceDay(employeeID string, date time.Time) AttendanceDay {
	return AttendanceDay{
		EmployeeID:      employeeID,
		Date:            date,
		Rounded:         make(map[Granularity]PunchTimes, len(Granularities)),
		WorkedMinutes:   make(map[Granularity]int, len(Granularities)),
		OvertimeMinutes: make(map[Granularity]int, len(Granularities)),
	}
}

// HasPunch reports whether the raw slot for pt is already recorded.
func (d *AttendanceDay) HasPunch(pt PunchType) bool {
	return d.Raw.Get(pt) != nil
}

// LastPunch returns the latest recorded punch type in canonical order, or ""
// when no punch has been recorded yet. Punches are immutable and sequence
// validated, so canonical order is recording order.
func (d *AttendanceDay) LastPunch() PunchType {
	for i := len(PunchTypes) - 1; i >= 0; i-- {
		if d.HasPunch(PunchTypes[i]) {
			return PunchTypes[i]
		}
	}
	return ""
}
