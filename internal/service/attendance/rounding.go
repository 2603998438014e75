package attendance

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
)

// Punch rounding policy. Opening punches (clock-in, lunch-in-2) round up so
// the company never pays for un-worked minutes before the granularity
// boundary; closing punches (lunch-out-1/2, clock-out) round down for the
// same reason. Unrecognized types round down.
//
// lunch-in-1 carries the one-hour-minimum lunch rule: any return punched
// during the 13 o'clock hour counts as exactly 14:00, at every granularity.

// RoundPunch rounds a raw punch time per the punch type's policy at the given
// granularity. Seconds are always zeroed. At granularity 1 the minute-truncated
// time is returned unchanged (the lunch rule above still applies).
func RoundPunch(t time.Time, pt attendance.PunchType, g attendance.Granularity) time.Time {
	t = truncateToMinute(t)

	if pt == attendance.PunchLunchIn1 && t.Hour() == 13 {
		return time.Date(t.Year(), t.Month(), t.Day(), 14, 0, 0, 0, t.Location())
	}

	if g == attendance.Granularity1 {
		return t
	}

	switch pt {
	case attendance.PunchClockIn, attendance.PunchLunchIn1, attendance.PunchLunchIn2:
		return ceilToGranularity(t, g)
	case attendance.PunchLunchOut1, attendance.PunchLunchOut2, attendance.PunchClockOut:
		return floorToGranularity(t, g)
	default:
		return floorToGranularity(t, g)
	}
}

func truncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// ceilToGranularity rounds up to the next multiple of g minutes. An exact
// multiple is unchanged; rounding past :59 rolls the hour forward.
func ceilToGranularity(t time.Time, g attendance.Granularity) time.Time {
	rem := t.Minute() % int(g)
	if rem == 0 {
		return t
	}
	return t.Add(time.Duration(int(g)-rem) * time.Minute)
}

// floorToGranularity rounds down to the previous multiple of g minutes.
func floorToGranularity(t time.Time, g attendance.Granularity) time.Time {
	rem := t.Minute() % int(g)
	return t.Add(-time.Duration(rem) * time.Minute)
}

// RoundAll rounds a punch at every tracked granularity, keyed by granularity.
func RoundAll(t time.Time, pt attendance.PunchType) map[attendance.Granularity]time.Time {
	out := make(map[attendance.Granularity]time.Time, len(attendance.Granularities))
	for _, g := range attendance.Granularities {
		out[g] = RoundPunch(t, pt, g)
	}
	return out
}
