package attendance

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
)

// DailyStandardMinutes is the statutory daily threshold (8 hours). Worked
// minutes beyond it count as overtime at every granularity.
const DailyStandardMinutes = 480

// BreakPair is one completed lunch break: the out punch and the matching
// return punch.
type BreakPair struct {
	Out time.Time
	In  time.Time
}

// BreakPairs extracts the completed (out, in) lunch pairs from a set of punch
// times. An open pair (out without in) contributes nothing.
func BreakPairs(p attendance.PunchTimes) []BreakPair {
	var pairs []BreakPair
	if p.LunchOut1 != nil && p.LunchIn1 != nil {
		pairs = append(pairs, BreakPair{Out: *p.LunchOut1, In: *p.LunchIn1})
	}
	if p.LunchOut2 != nil && p.LunchIn2 != nil {
		pairs = append(pairs, BreakPair{Out: *p.LunchOut2, In: *p.LunchIn2})
	}
	return pairs
}

// NormalizeSequence returns a copy of rounded where punches are moved to the
// following day wherever the RAW punch order wraps past midnight. Day
// boundaries come from the raw sequence only: ceiling a 23:55 clock-in to
// midnight must not turn a four minute evening shift into a full day, so an
// inversion introduced by rounding is never rolled.
func NormalizeSequence(rounded, raw attendance.PunchTimes) attendance.PunchTimes {
	var out attendance.PunchTimes
	days := 0
	var prev *time.Time
	for _, pt := range attendance.PunchTypes {
		t := rounded.Get(pt)
		if t == nil {
			continue
		}
		ref := raw.Get(pt)
		if ref == nil {
			ref = t
		}
		if prev != nil && ref.Before(*prev) {
			days++
		}
		v := t.Add(time.Duration(days) * 24 * time.Hour)
		out.Set(pt, &v)
		prev = ref
	}
	return out
}

// WorkedMinutes computes net worked minutes between the rounded clock-in and
// clock-out, minus the completed break pairs. A negative result is clamped to
// zero: malformed data is a leniency here, not an error.
func WorkedMinutes(clockIn, clockOut time.Time, breaks []BreakPair) int {
	total := int(clockOut.Sub(clockIn).Minutes())
	for _, b := range breaks {
		total -= int(b.In.Sub(b.Out).Minutes())
	}
	if total < 0 {
		return 0
	}
	return total
}

// OvertimeMinutes derives overtime from worked minutes against the fixed
// daily threshold. Applied per granularity with that granularity's own
// worked-minutes value; no pro-rating.
func OvertimeMinutes(worked int) int {
	if worked <= DailyStandardMinutes {
		return 0
	}
	return worked - DailyStandardMinutes
}
