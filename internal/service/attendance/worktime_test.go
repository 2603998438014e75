package attendance

import (
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(hour, minute int) *time.Time {
	t := time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestBreakPairs(t *testing.T) {
	t.Run("no breaks", func(t *testing.T) {
		pairs := BreakPairs(attendance.PunchTimes{ClockIn: tp(8, 0), ClockOut: tp(17, 0)})
		assert.Empty(t, pairs)
	})

	t.Run("one complete pair", func(t *testing.T) {
		pairs := BreakPairs(attendance.PunchTimes{
			ClockIn:   tp(8, 0),
			LunchOut1: tp(12, 0),
			LunchIn1:  tp(13, 0),
			ClockOut:  tp(17, 0),
		})
		require.Len(t, pairs, 1)
		assert.Equal(t, *tp(12, 0), pairs[0].Out)
		assert.Equal(t, *tp(13, 0), pairs[0].In)
	})

	t.Run("open pair contributes nothing", func(t *testing.T) {
		pairs := BreakPairs(attendance.PunchTimes{
			ClockIn:   tp(8, 0),
			LunchOut1: tp(12, 0),
		})
		assert.Empty(t, pairs)
	})

	t.Run("two complete pairs", func(t *testing.T) {
		pairs := BreakPairs(attendance.PunchTimes{
			ClockIn:   tp(8, 0),
			LunchOut1: tp(12, 0),
			LunchIn1:  tp(13, 0),
			LunchOut2: tp(15, 0),
			LunchIn2:  tp(15, 30),
			ClockOut:  tp(19, 0),
		})
		require.Len(t, pairs, 2)
	})
}

func TestWorkedMinutes(t *testing.T) {
	t.Run("standard day with one hour lunch", func(t *testing.T) {
		breaks := []BreakPair{{Out: *tp(12, 0), In: *tp(13, 0)}}
		// 08:00-17:00 minus 60 = 480
		assert.Equal(t, 480, WorkedMinutes(*tp(8, 0), *tp(17, 0), breaks))
	})

	t.Run("ninety minute total break", func(t *testing.T) {
		breaks := []BreakPair{
			{Out: *tp(12, 0), In: *tp(13, 0)},
			{Out: *tp(15, 0), In: *tp(15, 30)},
		}
		assert.Equal(t, 450, WorkedMinutes(*tp(8, 0), *tp(17, 0), breaks))
	})

	t.Run("negative clamps to zero", func(t *testing.T) {
		assert.Equal(t, 0, WorkedMinutes(*tp(17, 0), *tp(8, 0), nil))
	})

	t.Run("break longer than span clamps to zero", func(t *testing.T) {
		breaks := []BreakPair{{Out: *tp(8, 0), In: *tp(20, 0)}}
		assert.Equal(t, 0, WorkedMinutes(*tp(8, 0), *tp(9, 0), breaks))
	})
}

func TestOvertimeMinutes(t *testing.T) {
	assert.Equal(t, 0, OvertimeMinutes(0))
	assert.Equal(t, 0, OvertimeMinutes(479))
	assert.Equal(t, 0, OvertimeMinutes(480))
	assert.Equal(t, 1, OvertimeMinutes(481))
	assert.Equal(t, 195, OvertimeMinutes(675))
}

// Each granularity computes from its own rounded punches: a 06:07-17:42 day
// with a 12:57-14:00 lunch lands on different totals per granularity.
func TestWorkedMinutes_PerGranularityIndependence(t *testing.T) {
	raw := map[attendance.PunchType]time.Time{
		attendance.PunchClockIn:   *tp(6, 7),
		attendance.PunchLunchOut1: *tp(12, 57),
		attendance.PunchLunchIn1:  *tp(13, 40),
		attendance.PunchClockOut:  *tp(17, 42),
	}

	wantWorked := map[attendance.Granularity]int{
		attendance.Granularity15: 600, // 06:15-17:30 minus 12:45-14:00
		attendance.Granularity10: 620, // 06:10-17:40 minus 12:50-14:00
		attendance.Granularity5:  625, // 06:10-17:40 minus 12:55-14:00
		attendance.Granularity1:  632, // 06:07-17:42 minus 12:57-14:00
	}
	wantOvertime := map[attendance.Granularity]int{
		attendance.Granularity15: 120,
		attendance.Granularity10: 140,
		attendance.Granularity5:  145,
		attendance.Granularity1:  152,
	}

	for _, g := range attendance.Granularities {
		var rounded attendance.PunchTimes
		for pt, ts := range raw {
			r := RoundPunch(ts, pt, g)
			rounded.Set(pt, &r)
		}

		worked := WorkedMinutes(*rounded.ClockIn, *rounded.ClockOut, BreakPairs(rounded))
		assert.Equal(t, wantWorked[g], worked, "worked at granularity %d", g)
		assert.Equal(t, wantOvertime[g], OvertimeMinutes(worked), "overtime at granularity %d", g)
	}
}

func TestNormalizeSequence_DayShiftUnchanged(t *testing.T) {
	p := attendance.PunchTimes{
		ClockIn:   tp(8, 0),
		LunchOut1: tp(12, 0),
		LunchIn1:  tp(13, 0),
		ClockOut:  tp(17, 0),
	}

	out := NormalizeSequence(p, p)
	assert.True(t, out.ClockIn.Equal(*tp(8, 0)))
	assert.True(t, out.ClockOut.Equal(*tp(17, 0)))
}

func TestNormalizeSequence_CrossMidnightRollsForward(t *testing.T) {
	// Night shift: in at 22:00, lunch 01:30-02:30, out at 06:30. Raw clock
	// values all carry the work date, so later punches look earlier.
	p := attendance.PunchTimes{
		ClockIn:   tp(22, 0),
		LunchOut1: tp(1, 30),
		LunchIn1:  tp(2, 30),
		ClockOut:  tp(6, 30),
	}

	out := NormalizeSequence(p, p)

	require.NotNil(t, out.ClockOut)
	assert.Equal(t, 1, out.ClockOut.Day()-out.ClockIn.Day())

	worked := WorkedMinutes(*out.ClockIn, *out.ClockOut, BreakPairs(out))
	assert.Equal(t, 450, worked)
}

func TestNormalizeSequence_SkipsMissingPunches(t *testing.T) {
	p := attendance.PunchTimes{
		ClockIn:  tp(23, 0),
		ClockOut: tp(7, 0),
	}

	out := NormalizeSequence(p, p)
	assert.Nil(t, out.LunchOut1)
	assert.Equal(t, 480, WorkedMinutes(*out.ClockIn, *out.ClockOut, nil))
}

// Ceiling a late clock-in past midnight must not be mistaken for a night
// shift: the raw order is monotonic, so no punch is rolled to the next day
// and the inverted rounded pair clamps to zero worked minutes.
func TestNormalizeSequence_RoundingInversionStaysSameDay(t *testing.T) {
	raw := attendance.PunchTimes{
		ClockIn:  tp(23, 55),
		ClockOut: tp(23, 59),
	}

	var rounded attendance.PunchTimes
	for _, pt := range []attendance.PunchType{attendance.PunchClockIn, attendance.PunchClockOut} {
		r := RoundPunch(*raw.Get(pt), pt, attendance.Granularity15)
		rounded.Set(pt, &r)
	}
	// clock-in ceils to 00:00 of June 3, clock-out floors to 23:45
	require.Equal(t, 3, rounded.ClockIn.Day())
	require.Equal(t, "23:45", rounded.ClockOut.Format("15:04"))

	out := NormalizeSequence(rounded, raw)
	assert.Equal(t, 2, out.ClockOut.Day())
	assert.Equal(t, 0, WorkedMinutes(*out.ClockIn, *out.ClockOut, BreakPairs(out)))
}

// A genuine night shift recorded with real timestamps keeps its next-day
// punches where they are.
func TestNormalizeSequence_RealTimestampsUntouched(t *testing.T) {
	nextDay := time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC)
	p := attendance.PunchTimes{
		ClockIn:  tp(22, 0),
		ClockOut: &nextDay,
	}

	out := NormalizeSequence(p, p)
	assert.True(t, out.ClockOut.Equal(nextDay))
	assert.Equal(t, 180, WorkedMinutes(*out.ClockIn, *out.ClockOut, nil))
}
