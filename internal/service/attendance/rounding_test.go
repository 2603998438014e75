package attendance

import (
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func clock(t time.Time) string {
	return t.Format("15:04")
}

func TestRoundPunch_ClockInRoundsUp(t *testing.T) {
	raw := punchAt(6, 7)

	tests := []struct {
		granularity attendance.Granularity
		want        string
	}{
		{attendance.Granularity15, "06:15"},
		{attendance.Granularity10, "06:10"},
		{attendance.Granularity5, "06:10"},
		{attendance.Granularity1, "06:07"},
	}

	for _, tt := range tests {
		got := RoundPunch(raw, attendance.PunchClockIn, tt.granularity)
		assert.Equal(t, tt.want, clock(got), "granularity %d", tt.granularity)
	}
}

func TestRoundPunch_ClockOutRoundsDown(t *testing.T) {
	raw := punchAt(17, 42)

	tests := []struct {
		granularity attendance.Granularity
		want        string
	}{
		{attendance.Granularity15, "17:30"},
		{attendance.Granularity10, "17:40"},
		{attendance.Granularity5, "17:40"},
		{attendance.Granularity1, "17:42"},
	}

	for _, tt := range tests {
		got := RoundPunch(raw, attendance.PunchClockOut, tt.granularity)
		assert.Equal(t, tt.want, clock(got), "granularity %d", tt.granularity)
	}
}

func TestRoundPunch_LunchOutRoundsDown(t *testing.T) {
	raw := punchAt(12, 57)

	got := RoundPunch(raw, attendance.PunchLunchOut1, attendance.Granularity15)
	assert.Equal(t, "12:45", clock(got))

	got = RoundPunch(raw, attendance.PunchLunchOut1, attendance.Granularity5)
	assert.Equal(t, "12:55", clock(got))
}

func TestRoundPunch_LunchIn1During13HourForcesFourteen(t *testing.T) {
	// One hour minimum lunch: any return in the 13 o'clock hour is 14:00,
	// even at granularity 1.
	for _, g := range attendance.Granularities {
		for _, minute := range []int{0, 1, 40, 59} {
			got := RoundPunch(punchAt(13, minute), attendance.PunchLunchIn1, g)
			assert.Equal(t, "14:00", clock(got), "granularity %d minute %d", g, minute)
		}
	}
}

func TestRoundPunch_LunchIn1OutsideLunchHourRoundsUp(t *testing.T) {
	got := RoundPunch(punchAt(14, 3), attendance.PunchLunchIn1, attendance.Granularity15)
	assert.Equal(t, "14:15", clock(got))

	// The 13-hour rule only covers hour 13, not 12.
	got = RoundPunch(punchAt(12, 58), attendance.PunchLunchIn1, attendance.Granularity15)
	assert.Equal(t, "13:00", clock(got))
}

func TestRoundPunch_LunchIn2RoundsUp(t *testing.T) {
	// Second lunch return has no forced-hour rule, even during hour 13.
	got := RoundPunch(punchAt(13, 40), attendance.PunchLunchIn2, attendance.Granularity15)
	assert.Equal(t, "13:45", clock(got))
}

func TestRoundPunch_ExactBoundaryUnchanged(t *testing.T) {
	raw := punchAt(9, 30)
	for _, pt := range attendance.PunchTypes {
		if pt == attendance.PunchLunchIn1 {
			continue
		}
		for _, g := range attendance.Granularities {
			got := RoundPunch(raw, pt, g)
			assert.Equal(t, "09:30", clock(got), "type %s granularity %d", pt, g)
		}
	}
}

func TestRoundPunch_SecondsDropped(t *testing.T) {
	raw := time.Date(2025, 6, 2, 8, 0, 59, 123, time.UTC)
	got := RoundPunch(raw, attendance.PunchClockIn, attendance.Granularity1)
	assert.Equal(t, "08:00", clock(got))
	assert.Zero(t, got.Second())
	assert.Zero(t, got.Nanosecond())
}

func TestRoundPunch_CeilRollsHourForward(t *testing.T) {
	got := RoundPunch(punchAt(8, 59), attendance.PunchClockIn, attendance.Granularity15)
	assert.Equal(t, "09:00", clock(got))
}

func TestRoundPunch_Idempotent(t *testing.T) {
	// Rounding an already rounded time must not move it again.
	for _, pt := range attendance.PunchTypes {
		for _, g := range attendance.Granularities {
			once := RoundPunch(punchAt(16, 23), pt, g)
			twice := RoundPunch(once, pt, g)
			require.True(t, once.Equal(twice), "type %s granularity %d: %s != %s", pt, g, clock(once), clock(twice))
		}
	}
}

func TestRoundAll_CoversEveryGranularity(t *testing.T) {
	out := RoundAll(punchAt(6, 7), attendance.PunchClockIn)
	require.Len(t, out, 4)
	assert.Equal(t, "06:15", clock(out[attendance.Granularity15]))
	assert.Equal(t, "06:10", clock(out[attendance.Granularity10]))
	assert.Equal(t, "06:10", clock(out[attendance.Granularity5]))
	assert.Equal(t, "06:07", clock(out[attendance.Granularity1]))
}
