package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/employee"
	allowancecalc "github.com/kintai-works/kintai-backend-go/internal/service/allowance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDayRepo is an in-memory AttendanceDayRepository keyed by
// (employee, date).
type fakeDayRepo struct {
	days   map[string]attendance.AttendanceDay
	nextID int
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[string]attendance.AttendanceDay)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeDayRepo) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	f.nextID++
	day.ID = "day-" + time.Now().Format("150405") + "-" + string(rune('a'+f.nextID))
	f.days[dayKey(day.EmployeeID, day.Date)] = day
	return day, nil
}

func (f *fakeDayRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceDay, error) {
	day, ok := f.days[dayKey(employeeID, date)]
	if !ok {
		return attendance.AttendanceDay{}, attendance.ErrDayNotFound
	}
	return day, nil
}

func (f *fakeDayRepo) Update(ctx context.Context, day attendance.AttendanceDay) error {
	key := dayKey(day.EmployeeID, day.Date)
	if _, ok := f.days[key]; !ok {
		return attendance.ErrDayNotFound
	}
	f.days[key] = day
	return nil
}

func (f *fakeDayRepo) ListByEmployee(ctx context.Context, filter attendance.ListDaysFilter) ([]attendance.AttendanceDay, int64, error) {
	var out []attendance.AttendanceDay
	for _, day := range f.days {
		if day.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && day.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && day.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, day)
	}
	return out, int64(len(out)), nil
}

// fakeEmployeeRepo serves a single canned employee.
type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetHourlyRate(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return f.emp.HourlyRate, nil
}

// fakeRuleRepo serves canned allowance rules per category.
type fakeRuleRepo struct {
	rules map[allowance.Category][]allowance.AllowanceRule
}

func (f *fakeRuleRepo) GetActiveByCategory(ctx context.Context, category allowance.Category) ([]allowance.AllowanceRule, error) {
	return f.rules[category], nil
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule allowance.AllowanceRule) (allowance.AllowanceRule, error) {
	if f.rules == nil {
		f.rules = make(map[allowance.Category][]allowance.AllowanceRule)
	}
	f.rules[rule.Category] = append(f.rules[rule.Category], rule)
	return rule, nil
}

// noHolidays answers no to every holiday question.
type noHolidays struct{}

func (noHolidays) IsCompensatoryHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return false, nil
}

func (noHolidays) SubstitutePremium(ctx context.Context, employeeID string, workDate time.Time) (decimal.Decimal, bool, error) {
	return decimal.Decimal{}, false, nil
}

func (noHolidays) IsHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return false, nil
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		EmployeeCode:     "10042",
		IsActive:         true,
		OvertimeEligible: true,
		HourlyRate:       decimal.NewFromInt(2000),
	}
}

func newTestService(dayRepo *fakeDayRepo, emp employee.Employee) attendance.AttendanceService {
	calc := allowancecalc.NewCalculator(noHolidays{}, attendance.Granularity15)
	return NewAttendanceService(dayRepo, &fakeEmployeeRepo{emp: emp}, &fakeRuleRepo{}, calc)
}

func punchReq(pt attendance.PunchType, timestamp string) attendance.SubmitPunchRequest {
	return attendance.SubmitPunchRequest{
		EmployeeID: "emp-1",
		PunchType:  string(pt),
		Timestamp:  timestamp,
	}
}

func TestSubmitPunch_FirstPunchCreatesDay(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())

	resp, err := svc.SubmitPunch(context.Background(), punchReq(attendance.PunchClockIn, "2025-06-02T06:07:13Z"))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "clock_in", resp.PunchType)
	assert.Equal(t, "出社", resp.PunchLabel)
	assert.Equal(t, "06:07:13", resp.RawTime)
	assert.Equal(t, map[string]string{
		"15min": "06:15",
		"10min": "06:10",
		"5min":  "06:10",
		"1min":  "06:07",
	}, resp.RoundedTimes)

	day, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotEmpty(t, day.ID)
	require.NotNil(t, day.Raw.ClockIn)
	assert.False(t, day.Finalized)
}

func TestSubmitPunch_DuplicateRejected(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T06:07:00Z"))
	require.NoError(t, err)

	_, err = svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T06:30:00Z"))
	assert.ErrorIs(t, err, attendance.ErrDuplicatePunch)
}

func TestSubmitPunch_OutOfSequenceRejected(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())

	_, err := svc.SubmitPunch(context.Background(), punchReq(attendance.PunchLunchOut1, "2025-06-02T12:00:00Z"))

	var seqErr *attendance.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, attendance.StateNotClockedIn, seqErr.CurrentState)
	assert.Equal(t, []attendance.PunchType{attendance.PunchClockIn}, seqErr.AllowedNext)
}

func TestSubmitPunch_InvalidTypeRejected(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())

	req := attendance.SubmitPunchRequest{
		EmployeeID: "emp-1",
		PunchType:  "tea_break",
		Timestamp:  "2025-06-02T10:00:00Z",
	}
	_, err := svc.SubmitPunch(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrInvalidPunchType)
}

func TestSubmitPunch_UnknownEmployee(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())

	req := punchReq(attendance.PunchClockIn, "2025-06-02T08:00:00Z")
	req.EmployeeID = "emp-unknown"
	_, err := svc.SubmitPunch(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSubmitPunch_InactiveEmployee(t *testing.T) {
	repo := newFakeDayRepo()
	emp := testEmployee()
	emp.IsActive = false
	svc := newTestService(repo, emp)

	_, err := svc.SubmitPunch(context.Background(), punchReq(attendance.PunchClockIn, "2025-06-02T08:00:00Z"))
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestFinalizeDay_ComputesAllGranularities(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	punches := []struct {
		pt attendance.PunchType
		ts string
	}{
		{attendance.PunchClockIn, "2025-06-02T06:07:00Z"},
		{attendance.PunchLunchOut1, "2025-06-02T12:57:00Z"},
		{attendance.PunchLunchIn1, "2025-06-02T13:40:00Z"},
		{attendance.PunchClockOut, "2025-06-02T17:42:00Z"},
	}
	for _, p := range punches {
		_, err := svc.SubmitPunch(ctx, punchReq(p.pt, p.ts))
		require.NoError(t, err)
	}

	resp, err := svc.FinalizeDay(ctx, attendance.FinalizeDayRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
	})
	require.NoError(t, err)

	assert.True(t, resp.Finalized)

	require.NotNil(t, resp.TotalWorkTime15min)
	assert.Equal(t, 600, *resp.TotalWorkTime15min)
	require.NotNil(t, resp.TotalWorkTime10min)
	assert.Equal(t, 620, *resp.TotalWorkTime10min)
	require.NotNil(t, resp.TotalWorkTime5min)
	assert.Equal(t, 625, *resp.TotalWorkTime5min)
	require.NotNil(t, resp.TotalWorkTime1min)
	assert.Equal(t, 632, *resp.TotalWorkTime1min)

	require.NotNil(t, resp.Overtime15min)
	assert.Equal(t, 120, *resp.Overtime15min)
	require.NotNil(t, resp.Overtime1min)
	assert.Equal(t, 152, *resp.Overtime1min)

	// lunch_in1 punched at 13:40 is 14:00 at every granularity
	require.NotNil(t, resp.LunchIn1Time15min)
	assert.Equal(t, "14:00", *resp.LunchIn1Time15min)
	require.NotNil(t, resp.LunchIn1Time1min)
	assert.Equal(t, "14:00", *resp.LunchIn1Time1min)

	// Overtime allowance at the payroll granularity: 2h * 2000 * 0.25
	require.NotNil(t, resp.Allowances)
	assert.True(t, resp.Allowances.Overtime.Amount.Equal(decimal.NewFromInt(1000)),
		"overtime amount: %s", resp.Allowances.Overtime.Amount)
}

func TestFinalizeDay_Idempotent(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T08:00:00Z"))
	require.NoError(t, err)
	_, err = svc.SubmitPunch(ctx, punchReq(attendance.PunchClockOut, "2025-06-02T17:00:00Z"))
	require.NoError(t, err)

	finalizeReq := attendance.FinalizeDayRequest{EmployeeID: "emp-1", Date: "2025-06-02"}
	first, err := svc.FinalizeDay(ctx, finalizeReq)
	require.NoError(t, err)
	second, err := svc.FinalizeDay(ctx, finalizeReq)
	require.NoError(t, err)

	assert.Equal(t, first.TotalWorkTime15min, second.TotalWorkTime15min)
	assert.Equal(t, first.Overtime15min, second.Overtime15min)
}

func TestFinalizeDay_WithoutClockOut(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T08:00:00Z"))
	require.NoError(t, err)

	_, err = svc.FinalizeDay(ctx, attendance.FinalizeDayRequest{EmployeeID: "emp-1", Date: "2025-06-02"})
	assert.ErrorIs(t, err, attendance.ErrDayNotClosed)
}

func TestFinalizeDay_UnknownDay(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())

	_, err := svc.FinalizeDay(context.Background(), attendance.FinalizeDayRequest{EmployeeID: "emp-1", Date: "2025-06-02"})
	assert.ErrorIs(t, err, attendance.ErrDayNotFound)
}

// A night shift's after-midnight punches continue the previous day's open
// record instead of opening a fresh day they would be out of sequence on.
func TestSubmitPunch_AfterMidnightContinuesOpenShift(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T22:00:00Z"))
	require.NoError(t, err)

	resp, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockOut, "2025-06-03T01:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.Date)

	_, err = repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrDayNotFound)

	day, err := svc.FinalizeDay(ctx, attendance.FinalizeDayRequest{EmployeeID: "emp-1", Date: "2025-06-02"})
	require.NoError(t, err)
	require.NotNil(t, day.TotalWorkTime15min)
	assert.Equal(t, 180, *day.TotalWorkTime15min)
	assert.Equal(t, 180, *day.TotalWorkTime1min)
	assert.Equal(t, 0, *day.Overtime15min)

	// The shift is closed now, so the next evening's clock-in opens a new day.
	next, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-03T22:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", next.Date)
}

// A short late-evening shift whose rounded clock-in ceils past midnight must
// not be paid as a full day: the raw order is same-day, so worked minutes
// clamp to zero at the coarse granularities.
func TestFinalizeDay_LateEveningRoundingDoesNotInflate(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T23:55:00Z"))
	require.NoError(t, err)
	_, err = svc.SubmitPunch(ctx, punchReq(attendance.PunchClockOut, "2025-06-02T23:59:00Z"))
	require.NoError(t, err)

	day, err := svc.FinalizeDay(ctx, attendance.FinalizeDayRequest{EmployeeID: "emp-1", Date: "2025-06-02"})
	require.NoError(t, err)

	// 15min rounds to 00:00 next day / 23:45, 5min to 23:55 / 23:55
	assert.Equal(t, 0, *day.TotalWorkTime15min)
	assert.Equal(t, 0, *day.TotalWorkTime5min)
	assert.Equal(t, 4, *day.TotalWorkTime1min)
	assert.Equal(t, 0, *day.Overtime15min)
	assert.Equal(t, 0, *day.Overtime1min)
}

func TestGetDay_UnfinalizedHasNoTotals(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, "2025-06-02T08:00:00Z"))
	require.NoError(t, err)

	resp, err := svc.GetDay(ctx, "emp-1", "2025-06-02")
	require.NoError(t, err)

	assert.False(t, resp.Finalized)
	assert.Nil(t, resp.TotalWorkTime15min)
	assert.Nil(t, resp.Overtime15min)
	require.NotNil(t, resp.ClockInTime)
	assert.Equal(t, "08:00:00", *resp.ClockInTime)
	require.NotNil(t, resp.ClockInTime15min)
	assert.Equal(t, "08:00", *resp.ClockInTime15min)
	assert.Nil(t, resp.ClockOutTime)
}

func TestListDays_FiltersByRange(t *testing.T) {
	repo := newFakeDayRepo()
	svc := newTestService(repo, testEmployee())
	ctx := context.Background()

	for _, date := range []string{"2025-06-02", "2025-06-03", "2025-07-01"} {
		_, err := svc.SubmitPunch(ctx, punchReq(attendance.PunchClockIn, date+"T08:00:00Z"))
		require.NoError(t, err)
	}

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	resp, err := svc.ListDays(ctx, attendance.ListDaysFilter{
		EmployeeID: "emp-1",
		StartDate:  &start,
		EndDate:    &end,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.TotalCount)
	assert.Len(t, resp.Days, 2)
}
