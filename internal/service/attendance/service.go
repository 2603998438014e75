package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/employee"
	allowancecalc "github.com/kintai-works/kintai-backend-go/internal/service/allowance"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceDayRepository
	employee.EmployeeRepository
	allowance.AllowanceRuleRepository

	calculator *allowancecalc.Calculator
}

func NewAttendanceService(
	dayRepo attendance.AttendanceDayRepository,
	employeeRepo employee.EmployeeRepository,
	ruleRepo allowance.AllowanceRuleRepository,
	calculator *allowancecalc.Calculator,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceDayRepository: dayRepo,
		EmployeeRepository:      employeeRepo,
		AllowanceRuleRepository: ruleRepo,
		calculator:              calculator,
	}
}

// SubmitPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitPunch(ctx context.Context, req attendance.SubmitPunchRequest) (attendance.SubmitPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitPunchResponse{}, err
	}

	pt := attendance.PunchType(req.PunchType)
	if !pt.IsValid() {
		return attendance.SubmitPunchResponse{}, attendance.ErrInvalidPunchType
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.SubmitPunchResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.SubmitPunchResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return attendance.SubmitPunchResponse{}, employee.ErrEmployeeInactive
	}

	punchedAt := req.ParsedTimestamp()
	workDate := truncateToDay(punchedAt)

	day, err := a.AttendanceDayRepository.GetByEmployeeAndDate(ctx, emp.ID, workDate)
	isNew := false
	if err != nil {
		if !errors.Is(err, attendance.ErrDayNotFound) {
			return attendance.SubmitPunchResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
		}
		open, ok, err := a.openPreviousDay(ctx, emp.ID, workDate, pt)
		if err != nil {
			return attendance.SubmitPunchResponse{}, err
		}
		if ok {
			day = open
			workDate = open.Date
		} else {
			day = attendance.NewAttendanceDay(emp.ID, workDate)
			isNew = true
		}
	}

	if err := ValidatePunch(&day, pt); err != nil {
		return attendance.SubmitPunchResponse{}, err
	}

	raw := punchedAt.Truncate(time.Second)
	day.Raw.Set(pt, &raw)
	for g, rounded := range RoundAll(raw, pt) {
		times := day.Rounded[g]
		times.Set(pt, ptrTime(rounded))
		day.Rounded[g] = times
	}

	if isNew {
		day, err = a.AttendanceDayRepository.Create(ctx, day)
	} else {
		err = a.AttendanceDayRepository.Update(ctx, day)
	}
	if err != nil {
		return attendance.SubmitPunchResponse{}, fmt.Errorf("failed to store punch: %w", err)
	}

	roundedTimes := make(map[string]string, len(attendance.Granularities))
	for _, g := range attendance.Granularities {
		times := day.Rounded[g]
		if t := times.Get(pt); t != nil {
			roundedTimes[g.Suffix()] = t.Format("15:04")
		}
	}

	return attendance.SubmitPunchResponse{
		EmployeeID:   emp.ID,
		Date:         workDate.Format("2006-01-02"),
		PunchType:    string(pt),
		PunchLabel:   pt.Label(),
		RawTime:      raw.Format("15:04:05"),
		RoundedTimes: roundedTimes,
	}, nil
}

// openPreviousDay looks for a still-open night shift: yesterday's record with
// a clock-in and no clock-out. An after-midnight punch that is not a clock-in
// continues that shift instead of opening a fresh day.
func (a *AttendanceServiceImpl) openPreviousDay(ctx context.Context, employeeID string, workDate time.Time, pt attendance.PunchType) (attendance.AttendanceDay, bool, error) {
	if pt == attendance.PunchClockIn {
		return attendance.AttendanceDay{}, false, nil
	}

	prev, err := a.AttendanceDayRepository.GetByEmployeeAndDate(ctx, employeeID, workDate.AddDate(0, 0, -1))
	if err != nil {
		if errors.Is(err, attendance.ErrDayNotFound) {
			return attendance.AttendanceDay{}, false, nil
		}
		return attendance.AttendanceDay{}, false, fmt.Errorf("failed to get attendance day: %w", err)
	}
	if prev.Raw.ClockIn == nil || prev.Raw.ClockOut != nil {
		return attendance.AttendanceDay{}, false, nil
	}
	return prev, true, nil
}

// FinalizeDay implements attendance.AttendanceService. It recomputes every
// derived field from the raw punches; running it again on the same day yields
// the same record.
func (a *AttendanceServiceImpl) FinalizeDay(ctx context.Context, req attendance.FinalizeDayRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	day, err := a.AttendanceDayRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrDayNotFound) {
			return attendance.DayResponse{}, attendance.ErrDayNotFound
		}
		return attendance.DayResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}

	if day.Raw.ClockIn == nil || day.Raw.ClockOut == nil {
		return attendance.DayResponse{}, attendance.ErrDayNotClosed
	}

	// Each granularity uses its own rounded times; a coarse granularity is
	// never derived from a finer one.
	for _, g := range attendance.Granularities {
		normalized := NormalizeSequence(day.Rounded[g], day.Raw)
		worked := WorkedMinutes(*normalized.ClockIn, *normalized.ClockOut, BreakPairs(normalized))
		day.WorkedMinutes[g] = worked
		day.OvertimeMinutes[g] = OvertimeMinutes(worked)
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, day.EmployeeID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	hourlyRate, err := a.EmployeeRepository.GetHourlyRate(ctx, emp.ID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get hourly rate: %w", err)
	}

	earlyRules, err := a.AllowanceRuleRepository.GetActiveByCategory(ctx, allowance.CategoryEarlyWork)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get early work rules: %w", err)
	}
	nightShiftRules, err := a.AllowanceRuleRepository.GetActiveByCategory(ctx, allowance.CategoryNightShift)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to get night shift rules: %w", err)
	}

	breakdown, err := a.calculator.Compute(ctx, allowancecalc.Inputs{
		Day:             &day,
		Employee:        emp,
		HourlyRate:      hourlyRate,
		EarlyWorkRules:  earlyRules,
		NightShiftRules: nightShiftRules,
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}
	day.Allowances = &breakdown
	day.Finalized = true

	if err := a.AttendanceDayRepository.Update(ctx, day); err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to update attendance day: %w", err)
	}

	return mapDayToResponse(day), nil
}

// GetDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDay(ctx context.Context, employeeID string, date string) (attendance.DayResponse, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	day, err := a.AttendanceDayRepository.GetByEmployeeAndDate(ctx, employeeID, parsed)
	if err != nil {
		if errors.Is(err, attendance.ErrDayNotFound) {
			return attendance.DayResponse{}, attendance.ErrDayNotFound
		}
		return attendance.DayResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}
	return mapDayToResponse(day), nil
}

// ListDays implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListDays(ctx context.Context, filter attendance.ListDaysFilter) (attendance.ListDaysResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 31
	}

	days, total, err := a.AttendanceDayRepository.ListByEmployee(ctx, filter)
	if err != nil {
		return attendance.ListDaysResponse{}, fmt.Errorf("failed to list attendance days: %w", err)
	}

	responses := make([]attendance.DayResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, mapDayToResponse(day))
	}

	return attendance.ListDaysResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Days:       responses,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func ptrTime(t time.Time) *time.Time { return &t }

// clockString formats a punch time for API consumers.
func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

func rawClockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func minutesPtr(m map[attendance.Granularity]int, g attendance.Granularity, finalized bool) *int {
	if !finalized {
		return nil
	}
	v := m[g]
	return &v
}

// mapDayToResponse converts an AttendanceDay entity to its API shape.
func mapDayToResponse(day attendance.AttendanceDay) attendance.DayResponse {
	r15 := day.Rounded[attendance.Granularity15]
	r10 := day.Rounded[attendance.Granularity10]
	r5 := day.Rounded[attendance.Granularity5]
	r1 := day.Rounded[attendance.Granularity1]

	resp := attendance.DayResponse{
		ID:         day.ID,
		EmployeeID: day.EmployeeID,
		Date:       day.Date.Format("2006-01-02"),

		ClockInTime:   rawClockString(day.Raw.ClockIn),
		LunchOut1Time: rawClockString(day.Raw.LunchOut1),
		LunchIn1Time:  rawClockString(day.Raw.LunchIn1),
		LunchOut2Time: rawClockString(day.Raw.LunchOut2),
		LunchIn2Time:  rawClockString(day.Raw.LunchIn2),
		ClockOutTime:  rawClockString(day.Raw.ClockOut),

		ClockInTime15min:   clockString(r15.ClockIn),
		LunchOut1Time15min: clockString(r15.LunchOut1),
		LunchIn1Time15min:  clockString(r15.LunchIn1),
		LunchOut2Time15min: clockString(r15.LunchOut2),
		LunchIn2Time15min:  clockString(r15.LunchIn2),
		ClockOutTime15min:  clockString(r15.ClockOut),

		ClockInTime10min:   clockString(r10.ClockIn),
		LunchOut1Time10min: clockString(r10.LunchOut1),
		LunchIn1Time10min:  clockString(r10.LunchIn1),
		LunchOut2Time10min: clockString(r10.LunchOut2),
		LunchIn2Time10min:  clockString(r10.LunchIn2),
		ClockOutTime10min:  clockString(r10.ClockOut),

		ClockInTime5min:   clockString(r5.ClockIn),
		LunchOut1Time5min: clockString(r5.LunchOut1),
		LunchIn1Time5min:  clockString(r5.LunchIn1),
		LunchOut2Time5min: clockString(r5.LunchOut2),
		LunchIn2Time5min:  clockString(r5.LunchIn2),
		ClockOutTime5min:  clockString(r5.ClockOut),

		ClockInTime1min:   clockString(r1.ClockIn),
		LunchOut1Time1min: clockString(r1.LunchOut1),
		LunchIn1Time1min:  clockString(r1.LunchIn1),
		LunchOut2Time1min: clockString(r1.LunchOut2),
		LunchIn2Time1min:  clockString(r1.LunchIn2),
		ClockOutTime1min:  clockString(r1.ClockOut),

		TotalWorkTime15min: minutesPtr(day.WorkedMinutes, attendance.Granularity15, day.Finalized),
		TotalWorkTime10min: minutesPtr(day.WorkedMinutes, attendance.Granularity10, day.Finalized),
		TotalWorkTime5min:  minutesPtr(day.WorkedMinutes, attendance.Granularity5, day.Finalized),
		TotalWorkTime1min:  minutesPtr(day.WorkedMinutes, attendance.Granularity1, day.Finalized),

		Overtime15min: minutesPtr(day.OvertimeMinutes, attendance.Granularity15, day.Finalized),
		Overtime10min: minutesPtr(day.OvertimeMinutes, attendance.Granularity10, day.Finalized),
		Overtime5min:  minutesPtr(day.OvertimeMinutes, attendance.Granularity5, day.Finalized),
		Overtime1min:  minutesPtr(day.OvertimeMinutes, attendance.Granularity1, day.Finalized),

		Finalized: day.Finalized,
		CreatedAt: day.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: day.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if day.Allowances != nil {
		b := day.Allowances
		resp.Allowances = &attendance.AllowanceBreakdownResponse{
			Overtime:              attendance.AllowanceLineResponse{Hours: b.Overtime.Hours, Amount: b.Overtime.Amount},
			NightWork:             attendance.AllowanceLineResponse{Hours: b.NightWork.Hours, Amount: b.NightWork.Amount},
			HolidayWork:           attendance.AllowanceLineResponse{Hours: b.HolidayWork.Hours, Amount: b.HolidayWork.Amount},
			EarlyWork:             attendance.AllowanceLineResponse{Hours: b.EarlyWork.Hours, Amount: b.EarlyWork.Amount},
			NightShift:            attendance.AllowanceLineResponse{Hours: b.NightShift.Hours, Amount: b.NightShift.Amount},
			TotalLegalAllowance:   b.TotalLegal,
			TotalCompanyAllowance: b.TotalCompany,
			TotalAllowance:        b.Total,
		}
	}

	return resp
}
