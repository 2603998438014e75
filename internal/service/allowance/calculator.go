package allowance

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Statutory premium rates.
var (
	overtimePremium    = decimal.NewFromFloat(0.25)
	nightWorkPremium   = decimal.NewFromFloat(0.25)
	holidayWorkPremium = decimal.NewFromFloat(0.35)
)

// Night window: 22:00 of the work date through 05:00 the next morning.
const (
	nightWindowStartHour = 22
	nightWindowEndHour   = 29
)

var sixty = decimal.NewFromInt(60)

// HolidayContext answers the holiday-substitution queries that change how
// holiday work is paid.
type HolidayContext interface {
	IsCompensatoryHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error)
	SubstitutePremium(ctx context.Context, employeeID string, workDate time.Time) (rate decimal.Decimal, ok bool, err error)
	IsHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// Inputs carries everything one allowance computation needs. The hourly rate
// is injected by the caller; the calculator never reads ambient state.
type Inputs struct {
	Day             *attendance.AttendanceDay
	Employee        employee.Employee
	HourlyRate      decimal.Decimal
	EarlyWorkRules  []allowance.AllowanceRule
	NightShiftRules []allowance.AllowanceRule
}

// Calculator computes the five allowance categories for a finalized
// attendance day. All time-based amounts use the payroll granularity's
// rounded figures; the granularity is threaded explicitly, never read from
// configuration at computation time.
type Calculator struct {
	holidays           HolidayContext
	payrollGranularity attendance.Granularity
}

func NewCalculator(holidays HolidayContext, payrollGranularity attendance.Granularity) *Calculator {
	return &Calculator{
		holidays:           holidays,
		payrollGranularity: payrollGranularity,
	}
}

// Compute returns the allowance breakdown for one day. Categories whose
// eligibility flag is off are skipped entirely and left zero.
func (c *Calculator) Compute(ctx context.Context, in Inputs) (allowance.Breakdown, error) {
	var b allowance.Breakdown

	if in.Employee.EligibleFor(allowance.CategoryOvertime) {
		b.Overtime = c.overtimeLine(in)
	}

	if in.Employee.EligibleFor(allowance.CategoryNightWork) {
		b.NightWork = c.nightWorkLine(in)
	}

	if in.Employee.EligibleFor(allowance.CategoryHolidayWork) {
		line, err := c.holidayWorkLine(ctx, in)
		if err != nil {
			return allowance.Breakdown{}, fmt.Errorf("failed to compute holiday work allowance: %w", err)
		}
		b.HolidayWork = line
	}

	if in.Employee.EligibleFor(allowance.CategoryEarlyWork) {
		b.EarlyWork = earlyWorkLine(in)
	}

	if in.Employee.EligibleFor(allowance.CategoryNightShift) {
		b.NightShift = nightShiftLine(in)
	}

	b.Sum()
	return b, nil
}

// overtimeLine: overtime hours at the payroll granularity, 25% premium.
func (c *Calculator) overtimeLine(in Inputs) allowance.Line {
	minutes := in.Day.OvertimeMinutes[c.payrollGranularity]
	hours := decimal.NewFromInt(int64(minutes)).Div(sixty)
	return allowance.Line{
		Hours:  hours,
		Amount: hours.Mul(in.HourlyRate).Mul(overtimePremium),
	}
}

// nightWorkLine: overlap of the worked interval with the 22:00-05:00 window,
// 25% premium. The worked interval is the normalized rounded clock span at
// the payroll granularity, so a shift crossing midnight overlaps correctly.
func (c *Calculator) nightWorkLine(in Inputs) allowance.Line {
	rounded := in.Day.Rounded[c.payrollGranularity]
	if rounded.ClockIn == nil || rounded.ClockOut == nil {
		return allowance.Line{}
	}

	span := normalizedSpan(rounded, in.Day.Raw)
	base := time.Date(in.Day.Date.Year(), in.Day.Date.Month(), in.Day.Date.Day(), 0, 0, 0, 0, span.start.Location())
	winStart := base.Add(nightWindowStartHour * time.Hour)
	winEnd := base.Add(nightWindowEndHour * time.Hour)

	minutes := overlapMinutes(span.start, span.end, winStart, winEnd)
	if minutes <= 0 {
		return allowance.Line{}
	}

	hours := decimal.NewFromInt(int64(minutes)).Div(sixty)
	return allowance.Line{
		Hours:  hours,
		Amount: hours.Mul(in.HourlyRate).Mul(nightWorkPremium),
	}
}

// holidayWorkLine: paid only when the work date is a Sunday or a recognized
// holiday. A governing compensatory entry removes the premium completely; an
// unused substitute entry keeps it at the entry's stored rate; plain holiday
// work gets the statutory 35%.
func (c *Calculator) holidayWorkLine(ctx context.Context, in Inputs) (allowance.Line, error) {
	date := in.Day.Date

	isHolidayDate := date.Weekday() == time.Sunday
	if !isHolidayDate {
		var err error
		isHolidayDate, err = c.holidays.IsHoliday(ctx, in.Employee.ID, date)
		if err != nil {
			return allowance.Line{}, err
		}
	}
	if !isHolidayDate {
		return allowance.Line{}, nil
	}

	compensatory, err := c.holidays.IsCompensatoryHoliday(ctx, in.Employee.ID, date)
	if err != nil {
		return allowance.Line{}, err
	}
	if compensatory {
		// Furikyu: the swap was arranged in advance, no premium owed.
		return allowance.Line{}, nil
	}

	premium := holidayWorkPremium
	if rate, ok, err := c.holidays.SubstitutePremium(ctx, in.Employee.ID, date); err != nil {
		return allowance.Line{}, err
	} else if ok {
		premium = rate
	}

	minutes := in.Day.WorkedMinutes[c.payrollGranularity]
	hours := decimal.NewFromInt(int64(minutes)).Div(sixty)
	return allowance.Line{
		Hours:  hours,
		Amount: hours.Mul(in.HourlyRate).Mul(premium),
	}, nil
}

// earlyWorkLine: sum of fixed amounts of active early_work rules whose time
// range contains the raw clock-in. Rate-based early-work rules are not
// applied by current policy.
func earlyWorkLine(in Inputs) allowance.Line {
	if in.Day.Raw.ClockIn == nil {
		return allowance.Line{}
	}

	var amount decimal.Decimal
	for _, rule := range in.EarlyWorkRules {
		if !rule.IsActive || rule.CalculationType != allowance.CalculationFixedAmount {
			continue
		}
		if rule.ContainsClockTime(*in.Day.Raw.ClockIn) {
			amount = amount.Add(rule.Amount)
		}
	}
	return allowance.Line{Amount: amount}
}

// nightShiftLine: sum of fixed amounts of all active night_shift rules.
// Current policy does not gate this on an actual shift assignment.
func nightShiftLine(in Inputs) allowance.Line {
	var amount decimal.Decimal
	for _, rule := range in.NightShiftRules {
		if !rule.IsActive || rule.CalculationType != allowance.CalculationFixedAmount {
			continue
		}
		amount = amount.Add(rule.Amount)
	}
	return allowance.Line{Amount: amount}
}

type workedSpan struct {
	start time.Time
	end   time.Time
}

// normalizedSpan returns the rounded clock-in/clock-out interval. Whether the
// clock-out belongs to the next day is decided by the raw punch order; a
// rounded pair inverted only by rounding collapses to an empty span.
func normalizedSpan(rounded, raw attendance.PunchTimes) workedSpan {
	start := *rounded.ClockIn
	end := *rounded.ClockOut
	switch {
	case raw.ClockIn != nil && raw.ClockOut != nil && raw.ClockOut.Before(*raw.ClockIn):
		end = end.Add(24 * time.Hour)
	case end.Before(start):
		end = start
	}
	return workedSpan{start: start, end: end}
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
