package allowance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the five allowance categories computed per attendance day.
type Category string

const (
	CategoryOvertime    Category = "overtime"
	CategoryNightWork   Category = "night_work"
	CategoryHolidayWork Category = "holiday_work"
	CategoryEarlyWork   Category = "early_work"
	CategoryNightShift  Category = "night_shift"
)

// ConditionType describes what an AllowanceRule's condition value matches on.
type ConditionType string

const (
	ConditionTimeRange      ConditionType = "time_range"
	ConditionHoursThreshold ConditionType = "hours_threshold"
	ConditionShift          ConditionType = "shift"
	ConditionHoliday        ConditionType = "holiday"
)

// CalculationType describes how a matching rule contributes to the amount.
type CalculationType string

const (
	CalculationFixedAmount CalculationType = "fixed_amount"
	CalculationRate        CalculationType = "rate"
)

// AllowanceRule is read-only configuration consumed by the allowance
// calculator. Many rules may exist per category; all matching active rules
// are summed.
type AllowanceRule struct {
	ID              string
	Category        Category
	ConditionType   ConditionType
	ConditionValue  *string
	CalculationType CalculationType
	Amount          decimal.Decimal
	Rate            decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TimeRangeCondition parses a "HH:MM-HH:MM" condition value. ok is false when
// the rule carries no parseable time range.
func (r *AllowanceRule) TimeRangeCondition() (start, end time.Time, ok bool) {
	if r.ConditionType != ConditionTimeRange || r.ConditionValue == nil {
		return time.Time{}, time.Time{}, false
	}
	parts := strings.SplitN(*r.ConditionValue, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// ContainsClockTime reports whether the rule's time range contains the
// clock time hh:mm (inclusive start, exclusive end).
func (r *AllowanceRule) ContainsClockTime(t time.Time) bool {
	start, end, ok := r.TimeRangeCondition()
	if !ok {
		return false
	}
	mins := t.Hour()*60 + t.Minute()
	startMins := start.Hour()*60 + start.Minute()
	endMins := end.Hour()*60 + end.Minute()
	return mins >= startMins && mins < endMins
}

// Line is one computed allowance category: the hours it was derived from and
// the resulting amount.
type Line struct {
	Hours  decimal.Decimal
	Amount decimal.Decimal
}

// Breakdown is the full allowance result for one attendance day.
type Breakdown struct {
	Overtime    Line
	NightWork   Line
	HolidayWork Line
	EarlyWork   Line
	NightShift  Line

	TotalLegal   decimal.Decimal
	TotalCompany decimal.Decimal
	Total        decimal.Decimal
}

// Sum fills the three totals from the category lines.
// legal = overtime + night + holiday; company = early + night shift.
func (b *Breakdown) Sum() {
	b.TotalLegal = b.Overtime.Amount.Add(b.NightWork.Amount).Add(b.HolidayWork.Amount)
	b.TotalCompany = b.EarlyWork.Amount.Add(b.NightShift.Amount)
	b.Total = b.TotalLegal.Add(b.TotalCompany)
}
