package attendance

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SubmitPunchRequest struct {
	EmployeeID string `json:"employee_id"`
	PunchType  string `json:"punch_type"`
	Timestamp  string `json:"timestamp"`
}

func (r *SubmitPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.PunchType) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: "punch_type is required",
		})
	}

	if validator.IsEmpty(r.Timestamp) {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an ISO8601 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedTimestamp returns the request timestamp as a time.Time. Validate must
// have succeeded first.
func (r *SubmitPunchRequest) ParsedTimestamp() time.Time {
	t, _ := validator.IsValidDateTime(r.Timestamp)
	return t
}

type SubmitPunchResponse struct {
	EmployeeID   string            `json:"employee_id"`
	Date         string            `json:"date"`
	PunchType    string            `json:"punch_type"`
	PunchLabel   string            `json:"punch_label"`
	RawTime      string            `json:"raw_time"`
	RoundedTimes map[string]string `json:"rounded_times"`
}

type FinalizeDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *FinalizeDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AllowanceLineResponse is one allowance category in a day response.
type AllowanceLineResponse struct {
	Hours  decimal.Decimal `json:"hours"`
	Amount decimal.Decimal `json:"amount"`
}

type AllowanceBreakdownResponse struct {
	Overtime    AllowanceLineResponse `json:"overtime"`
	NightWork   AllowanceLineResponse `json:"night_work"`
	HolidayWork AllowanceLineResponse `json:"holiday_work"`
	EarlyWork   AllowanceLineResponse `json:"early_work"`
	NightShift  AllowanceLineResponse `json:"night_shift"`

	TotalLegalAllowance   decimal.Decimal `json:"total_legal_allowance"`
	TotalCompanyAllowance decimal.Decimal `json:"total_company_allowance"`
	TotalAllowance        decimal.Decimal `json:"total_allowance"`
}

// DayResponse mirrors the JSON field naming existing payroll consumers use:
// raw punch times, per-granularity rounded variants, and per-granularity
// worked/overtime minute totals.
type DayResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	ClockInTime   *string `json:"clock_in_time"`
	LunchOut1Time *string `json:"lunch_out1_time"`
	LunchIn1Time  *string `json:"lunch_in1_time"`
	LunchOut2Time *string `json:"lunch_out2_time"`
	LunchIn2Time  *string `json:"lunch_in2_time"`
	ClockOutTime  *string `json:"clock_out_time"`

	ClockInTime15min   *string `json:"clock_in_time_15min"`
	LunchOut1Time15min *string `json:"lunch_out1_time_15min"`
	LunchIn1Time15min  *string `json:"lunch_in1_time_15min"`
	LunchOut2Time15min *string `json:"lunch_out2_time_15min"`
	LunchIn2Time15min  *string `json:"lunch_in2_time_15min"`
	ClockOutTime15min  *string `json:"clock_out_time_15min"`

	ClockInTime10min   *string `json:"clock_in_time_10min"`
	LunchOut1Time10min *string `json:"lunch_out1_time_10min"`
	LunchIn1Time10min  *string `json:"lunch_in1_time_10min"`
	LunchOut2Time10min *string `json:"lunch_out2_time_10min"`
	LunchIn2Time10min  *string `json:"lunch_in2_time_10min"`
	ClockOutTime10min  *string `json:"clock_out_time_10min"`

	ClockInTime5min   *string `json:"clock_in_time_5min"`
	LunchOut1Time5min *string `json:"lunch_out1_time_5min"`
	LunchIn1Time5min  *string `json:"lunch_in1_time_5min"`
	LunchOut2Time5min *string `json:"lunch_out2_time_5min"`
	LunchIn2Time5min  *string `json:"lunch_in2_time_5min"`
	ClockOutTime5min  *string `json:"clock_out_time_5min"`

	ClockInTime1min   *string `json:"clock_in_time_1min"`
	LunchOut1Time1min *string `json:"lunch_out1_time_1min"`
	LunchIn1Time1min  *string `json:"lunch_in1_time_1min"`
	LunchOut2Time1min *string `json:"lunch_out2_time_1min"`
	LunchIn2Time1min  *string `json:"lunch_in2_time_1min"`
	ClockOutTime1min  *string `json:"clock_out_time_1min"`

	TotalWorkTime15min *int `json:"total_work_time_15min"`
	TotalWorkTime10min *int `json:"total_work_time_10min"`
	TotalWorkTime5min  *int `json:"total_work_time_5min"`
	TotalWorkTime1min  *int `json:"total_work_time_1min"`

	Overtime15min *int `json:"overtime_15min"`
	Overtime10min *int `json:"overtime_10min"`
	Overtime5min  *int `json:"overtime_5min"`
	Overtime1min  *int `json:"overtime_1min"`

	Finalized  bool                        `json:"finalized"`
	Allowances *AllowanceBreakdownResponse `json:"allowances,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListDaysFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type ListDaysResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Days       []DayResponse `json:"days"`
}
