package attendance

import (
	"context"
)

// AttendanceService defines business logic for punch recording and payroll
// figure derivation.
type AttendanceService interface {
	// SubmitPunch validates a punch against the day's recorded punches,
	// rounds it at all four granularities and stores it.
	SubmitPunch(ctx context.Context, req SubmitPunchRequest) (SubmitPunchResponse, error)

	// FinalizeDay computes worked minutes, overtime and allowances for a day
	// whose closing punch has been recorded.
	FinalizeDay(ctx context.Context, req FinalizeDayRequest) (DayResponse, error)

	// GetDay retrieves a single attendance day.
	GetDay(ctx context.Context, employeeID string, date string) (DayResponse, error)

	// ListDays retrieves attendance days for an employee over a date range.
	ListDays(ctx context.Context, filter ListDaysFilter) (ListDaysResponse, error)
}
