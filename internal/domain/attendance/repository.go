package attendance

import (
	"context"
	"time"
)

// AttendanceDayRepository defines data access for attendance day records.
// A unique constraint on (employee_id, date) backs the at-most-one-record
// invariant; concurrent double-writes are the persistence layer's problem,
// not the calculation core's.
type AttendanceDayRepository interface {
	// Create inserts a new attendance day.
	Create(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// GetByEmployeeAndDate retrieves the day record for (employee, date).
	// Returns ErrDayNotFound when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (AttendanceDay, error)

	// Update rewrites the punch, derived and allowance fields of a day.
	Update(ctx context.Context, day AttendanceDay) error

	// ListByEmployee retrieves day records for an employee over a date range.
	ListByEmployee(ctx context.Context, filter ListDaysFilter) ([]AttendanceDay, int64, error)
}
