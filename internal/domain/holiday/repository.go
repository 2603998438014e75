package holiday

import (
	"context"
	"time"
)

// ScheduleEntryRepository defines data access for holiday schedule entries.
// Entries are append-only: cancellation and confirmation go through Update,
// rows are never deleted.
type ScheduleEntryRepository interface {
	// Create inserts a new schedule entry.
	Create(ctx context.Context, entry ScheduleEntry) (ScheduleEntry, error)

	// GetActiveByDateAndType retrieves the active entry of one type for
	// (employee, date). Returns ErrEntryNotFound when none exists.
	GetActiveByDateAndType(ctx context.Context, employeeID string, date time.Time, scheduleType ScheduleType) (ScheduleEntry, error)

	// GetActiveSubstituteByOriginalDate retrieves the active substitute entry
	// whose original work date is the given date. Returns ErrEntryNotFound
	// when none exists.
	GetActiveSubstituteByOriginalDate(ctx context.Context, employeeID string, workDate time.Time) (ScheduleEntry, error)

	// ListActiveByDate retrieves all active entries for (employee, date).
	ListActiveByDate(ctx context.Context, employeeID string, date time.Time) ([]ScheduleEntry, error)

	// ListScheduledSubstitutes retrieves every active substitute entry still
	// in scheduled status. Used by the expiry job.
	ListScheduledSubstitutes(ctx context.Context) ([]ScheduleEntry, error)

	// Update rewrites the status, business rules and active flag of an entry.
	Update(ctx context.Context, entry ScheduleEntry) error
}

// Calendar answers the public-holiday fallback used when no explicit
// holiday-type schedule entry covers a date.
type Calendar interface {
	IsPublicHoliday(ctx context.Context, date time.Time) (bool, error)
}
