package holiday

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HolidayService defines the compensatory/substitute rule engine and the
// queries the allowance calculator consults.
type HolidayService interface {
	// CreateCompensatory books a furikyu: a holiday swapped in advance for a
	// specific future day off. The worked holiday loses its premium.
	CreateCompensatory(ctx context.Context, req CompensatoryRequest) (EntryResponse, error)

	// CreateSubstitute books a daikyu: a day off owed for holiday work
	// already performed. The worked holiday keeps its premium.
	CreateSubstitute(ctx context.Context, req SubstituteRequest) (EntryResponse, error)

	// UseSubstitute confirms (consumes) a scheduled substitute entry.
	UseSubstitute(ctx context.Context, req UseSubstituteRequest) (EntryResponse, error)

	// IsCompensatoryHoliday reports whether an active compensatory entry
	// governs the given work date for the employee.
	IsCompensatoryHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// SubstitutePremium returns the premium rate of a still-scheduled
	// substitute entry whose original work date is the given date. ok is
	// false when no such entry exists.
	SubstitutePremium(ctx context.Context, employeeID string, workDate time.Time) (rate decimal.Decimal, ok bool, err error)

	// IsHoliday reports whether the date is a recognized holiday for the
	// employee: an active holiday-type entry, else the fallback calendar.
	IsHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// ExpireStaleSubstitutes cancels scheduled substitute entries past their
	// expiry window. Returns the number of entries cancelled.
	ExpireStaleSubstitutes(ctx context.Context, now time.Time) (int, error)
}
