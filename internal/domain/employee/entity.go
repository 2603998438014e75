package employee

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	FactoryID    string
	LineID       *string
	PositionID   string
	IsActive     bool

	// Allowance eligibility, recomputed by the personnel system whenever the
	// position assignment changes. Read-only here.
	OvertimeEligible    bool
	NightWorkEligible   bool
	HolidayWorkEligible bool
	EarlyWorkEligible   bool
	NightShiftEligible  bool

	HourlyRate decimal.Decimal

	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EligibleFor reports whether the employee's flag for the given allowance
// category is set. Unknown categories are not eligible.
func (e *Employee) EligibleFor(category allowance.Category) bool {
	switch category {
	case allowance.CategoryOvertime:
		return e.OvertimeEligible
	case allowance.CategoryNightWork:
		return e.NightWorkEligible
	case allowance.CategoryHolidayWork:
		return e.HolidayWorkEligible
	case allowance.CategoryEarlyWork:
		return e.EarlyWorkEligible
	case allowance.CategoryNightShift:
		return e.NightShiftEligible
	}
	return false
}
