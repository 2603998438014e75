package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeRepository defines read access to the personnel master data the
// attendance core consumes.
type EmployeeRepository interface {
	// GetByID retrieves an employee with eligibility flags and position.
	// Returns ErrEmployeeNotFound when the identifier is unknown.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetHourlyRate retrieves the current wage for allowance math. Kept as a
	// separate lookup so payroll can move wages out of the employee row
	// without touching callers.
	GetHourlyRate(ctx context.Context, employeeID string) (decimal.Decimal, error)
}
