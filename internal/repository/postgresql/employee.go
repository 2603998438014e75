package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, factory_id, line_id, position_id, is_active,
		       overtime_eligible, night_work_eligible, holiday_work_eligible,
		       early_work_eligible, night_shift_eligible,
		       hourly_rate, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.FactoryID, &emp.LineID, &emp.PositionID, &emp.IsActive,
		&emp.OvertimeEligible, &emp.NightWorkEligible, &emp.HolidayWorkEligible,
		&emp.EarlyWorkEligible, &emp.NightShiftEligible,
		&emp.HourlyRate, &emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetHourlyRate implements employee.EmployeeRepository.
func (e *employeeRepository) GetHourlyRate(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, e.db)

	var rate decimal.Decimal
	err := q.QueryRow(ctx, `SELECT hourly_rate FROM employees WHERE id = $1`, employeeID).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, employee.ErrEmployeeNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("failed to get hourly rate: %w", err)
	}
	return rate, nil
}
