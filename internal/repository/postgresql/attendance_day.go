package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/allowance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type attendanceDayRepository struct {
	db *database.DB
}

func NewAttendanceDayRepository(db *database.DB) attendance.AttendanceDayRepository {
	return &attendanceDayRepository{db: db}
}

// Column order shared by every query against attendance_days. The rounded
// variants carry the same suffixes the API exposes (15min/10min/5min/1min).
const dayColumns = `
	id, employee_id, date,
	clock_in_time, lunch_out1_time, lunch_in1_time, lunch_out2_time, lunch_in2_time, clock_out_time,
	clock_in_time_15min, lunch_out1_time_15min, lunch_in1_time_15min, lunch_out2_time_15min, lunch_in2_time_15min, clock_out_time_15min,
	clock_in_time_10min, lunch_out1_time_10min, lunch_in1_time_10min, lunch_out2_time_10min, lunch_in2_time_10min, clock_out_time_10min,
	clock_in_time_5min, lunch_out1_time_5min, lunch_in1_time_5min, lunch_out2_time_5min, lunch_in2_time_5min, clock_out_time_5min,
	clock_in_time_1min, lunch_out1_time_1min, lunch_in1_time_1min, lunch_out2_time_1min, lunch_in2_time_1min, clock_out_time_1min,
	total_work_time_15min, total_work_time_10min, total_work_time_5min, total_work_time_1min,
	overtime_15min, overtime_10min, overtime_5min, overtime_1min,
	overtime_allowance_hours, overtime_allowance_amount,
	night_work_allowance_hours, night_work_allowance_amount,
	holiday_work_allowance_hours, holiday_work_allowance_amount,
	early_work_allowance_hours, early_work_allowance_amount,
	night_shift_allowance_hours, night_shift_allowance_amount,
	total_legal_allowance, total_company_allowance, total_allowance,
	finalized, created_at, updated_at`

// dayRow is the flat scan target; toEntity folds it back into the
// granularity-keyed maps.
type dayRow struct {
	id         string
	employeeID string
	date       time.Time

	raw      [6]*time.Time
	rounded  [4][6]*time.Time // indexed like attendance.Granularities
	worked   [4]*int
	overtime [4]*int

	allowHours  [5]*decimal.Decimal
	allowAmount [5]*decimal.Decimal
	totalLegal  *decimal.Decimal
	totalComp   *decimal.Decimal
	totalAll    *decimal.Decimal

	finalized bool
	createdAt time.Time
	updatedAt time.Time
}

func (r *dayRow) scanTargets() []any {
	targets := []any{&r.id, &r.employeeID, &r.date}
	for i := range r.raw {
		targets = append(targets, &r.raw[i])
	}
	for g := range r.rounded {
		for i := range r.rounded[g] {
			targets = append(targets, &r.rounded[g][i])
		}
	}
	for i := range r.worked {
		targets = append(targets, &r.worked[i])
	}
	for i := range r.overtime {
		targets = append(targets, &r.overtime[i])
	}
	for i := range r.allowHours {
		targets = append(targets, &r.allowHours[i], &r.allowAmount[i])
	}
	targets = append(targets, &r.totalLegal, &r.totalComp, &r.totalAll)
	targets = append(targets, &r.finalized, &r.createdAt, &r.updatedAt)
	return targets
}

func (r *dayRow) toEntity() attendance.AttendanceDay {
	day := attendance.NewAttendanceDay(r.employeeID, r.date)
	day.ID = r.id
	day.Finalized = r.finalized
	day.CreatedAt = r.createdAt
	day.UpdatedAt = r.updatedAt

	for i, pt := range attendance.PunchTypes {
		day.Raw.Set(pt, r.raw[i])
	}
	for gi, g := range attendance.Granularities {
		var times attendance.PunchTimes
		for i, pt := range attendance.PunchTypes {
			times.Set(pt, r.rounded[gi][i])
		}
		day.Rounded[g] = times
		if r.worked[gi] != nil {
			day.WorkedMinutes[g] = *r.worked[gi]
		}
		if r.overtime[gi] != nil {
			day.OvertimeMinutes[g] = *r.overtime[gi]
		}
	}

	if r.finalized && r.totalAll != nil {
		line := func(i int) allowance.Line {
			var l allowance.Line
			if r.allowHours[i] != nil {
				l.Hours = *r.allowHours[i]
			}
			if r.allowAmount[i] != nil {
				l.Amount = *r.allowAmount[i]
			}
			return l
		}
		day.Allowances = &allowance.Breakdown{
			Overtime:     line(0),
			NightWork:    line(1),
			HolidayWork:  line(2),
			EarlyWork:    line(3),
			NightShift:   line(4),
			TotalLegal:   *r.totalLegal,
			TotalCompany: *r.totalComp,
			Total:        *r.totalAll,
		}
	}
	return day
}

// writeArgs flattens a day entity into the argument order of dayColumns,
// excluding id/created_at/updated_at.
func writeArgs(day attendance.AttendanceDay) []any {
	args := []any{day.EmployeeID, day.Date}
	for _, pt := range attendance.PunchTypes {
		args = append(args, day.Raw.Get(pt))
	}
	for _, g := range attendance.Granularities {
		times := day.Rounded[g]
		for _, pt := range attendance.PunchTypes {
			args = append(args, times.Get(pt))
		}
	}
	for _, g := range attendance.Granularities {
		args = append(args, nullableMinutes(day, day.WorkedMinutes, g))
	}
	for _, g := range attendance.Granularities {
		args = append(args, nullableMinutes(day, day.OvertimeMinutes, g))
	}
	lines := []*allowance.Line(nil)
	if day.Allowances != nil {
		b := day.Allowances
		lines = []*allowance.Line{&b.Overtime, &b.NightWork, &b.HolidayWork, &b.EarlyWork, &b.NightShift}
	}
	for i := 0; i < 5; i++ {
		if lines == nil {
			args = append(args, nil, nil)
			continue
		}
		args = append(args, lines[i].Hours, lines[i].Amount)
	}
	if day.Allowances == nil {
		args = append(args, nil, nil, nil)
	} else {
		args = append(args, day.Allowances.TotalLegal, day.Allowances.TotalCompany, day.Allowances.Total)
	}
	args = append(args, day.Finalized)
	return args
}

func nullableMinutes(day attendance.AttendanceDay, m map[attendance.Granularity]int, g attendance.Granularity) any {
	if !day.Finalized {
		return nil
	}
	return m[g]
}

func placeholders(from, count int) string {
	s := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("$%d", from+i)
	}
	return s
}

// Create implements attendance.AttendanceDayRepository. The unique index on
// (employee_id, date) backs the one-record-per-day invariant.
func (a *attendanceDayRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	day.ID = uuid.NewString()
	args := append([]any{day.ID}, writeArgs(day)...)

	query := fmt.Sprintf(`
		INSERT INTO attendance_days (%s)
		VALUES (%s, NOW(), NOW())
		RETURNING created_at, updated_at
	`, dayColumns, placeholders(1, len(args)))

	err := q.QueryRow(ctx, query, args...).Scan(&day.CreatedAt, &day.UpdatedAt)
	if err != nil {
		return attendance.AttendanceDay{}, fmt.Errorf("failed to create attendance day: %w", err)
	}
	return day, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceDayRepository.
func (a *attendanceDayRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2
	`, dayColumns)

	var row dayRow
	err := q.QueryRow(ctx, query, employeeID, date).Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceDay{}, attendance.ErrDayNotFound
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to get attendance day: %w", err)
	}
	return row.toEntity(), nil
}

// Update implements attendance.AttendanceDayRepository. Raw punch slots only
// ever go from NULL to a value; the service layer enforces immutability.
func (a *attendanceDayRepository) Update(ctx context.Context, day attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	cols := []string{
		"employee_id", "date",
		"clock_in_time", "lunch_out1_time", "lunch_in1_time", "lunch_out2_time", "lunch_in2_time", "clock_out_time",
		"clock_in_time_15min", "lunch_out1_time_15min", "lunch_in1_time_15min", "lunch_out2_time_15min", "lunch_in2_time_15min", "clock_out_time_15min",
		"clock_in_time_10min", "lunch_out1_time_10min", "lunch_in1_time_10min", "lunch_out2_time_10min", "lunch_in2_time_10min", "clock_out_time_10min",
		"clock_in_time_5min", "lunch_out1_time_5min", "lunch_in1_time_5min", "lunch_out2_time_5min", "lunch_in2_time_5min", "clock_out_time_5min",
		"clock_in_time_1min", "lunch_out1_time_1min", "lunch_in1_time_1min", "lunch_out2_time_1min", "lunch_in2_time_1min", "clock_out_time_1min",
		"total_work_time_15min", "total_work_time_10min", "total_work_time_5min", "total_work_time_1min",
		"overtime_15min", "overtime_10min", "overtime_5min", "overtime_1min",
		"overtime_allowance_hours", "overtime_allowance_amount",
		"night_work_allowance_hours", "night_work_allowance_amount",
		"holiday_work_allowance_hours", "holiday_work_allowance_amount",
		"early_work_allowance_hours", "early_work_allowance_amount",
		"night_shift_allowance_hours", "night_shift_allowance_amount",
		"total_legal_allowance", "total_company_allowance", "total_allowance",
		"finalized",
	}

	set := ""
	for i, c := range cols {
		if i > 0 {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", c, i+2)
	}

	args := append([]any{day.ID}, writeArgs(day)...)
	query := fmt.Sprintf(`
		UPDATE attendance_days
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, set)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attendance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDayNotFound
	}
	return nil
}

// ListByEmployee implements attendance.AttendanceDayRepository.
func (a *attendanceDayRepository) ListByEmployee(ctx context.Context, filter attendance.ListDaysFilter) ([]attendance.AttendanceDay, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := "WHERE employee_id = $1"
	args := []any{filter.EmployeeID}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM attendance_days
		%s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, dayColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	var total int64
	for rows.Next() {
		var row dayRow
		targets := append(row.scanTargets(), &total)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance days: %w", err)
	}
	return days, total, nil
}
