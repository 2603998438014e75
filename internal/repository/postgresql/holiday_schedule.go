package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

type scheduleEntryRepository struct {
	db *database.DB
}

func NewScheduleEntryRepository(db *database.DB) holiday.ScheduleEntryRepository {
	return &scheduleEntryRepository{db: db}
}

const entryColumns = `
	id, employee_id, date, schedule_type,
	is_compensatory, original_date, compensatory_type,
	status, business_rules, is_active, created_at, updated_at`

func scanEntry(row pgx.Row) (holiday.ScheduleEntry, error) {
	var e holiday.ScheduleEntry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Date, &e.Type,
		&e.IsCompensatory, &e.OriginalDate, &e.CompensatoryType,
		&e.Status, &e.BusinessRules, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements holiday.ScheduleEntryRepository.
func (s *scheduleEntryRepository) Create(ctx context.Context, entry holiday.ScheduleEntry) (holiday.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	entry.ID = uuid.NewString()
	query := `
		INSERT INTO holiday_schedule_entries (
			id, employee_id, date, schedule_type,
			is_compensatory, original_date, compensatory_type,
			status, business_rules, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.Date, string(entry.Type),
		entry.IsCompensatory, entry.OriginalDate, entry.CompensatoryType,
		string(entry.Status), entry.BusinessRules, entry.IsActive,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return holiday.ScheduleEntry{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return entry, nil
}

// GetActiveByDateAndType implements holiday.ScheduleEntryRepository.
func (s *scheduleEntryRepository) GetActiveByDateAndType(ctx context.Context, employeeID string, date time.Time, scheduleType holiday.ScheduleType) (holiday.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM holiday_schedule_entries
		WHERE employee_id = $1 AND date = $2 AND schedule_type = $3 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`, entryColumns)

	entry, err := scanEntry(q.QueryRow(ctx, query, employeeID, date, string(scheduleType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.ScheduleEntry{}, holiday.ErrEntryNotFound
		}
		return holiday.ScheduleEntry{}, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return entry, nil
}

// GetActiveSubstituteByOriginalDate implements holiday.ScheduleEntryRepository.
func (s *scheduleEntryRepository) GetActiveSubstituteByOriginalDate(ctx context.Context, employeeID string, workDate time.Time) (holiday.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM holiday_schedule_entries
		WHERE employee_id = $1 AND original_date = $2 AND schedule_type = 'substitute' AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`, entryColumns)

	entry, err := scanEntry(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.ScheduleEntry{}, holiday.ErrEntryNotFound
		}
		return holiday.ScheduleEntry{}, fmt.Errorf("failed to get substitute entry: %w", err)
	}
	return entry, nil
}

// ListActiveByDate implements holiday.ScheduleEntryRepository.
func (s *scheduleEntryRepository) ListActiveByDate(ctx context.Context, employeeID string, date time.Time) ([]holiday.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM holiday_schedule_entries
		WHERE employee_id = $1 AND date = $2 AND is_active = TRUE
		ORDER BY created_at
	`, entryColumns)

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []holiday.ScheduleEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule entries: %w", err)
	}
	return entries, nil
}

// ListScheduledSubstitutes implements holiday.ScheduleEntryRepository.
func (s *scheduleEntryRepository) ListScheduledSubstitutes(ctx context.Context) ([]holiday.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM holiday_schedule_entries
		WHERE schedule_type = 'substitute' AND status = 'scheduled' AND is_active = TRUE
		ORDER BY original_date
	`, entryColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled substitutes: %w", err)
	}
	defer rows.Close()

	var entries []holiday.ScheduleEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule entries: %w", err)
	}
	return entries, nil
}

// Update implements holiday.ScheduleEntryRepository. Date fields are never
// rewritten; only status, rules and the active flag change after creation.
func (s *scheduleEntryRepository) Update(ctx context.Context, entry holiday.ScheduleEntry) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE holiday_schedule_entries
		SET status = $2, business_rules = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, entry.ID, string(entry.Status), entry.BusinessRules, entry.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrEntryNotFound
	}
	return nil
}
