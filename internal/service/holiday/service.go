package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
)

type HolidayServiceImpl struct {
	holiday.ScheduleEntryRepository
	calendar holiday.Calendar

	defaultRate       decimal.Decimal
	defaultExpiryDays int
}

func NewHolidayService(
	entryRepo holiday.ScheduleEntryRepository,
	calendar holiday.Calendar,
	defaultRate decimal.Decimal,
	defaultExpiryDays int,
) holiday.HolidayService {
	if defaultRate.IsZero() {
		defaultRate = holiday.DefaultSubstituteRate
	}
	if defaultExpiryDays <= 0 {
		defaultExpiryDays = holiday.DefaultSubstituteExpiryDays
	}
	return &HolidayServiceImpl{
		ScheduleEntryRepository: entryRepo,
		calendar:                calendar,
		defaultRate:             defaultRate,
		defaultExpiryDays:       defaultExpiryDays,
	}
}

// CreateCompensatory implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateCompensatory(ctx context.Context, req holiday.CompensatoryRequest) (holiday.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.EntryResponse{}, err
	}

	originalDate := holiday.ParseDate(req.OriginalDate)
	compensatoryDate := holiday.ParseDate(req.CompensatoryDate)

	if originalDate.Equal(compensatoryDate) {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationSameDateCompensatory, compensatoryDate,
			"compensatory date must differ from the original holiday")
	}

	// No re-compensating a compensation day.
	taken, err := s.hasActiveEntry(ctx, req.EmployeeID, compensatoryDate, holiday.TypeCompensatory)
	if err != nil {
		return holiday.EntryResponse{}, err
	}
	if taken {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationDoubleCompensatory, compensatoryDate,
			"date is already booked as a compensatory day off")
	}

	// No chaining: the worked holiday must not itself be a compensation day.
	chained, err := s.hasActiveEntry(ctx, req.EmployeeID, originalDate, holiday.TypeCompensatory)
	if err != nil {
		return holiday.EntryResponse{}, err
	}
	if chained {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationChainedCompensatory, originalDate,
			"original date is itself a compensatory day off")
	}

	recognized, err := s.isRecognizedHoliday(ctx, req.EmployeeID, originalDate)
	if err != nil {
		return holiday.EntryResponse{}, err
	}
	if !recognized {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationInvalidOriginal, originalDate,
			"original date is not a recognized holiday")
	}

	compType := holiday.CompensatorySwap
	entry := holiday.ScheduleEntry{
		EmployeeID:       req.EmployeeID,
		Date:             compensatoryDate,
		Type:             holiday.TypeCompensatory,
		IsCompensatory:   true,
		OriginalDate:     &originalDate,
		CompensatoryType: &compType,
		Status:           holiday.StatusScheduled,
		BusinessRules:    holiday.BusinessRules{ExemptionType: req.ExemptionType},
		IsActive:         true,
	}

	created, err := s.ScheduleEntryRepository.Create(ctx, entry)
	if err != nil {
		return holiday.EntryResponse{}, fmt.Errorf("failed to create compensatory entry: %w", err)
	}
	return holiday.MapEntryToResponse(created), nil
}

// CreateSubstitute implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateSubstitute(ctx context.Context, req holiday.SubstituteRequest) (holiday.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.EntryResponse{}, err
	}

	workDate := holiday.ParseDate(req.WorkDate)
	targetDate := workDate
	if req.SubstituteDate != nil {
		targetDate = holiday.ParseDate(*req.SubstituteDate)
	}

	exists, err := s.hasActiveEntry(ctx, req.EmployeeID, targetDate, holiday.TypeSubstitute)
	if err != nil {
		return holiday.EntryResponse{}, err
	}
	if exists {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationSubstituteExists, targetDate,
			"an active substitute entry already exists for this date")
	}

	rate := s.defaultRate
	if req.AllowanceRate != nil {
		rate = *req.AllowanceRate
	}
	expiryDays := s.defaultExpiryDays
	if req.ExpiryDays != nil {
		expiryDays = *req.ExpiryDays
	}

	compType := holiday.SubstituteSwap
	entry := holiday.ScheduleEntry{
		EmployeeID:       req.EmployeeID,
		Date:             targetDate,
		Type:             holiday.TypeSubstitute,
		IsCompensatory:   false,
		OriginalDate:     &workDate,
		CompensatoryType: &compType,
		Status:           holiday.StatusScheduled,
		BusinessRules: holiday.BusinessRules{
			AllowanceRate: &rate,
			ExpiryDays:    &expiryDays,
		},
		IsActive: true,
	}

	created, err := s.ScheduleEntryRepository.Create(ctx, entry)
	if err != nil {
		return holiday.EntryResponse{}, fmt.Errorf("failed to create substitute entry: %w", err)
	}
	return holiday.MapEntryToResponse(created), nil
}

// UseSubstitute implements holiday.HolidayService.
func (s *HolidayServiceImpl) UseSubstitute(ctx context.Context, req holiday.UseSubstituteRequest) (holiday.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.EntryResponse{}, err
	}

	date := holiday.ParseDate(req.Date)
	entry, err := s.ScheduleEntryRepository.GetActiveByDateAndType(ctx, req.EmployeeID, date, holiday.TypeSubstitute)
	if err != nil {
		if errors.Is(err, holiday.ErrEntryNotFound) {
			return holiday.EntryResponse{}, holiday.ErrEntryNotFound
		}
		return holiday.EntryResponse{}, fmt.Errorf("failed to get substitute entry: %w", err)
	}

	if entry.Status == holiday.StatusConfirmed {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationSubstituteAlreadyUsed, date,
			"substitute day off has already been used")
	}

	usedOn := date
	if req.UsedOn != "" {
		usedOn = holiday.ParseDate(req.UsedOn)
	}
	if expiresAt, ok := entry.ExpiresAt(); ok && usedOn.After(expiresAt) {
		return holiday.EntryResponse{}, holiday.NewViolation(
			holiday.ViolationSubstituteExpired, date,
			fmt.Sprintf("substitute day off expired on %s", expiresAt.Format("2006-01-02")))
	}

	entry.Status = holiday.StatusConfirmed
	if err := s.ScheduleEntryRepository.Update(ctx, entry); err != nil {
		return holiday.EntryResponse{}, fmt.Errorf("failed to confirm substitute entry: %w", err)
	}
	return holiday.MapEntryToResponse(entry), nil
}

// IsCompensatoryHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) IsCompensatoryHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return s.hasActiveEntry(ctx, employeeID, date, holiday.TypeCompensatory)
}

// SubstitutePremium implements holiday.HolidayService.
func (s *HolidayServiceImpl) SubstitutePremium(ctx context.Context, employeeID string, workDate time.Time) (decimal.Decimal, bool, error) {
	entry, err := s.ScheduleEntryRepository.GetActiveSubstituteByOriginalDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, holiday.ErrEntryNotFound) {
			return decimal.Decimal{}, false, nil
		}
		return decimal.Decimal{}, false, fmt.Errorf("failed to get substitute entry: %w", err)
	}
	if entry.Status != holiday.StatusScheduled {
		return decimal.Decimal{}, false, nil
	}
	return entry.PremiumRate(), true, nil
}

// IsHoliday implements holiday.HolidayService. An active holiday-type entry
// is authoritative; the fallback calendar only answers when none exists.
func (s *HolidayServiceImpl) IsHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	exists, err := s.hasActiveEntry(ctx, employeeID, date, holiday.TypeHoliday)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}
	return s.calendar.IsPublicHoliday(ctx, date)
}

// ExpireStaleSubstitutes implements holiday.HolidayService.
func (s *HolidayServiceImpl) ExpireStaleSubstitutes(ctx context.Context, now time.Time) (int, error) {
	entries, err := s.ScheduleEntryRepository.ListScheduledSubstitutes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list scheduled substitutes: %w", err)
	}

	expired := 0
	for _, entry := range entries {
		expiresAt, ok := entry.ExpiresAt()
		if !ok || !now.After(expiresAt) {
			continue
		}
		entry.Status = holiday.StatusCancelled
		entry.IsActive = false
		if err := s.ScheduleEntryRepository.Update(ctx, entry); err != nil {
			return expired, fmt.Errorf("failed to cancel expired substitute %s: %w", entry.ID, err)
		}
		expired++
	}
	return expired, nil
}

func (s *HolidayServiceImpl) hasActiveEntry(ctx context.Context, employeeID string, date time.Time, scheduleType holiday.ScheduleType) (bool, error) {
	_, err := s.ScheduleEntryRepository.GetActiveByDateAndType(ctx, employeeID, date, scheduleType)
	if err != nil {
		if errors.Is(err, holiday.ErrEntryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up %s entry: %w", scheduleType, err)
	}
	return true, nil
}

// isRecognizedHoliday: an active holiday-type entry wins; otherwise Sundays
// and the fallback calendar count.
func (s *HolidayServiceImpl) isRecognizedHoliday(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	exists, err := s.hasActiveEntry(ctx, employeeID, date, holiday.TypeHoliday)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}
	if date.Weekday() == time.Sunday {
		return true, nil
	}
	return s.calendar.IsPublicHoliday(ctx, date)
}
