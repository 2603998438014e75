package holiday

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// HOLIDAY SCHEDULE DTOs
// ========================================

type CompensatoryRequest struct {
	EmployeeID       string `json:"employee_id"`
	OriginalDate     string `json:"original_date"`
	CompensatoryDate string `json:"compensatory_date"`
	ExemptionType    string `json:"exemption_type,omitempty"`
}

func (r *CompensatoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.OriginalDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "original_date",
			Message: "original_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.CompensatoryDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "compensatory_date",
			Message: "compensatory_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubstituteRequest struct {
	EmployeeID     string           `json:"employee_id"`
	WorkDate       string           `json:"work_date"`
	SubstituteDate *string          `json:"substitute_date,omitempty"`
	AllowanceRate  *decimal.Decimal `json:"allowance_rate,omitempty"`
	ExpiryDays     *int             `json:"expiry_days,omitempty"`
}

func (r *SubstituteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	if r.SubstituteDate != nil {
		if _, ok := validator.IsValidDate(*r.SubstituteDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "substitute_date",
				Message: "substitute_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.ExpiryDays != nil && *r.ExpiryDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "expiry_days",
			Message: "expiry_days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UseSubstituteRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	UsedOn     string `json:"used_on,omitempty"`
}

func (r *UseSubstituteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.UsedOn != "" {
		if _, ok := validator.IsValidDate(r.UsedOn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "used_on",
				Message: "used_on must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID               string           `json:"id"`
	EmployeeID       string           `json:"employee_id"`
	Date             string           `json:"date"`
	ScheduleType     string           `json:"schedule_type"`
	IsCompensatory   bool             `json:"is_compensatory"`
	OriginalDate     *string          `json:"original_date,omitempty"`
	CompensatoryType *string          `json:"compensatory_type,omitempty"`
	Status           string           `json:"status"`
	AllowanceRate    *decimal.Decimal `json:"allowance_rate,omitempty"`
	ExpiryDays       *int             `json:"expiry_days,omitempty"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        string           `json:"created_at"`
}

// MapEntryToResponse converts an entry to its API shape.
func MapEntryToResponse(e ScheduleEntry) EntryResponse {
	resp := EntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		Date:           e.Date.Format("2006-01-02"),
		ScheduleType:   string(e.Type),
		IsCompensatory: e.IsCompensatory,
		Status:         string(e.Status),
		AllowanceRate:  e.BusinessRules.AllowanceRate,
		ExpiryDays:     e.BusinessRules.ExpiryDays,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.OriginalDate != nil {
		s := e.OriginalDate.Format("2006-01-02")
		resp.OriginalDate = &s
	}
	if e.CompensatoryType != nil {
		s := string(*e.CompensatoryType)
		resp.CompensatoryType = &s
	}
	return resp
}

// parseDate is shared by the service layer; Validate has already vetted the
// string format.
func ParseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
