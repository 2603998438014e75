package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-works/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Punch sequence errors carry the allowed next punches for the terminal
	var seqErr *attendance.SequenceError
	if errors.As(err, &seqErr) {
		allowed := make([]string, 0, len(seqErr.AllowedNext))
		for _, pt := range seqErr.AllowedNext {
			allowed = append(allowed, string(pt))
		}
		UnprocessableEntity(w, "PUNCH_SEQUENCE_ERROR", seqErr.Error(), map[string]string{
			"current_state": string(seqErr.CurrentState),
			"requested":     string(seqErr.Requested),
			"allowed_next":  strings.Join(allowed, ","),
		})
		return
	}

	// Holiday rule violations name the broken rule and the offending date
	var violation *holiday.RuleViolation
	if errors.As(err, &violation) {
		UnprocessableEntity(w, "HOLIDAY_RULE_VIOLATION", violation.Reason, map[string]string{
			"rule": string(violation.Kind),
			"date": violation.Date.Format("2006-01-02"),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTerminalDisabled):
		Forbidden(w, "Terminal is disabled")
	case errors.Is(err, auth.ErrTerminalNotFound):
		NotFound(w, "Terminal not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, "Punch type already recorded for this day")
	case errors.Is(err, attendance.ErrInvalidPunchType):
		BadRequest(w, "Unknown punch type", nil)
	case errors.Is(err, attendance.ErrDayNotClosed):
		Conflict(w, "Attendance day has no clock-out punch yet")
	case errors.Is(err, attendance.ErrDayNotFound):
		NotFound(w, "Attendance day not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrEntryNotFound):
		NotFound(w, "Holiday schedule entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
