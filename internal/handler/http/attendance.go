package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	SubmitPunch(w http.ResponseWriter, r *http.Request)
	FinalizeDay(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	ListDays(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// SubmitPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.SubmitPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// FinalizeDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) FinalizeDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.FinalizeDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.FinalizeDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance day finalized", result)
}

// GetDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.GetDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDays implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListDaysFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Page:       1,
		Limit:      31,
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, ok := validator.IsValidDate(s)
		if !ok {
			response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
			return
		}
		filter.StartDate = &t
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, ok := validator.IsValidDate(s)
		if !ok {
			response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
			return
		}
		filter.EndDate = &t
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		response.BadRequest(w, "end_date must not be before start_date", nil)
		return
	}

	result, err := h.attendanceService.ListDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result.Days, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
