package http

import (
	"encoding/json"
	"net/http"

	"github.com/kintai-works/kintai-backend-go/internal/domain/holiday"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	CreateCompensatory(w http.ResponseWriter, r *http.Request)
	CreateSubstitute(w http.ResponseWriter, r *http.Request)
	UseSubstitute(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// CreateCompensatory implements HolidayHandler.
func (h *holidayHandlerImpl) CreateCompensatory(w http.ResponseWriter, r *http.Request) {
	var req holiday.CompensatoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.CreateCompensatory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensatory holiday registered", result)
}

// CreateSubstitute implements HolidayHandler.
func (h *holidayHandlerImpl) CreateSubstitute(w http.ResponseWriter, r *http.Request) {
	var req holiday.SubstituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.CreateSubstitute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Substitute holiday registered", result)
}

// UseSubstitute implements HolidayHandler.
func (h *holidayHandlerImpl) UseSubstitute(w http.ResponseWriter, r *http.Request) {
	var req holiday.UseSubstituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.UseSubstitute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Substitute holiday consumed", result)
}
