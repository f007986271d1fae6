package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	RegisterFace(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListUserMonth(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	userService       user.UserService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, userService user.UserService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		userService:       userService,
	}
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.GetTodayStatus(r.Context(), chi.URLParam(r, "identity"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// RegisterFace implements AttendanceHandler.
func (h *attendanceHandlerImpl) RegisterFace(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register face decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.RegisterFace(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face registered successfully", nil)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAttendance(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListUserMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListUserMonth(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListUserMonth(r.Context(), chi.URLParam(r, "identity"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
