package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors. The message carries the distance or match score.
	case errors.Is(err, attendance.ErrOutOfRange):
		Error(w, http.StatusForbidden, "OUT_OF_RANGE", err.Error())
	case errors.Is(err, attendance.ErrFaceMismatch):
		Error(w, http.StatusForbidden, "FACE_MISMATCH", err.Error())
	case errors.Is(err, attendance.ErrFaceNotRegistered):
		Error(w, http.StatusBadRequest, "FACE_NOT_REGISTERED", err.Error())
	case errors.Is(err, attendance.ErrFaceDataMissing):
		Error(w, http.StatusBadRequest, "FACE_DATA_MISSING", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Error(w, http.StatusConflict, "ALREADY_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Error(w, http.StatusConflict, "ALREADY_CHECKED_OUT", err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Error(w, http.StatusBadRequest, "NOT_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrInvalidAction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryNotFound):
		NotFound(w, "Salary info not found for employee")
	case errors.Is(err, payroll.ErrSalaryStructureExists):
		Conflict(w, "Salary info already exists for this employee")
	case errors.Is(err, payroll.ErrNoChanges):
		BadRequest(w, "No fields to update or no changes made", nil)
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidLeaveStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
