package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	errs = validateLeaveType(errs, r.LeaveType)
	errs = validateDate(errs, "startDate", r.StartDate)
	errs = validateDate(errs, "endDate", r.EndDate)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveStatusRequest struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	AdminComment *string `json:"adminComment,omitempty"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	LeaveType *string `json:"leaveType,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.LeaveType != nil {
		errs = validateLeaveType(errs, *r.LeaveType)
	}
	if r.StartDate != nil {
		errs = validateDate(errs, "startDate", *r.StartDate)
	}
	if r.EndDate != nil {
		errs = validateDate(errs, "endDate", *r.EndDate)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	UserID *string
	Status *string
}

func (f *LeaveRequestFilter) Validate() error {
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of Pending, Approved, Rejected",
		}}
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	UserName     string     `json:"user_name"`
	LeaveType    LeaveType  `json:"leaveType"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	AdminComment *string    `json:"adminComment,omitempty"`
	AppliedAt    time.Time  `json:"appliedAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Reason:       r.Reason,
		Status:       r.Status,
		AdminComment: r.AdminComment,
		AppliedAt:    r.AppliedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func validateLeaveType(errs validator.ValidationErrors, leaveType string) validator.ValidationErrors {
	if validator.IsEmpty(leaveType) {
		return append(errs, validator.ValidationError{
			Field:   "leaveType",
			Message: "leaveType is required",
		})
	}
	if !validator.IsInSlice(leaveType, LeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Message: "leaveType must be one of Paid, Sick, Unpaid",
		})
	}
	return errs
}

func validateDate(errs validator.ValidationErrors, field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	}
	if _, ok := validator.IsValidDate(value); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		})
	}
	return errs
}
