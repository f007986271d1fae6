package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

type LeaveType string

const (
	LeaveTypePaid   LeaveType = "Paid"
	LeaveTypeSick   LeaveType = "Sick"
	LeaveTypeUnpaid LeaveType = "Unpaid"
)

var LeaveTypes = []string{string(LeaveTypePaid), string(LeaveTypeSick), string(LeaveTypeUnpaid)}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// DefaultUserName is stored when neither the request nor the token names the applicant.
const DefaultUserName = "Employee"

// LeaveRequest entity. StartDate and EndDate are calendar days at UTC midnight.
type LeaveRequest struct {
	ID           string
	UserID       string
	UserName     string
	LeaveType    LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Status       Status
	AdminComment *string
	AppliedAt    time.Time
	UpdatedAt    *time.Time
}

func (r *LeaveRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Transition decides a pending request. It does not mutate r.
func (r LeaveRequest) Transition(to Status, comment *string, at time.Time) (LeaveRequest, error) {
	if !r.IsPending() {
		return r, ErrLeaveRequestAlreadyProcessed
	}
	if to != StatusApproved && to != StatusRejected {
		return r, fmt.Errorf("%w: %q", ErrInvalidLeaveStatus, to)
	}

	next := r
	next.Status = to
	next.AdminComment = comment
	next.UpdatedAt = &at
	return next, nil
}

// CheckDateRange rejects a start before today or an end before start.
// The returned error matches both ErrInvalidDateRange and validator.ValidationErrors.
func CheckDateRange(start, end, today time.Time) error {
	var errs validator.ValidationErrors

	if start.Before(today) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "cannot apply for leave in the past",
		})
	}
	if end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "end date cannot be before start date",
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDateRange, errs)
	}
	return nil
}
