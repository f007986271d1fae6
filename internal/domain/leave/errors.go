package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidLeaveStatus           = errors.New("invalid leave status, expected Approved or Rejected")
	ErrInvalidDateRange             = errors.New("invalid leave date range")
)
