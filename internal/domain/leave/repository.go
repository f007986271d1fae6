package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// List orders by applied_at, newest first
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// Update rewrites the editable fields of a pending request
	Update(ctx context.Context, request LeaveRequest) error
	// UpdateStatus only succeeds while the stored status is still Pending
	UpdateStatus(ctx context.Context, id string, status Status, adminComment *string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
