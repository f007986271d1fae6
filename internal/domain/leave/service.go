package leave

import (
	"context"
)

type LeaveService interface {
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	ListLeaves(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetLeave(ctx context.Context, id string) (LeaveRequestResponse, error)
	SetLeaveStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error)
	UpdateLeave(ctx context.Context, req UpdateLeaveRequest) (LeaveRequestResponse, error)
	DeleteLeave(ctx context.Context, id string) error
}
