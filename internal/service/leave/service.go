package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/notifier"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	users     user.Resolver
	tx        database.Transactor
	notifier  notifier.Notifier
	templates *email.Templates
	clock     clock.Clock
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	users user.Resolver,
	tx database.Transactor,
	n notifier.Notifier,
	templates *email.Templates,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		users:                  users,
		tx:                     tx,
		notifier:               n,
		templates:              templates,
		clock:                  clk,
	}
}

// ApplyLeave implements leave.LeaveService.
// The caller's token fills user_id and user_name when the body leaves them out.
func (s *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		if validator.IsEmpty(req.UserID) {
			req.UserID = claims.UserID
		}
		if validator.IsEmpty(req.UserName) {
			req.UserName = claims.Username
		}
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	now := s.clock.Now()
	if err := leave.CheckDateRange(start, end, clock.ISTMidnight(now)); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = leave.DefaultUserName
	}

	created, err := s.Create(ctx, leave.LeaveRequest{
		UserID:    req.UserID,
		UserName:  userName,
		LeaveType: leave.LeaveType(req.LeaveType),
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
		AppliedAt: now,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave requested", "id", created.ID, "user_id", created.UserID, "type", created.LeaveType)
	return leave.NewLeaveRequestResponse(created), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, leave.NewLeaveRequestResponse(r))
	}
	return out, nil
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(r), nil
}

// SetLeaveStatus implements leave.LeaveService. The decision email goes out
// only after the new status is committed, and its failure is logged.
func (s *LeaveServiceImpl) SetLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var decided leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		decided, err = current.Transition(leave.Status(req.Status), req.AdminComment, s.clock.Now())
		if err != nil {
			return err
		}

		return s.UpdateStatus(ctx, decided.ID, decided.Status, decided.AdminComment, *decided.UpdatedAt)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request decided", "id", decided.ID, "user_id", decided.UserID, "status", decided.Status)
	s.notifyDecision(ctx, decided)

	return leave.NewLeaveRequestResponse(decided), nil
}

func (s *LeaveServiceImpl) notifyDecision(ctx context.Context, r leave.LeaveRequest) {
	u, err := s.users.Resolve(ctx, r.UserID)
	if err != nil {
		slog.Warn("Leave decision email skipped, user lookup failed", "id", r.ID, "user_id", r.UserID, "error", err)
		return
	}
	if u.Email == nil || validator.IsEmpty(*u.Email) {
		slog.Warn("Leave decision email skipped, no email on file", "id", r.ID, "user_id", r.UserID)
		return
	}

	data := email.LeaveDecisionData{
		UserName:  r.UserName,
		LeaveType: string(r.LeaveType),
		StartDate: r.StartDate.Format(clock.DateLayout),
		EndDate:   r.EndDate.Format(clock.DateLayout),
		Status:    string(r.Status),
		Reason:    r.Reason,
	}
	if r.AdminComment != nil {
		data.AdminComment = *r.AdminComment
	}

	msg, err := s.templates.LeaveDecision(*u.Email, data)
	if err != nil {
		slog.Error("Failed to render leave decision email", "id", r.ID, "error", err)
		return
	}
	s.notifier.Notify(msg)
}

// UpdateLeave implements leave.LeaveService. Only pending requests can be edited.
func (s *LeaveServiceImpl) UpdateLeave(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		updated = current
		if req.LeaveType != nil {
			updated.LeaveType = leave.LeaveType(*req.LeaveType)
		}
		if req.StartDate != nil {
			updated.StartDate, _ = validator.IsValidDate(*req.StartDate)
		}
		if req.EndDate != nil {
			updated.EndDate, _ = validator.IsValidDate(*req.EndDate)
		}
		if req.Reason != nil {
			updated.Reason = *req.Reason
		}

		now := s.clock.Now()
		if err := leave.CheckDateRange(updated.StartDate, updated.EndDate, clock.ISTMidnight(now)); err != nil {
			return err
		}
		updated.UpdatedAt = &now

		return s.Update(ctx, updated)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request updated", "id", updated.ID)
	return leave.NewLeaveRequestResponse(updated), nil
}

// DeleteLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLeave(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if err := s.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Leave request deleted", "id", id)
	return nil
}
