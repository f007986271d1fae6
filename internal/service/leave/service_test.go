package leave

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepository struct {
	requests map[string]leave.LeaveRequest
	seq      int
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{requests: map[string]leave.LeaveRequest{}}
}

func (f *fakeLeaveRepository) Create(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.seq++
	r.ID = fmt.Sprintf("leave-%d", f.seq)
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRepository) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepository) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	out := []leave.LeaveRequest{}
	for _, r := range f.requests {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (f *fakeLeaveRepository) Update(_ context.Context, r leave.LeaveRequest) error {
	current, ok := f.requests[r.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !current.IsPending() {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	f.requests[r.ID] = r
	return nil
}

func (f *fakeLeaveRepository) UpdateStatus(_ context.Context, id string, status leave.Status, adminComment *string, at time.Time) error {
	current, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !current.IsPending() {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	current.Status = status
	current.AdminComment = adminComment
	current.UpdatedAt = &at
	f.requests[id] = current
	return nil
}

func (f *fakeLeaveRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

type fakeResolver map[string]user.User

func (f fakeResolver) Resolve(_ context.Context, identity string) (user.User, error) {
	if u, ok := f[identity]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	messages []email.Message
}

func (n *recordingNotifier) Notify(msg email.Message) {
	n.messages = append(n.messages, msg)
}

type fixture struct {
	svc      leave.LeaveService
	repo     *fakeLeaveRepository
	notifier *recordingNotifier
	clock    *clock.StubClock
}

// 2024-03-10 20:00 UTC is already 2024-03-11 in IST.
var now = time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) fixture {
	t.Helper()
	templates, err := email.NewTemplates()
	require.NoError(t, err)

	mail := "asha@example.com"
	users := fakeResolver{
		"EMP-1": {ID: "65a1b2c3d4e5f60718293a4b", Username: "asha", Email: &mail},
		"EMP-2": {ID: "75a1b2c3d4e5f60718293a4b", Username: "ravi"},
	}

	f := fixture{
		repo:     newFakeLeaveRepository(),
		notifier: &recordingNotifier{},
		clock:    clock.NewStubClock(now),
	}
	f.svc = NewLeaveService(f.repo, users, passthroughTransactor{}, f.notifier, templates, f.clock)
	return f
}

func apply(userID, start, end string) leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{UserID: userID, LeaveType: "Sick", StartDate: start, EndDate: end, Reason: "fever"}
}

func strPtr(s string) *string { return &s }

func TestApplyLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, leave.DefaultUserName, resp.UserName)
	assert.Equal(t, "2024-03-11", resp.StartDate)
	assert.Equal(t, "2024-03-12", resp.EndDate)
	assert.Equal(t, now, resp.AppliedAt)
}

func TestApplyLeave_DateRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cases := map[string]leave.ApplyLeaveRequest{
		"start before IST today": apply("EMP-1", "2024-03-10", "2024-03-12"),
		"end before start":       apply("EMP-1", "2024-03-14", "2024-03-12"),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.ApplyLeave(ctx, req)
			assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
			var validationErrs validator.ValidationErrors
			assert.True(t, errors.As(err, &validationErrs))
		})
	}

	_, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-11", "2024-03-11"))
	assert.NoError(t, err, "single day starting today")
}

func TestApplyLeave_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := apply("", "2024-03-11", "2024-03-12")
	req.LeaveType = "Vacation"
	_, err := f.svc.ApplyLeave(ctx, req)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	fields := validationErrs.ToMap()
	assert.Contains(t, fields, "user_id")
	assert.Contains(t, fields, "leaveType")
	assert.Empty(t, f.repo.requests)
}

func TestApplyLeave_ClaimsFillMissingIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := auth.WithClaims(context.Background(), auth.Claims{UserID: "EMP-1", Username: "asha"})

	resp, err := f.svc.ApplyLeave(ctx, apply("", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)
	assert.Equal(t, "EMP-1", resp.UserID)
	assert.Equal(t, "asha", resp.UserName)

	req := apply("EMP-2", "2024-03-11", "2024-03-12")
	req.UserName = "Ravi"
	resp, err = f.svc.ApplyLeave(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "EMP-2", resp.UserID)
	assert.Equal(t, "Ravi", resp.UserName)
}

func TestSetLeaveStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	resp, err := f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Approved", AdminComment: strPtr("get well")})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.UpdatedAt)
	assert.Equal(t, now.Add(time.Hour), *resp.UpdatedAt)

	require.Len(t, f.notifier.messages, 1)
	msg := f.notifier.messages[0]
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "Leave Request Approved", msg.Subject)
	assert.Contains(t, msg.HTML, "get well")

	_, err = f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Rejected"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	assert.Equal(t, leave.StatusApproved, f.repo.requests[created.ID].Status)
	assert.Len(t, f.notifier.messages, 1)
}

func TestSetLeaveStatus_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ApplyLeave(ctx, apply("EMP-2", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)

	_, err = f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Pending"})
	assert.ErrorIs(t, err, leave.ErrInvalidLeaveStatus)

	_, err = f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: "missing", Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID})
	var validationErrs validator.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))

	// No email on file: the decision still commits.
	resp, err := f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.Empty(t, f.notifier.messages)
}

func TestListLeaves(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	second, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-20", "2024-03-21"))
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.svc.ApplyLeave(ctx, apply("EMP-2", "2024-03-20", "2024-03-21"))
	require.NoError(t, err)

	mine, err := f.svc.ListLeaves(ctx, leave.LeaveRequestFilter{UserID: strPtr("EMP-1")})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	all, err := f.svc.ListLeaves(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.svc.ListLeaves(ctx, leave.LeaveRequestFilter{Status: strPtr("Cancelled")})
	var validationErrs validator.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
}

func TestUpdateLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)

	resp, err := f.svc.UpdateLeave(ctx, leave.UpdateLeaveRequest{ID: created.ID, EndDate: strPtr("2024-03-15"), Reason: strPtr("recovering")})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", resp.StartDate)
	assert.Equal(t, "2024-03-15", resp.EndDate)
	assert.Equal(t, "recovering", resp.Reason)
	assert.NotNil(t, resp.UpdatedAt)

	_, err = f.svc.UpdateLeave(ctx, leave.UpdateLeaveRequest{ID: created.ID, EndDate: strPtr("2024-03-01")})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = f.svc.SetLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)

	_, err = f.svc.UpdateLeave(ctx, leave.UpdateLeaveRequest{ID: created.ID, Reason: strPtr("changed my mind")})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestDeleteLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.ApplyLeave(ctx, apply("EMP-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteLeave(ctx, created.ID))
	_, err = f.svc.GetLeave(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	assert.ErrorIs(t, f.svc.DeleteLeave(ctx, created.ID), leave.ErrLeaveRequestNotFound)
}
