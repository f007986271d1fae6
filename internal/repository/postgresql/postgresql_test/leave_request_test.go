package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeave(userID string, appliedAt time.Time) leave.LeaveRequest {
	return leave.LeaveRequest{
		UserID:    userID,
		UserName:  "Employee",
		LeaveType: leave.LeaveTypeSick,
		StartDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
		Reason:    "fever",
		Status:    leave.StatusPending,
		AppliedAt: appliedAt,
	}
}

func TestLeaveRequestRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	applied := time.Date(2025, 6, 15, 4, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, newLeave("EMP-1", applied))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), created.StartDate.UTC())

	comment := "approved"
	decidedAt := applied.Add(time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, leave.StatusApproved, &comment, decidedAt))

	err = repo.UpdateStatus(ctx, created.ID, leave.StatusRejected, nil, decidedAt)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	require.NotNil(t, got.AdminComment)
	assert.Equal(t, "approved", *got.AdminComment)

	got.Reason = "changed"
	assert.ErrorIs(t, repo.Update(ctx, got), leave.ErrLeaveRequestAlreadyProcessed)

	err = repo.UpdateStatus(ctx, "ffffffffffffffffffffffff", leave.StatusApproved, nil, decidedAt)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), leave.ErrLeaveRequestNotFound)
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_ListOrderAndFilter(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	base := time.Date(2025, 6, 15, 4, 0, 0, 0, time.UTC)
	older, err := repo.Create(ctx, newLeave("EMP-1", base))
	require.NoError(t, err)
	newer, err := repo.Create(ctx, newLeave("EMP-1", base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newLeave("EMP-2", base.Add(2*time.Hour)))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, older.ID, leave.StatusRejected, nil, base))

	mine, err := repo.List(ctx, leave.LeaveRequestFilter{UserID: strPtr("EMP-1")})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)

	all, err := repo.List(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := repo.List(ctx, leave.LeaveRequestFilter{Status: strPtr("Pending")})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
