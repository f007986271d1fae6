package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestTransition(t *testing.T) {
	at := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	comment := "enjoy"
	pending := LeaveRequest{ID: "a", Status: StatusPending}

	approved, err := pending.Transition(StatusApproved, &comment, at)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.Equal(t, &comment, approved.AdminComment)
	require.NotNil(t, approved.UpdatedAt)
	assert.Equal(t, at, *approved.UpdatedAt)
	assert.Equal(t, StatusPending, pending.Status, "receiver must not change")

	rejected, err := pending.Transition(StatusRejected, nil, at)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	_, err = pending.Transition(StatusPending, nil, at)
	assert.ErrorIs(t, err, ErrInvalidLeaveStatus)

	_, err = pending.Transition("Cancelled", nil, at)
	assert.ErrorIs(t, err, ErrInvalidLeaveStatus)

	for _, terminal := range []Status{StatusApproved, StatusRejected} {
		_, err = LeaveRequest{Status: terminal}.Transition(StatusApproved, nil, at)
		assert.ErrorIs(t, err, ErrLeaveRequestAlreadyProcessed)
	}
}

func TestCheckDateRange(t *testing.T) {
	today := day("2025-06-15")

	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"today", "2025-06-15", "2025-06-15", false},
		{"future range", "2025-06-20", "2025-06-22", false},
		{"start in past", "2025-06-14", "2025-06-16", true},
		{"end before start", "2025-06-20", "2025-06-19", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDateRange(day(tt.start), day(tt.end), today)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDateRange)
			var validationErrs validator.ValidationErrors
			assert.True(t, errors.As(err, &validationErrs))
		})
	}
}

func TestApplyLeaveRequest_Validate(t *testing.T) {
	valid := ApplyLeaveRequest{UserID: "u1", LeaveType: "Sick", StartDate: "2025-06-20", EndDate: "2025-06-21"}
	assert.NoError(t, valid.Validate())

	missing := ApplyLeaveRequest{}
	err := missing.Validate()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	m := errs.ToMap()
	assert.Contains(t, m, "user_id")
	assert.Contains(t, m, "leaveType")
	assert.Contains(t, m, "startDate")
	assert.Contains(t, m, "endDate")

	badType := valid
	badType.LeaveType = "Vacation"
	assert.Error(t, badType.Validate())

	badDate := valid
	badDate.StartDate = "20-06-2025"
	assert.Error(t, badDate.Validate())
}
