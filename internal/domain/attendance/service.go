package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// GetTodayStatus reports the user's status for the current IST day
	GetTodayStatus(ctx context.Context, identity string) (TodayStatusResponse, error)

	// MarkAttendance runs the verification pipeline and records a check-in or check-out
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)

	// ListAttendance returns every record for a date, today when empty
	ListAttendance(ctx context.Context, date string) (ListAttendanceResponse, error)

	// ListUserMonth returns a user's records for a YYYY-MM month
	ListUserMonth(ctx context.Context, identity string, month string) (ListAttendanceResponse, error)
}
