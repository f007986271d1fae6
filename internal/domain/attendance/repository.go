package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates are IST calendar days in YYYY-MM-DD form.
type AttendanceRepository interface {
	// InsertIfAbsent creates the record unless one already exists for (user, date).
	// Returns ErrAlreadyCheckedIn when the key is taken.
	InsertIfAbsent(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByUserAndDate returns nil, nil when the user has no record for the date.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// SetCheckOut stamps the check-out time only if it is still empty.
	// Returns ErrAlreadyCheckedOut when it was already set.
	SetCheckOut(ctx context.Context, id string, at time.Time) error

	// ListByDate returns the day's records, newest check-in first.
	ListByDate(ctx context.Context, date string) ([]Attendance, error)

	// ListByUserAndRange returns records with from <= date < to.
	ListByUserAndRange(ctx context.Context, userID string, from, to string) ([]Attendance, error)

	// ListByUserAndMonth returns records whose date starts with the YYYY-MM month.
	ListByUserAndMonth(ctx context.Context, userID string, month string) ([]Attendance, error)
}
