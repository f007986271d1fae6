package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, user_id, username, latitude, longitude, check_in_time, check_out_time, date, status, created_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// InsertIfAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) InsertIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = utils.NewObjectID()
	}

	query := `
		INSERT INTO attendance (id, user_id, username, latitude, longitude, check_in_time, check_out_time, date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT ON CONSTRAINT attendance_user_date_key DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		a.ID,
		a.UserID,
		a.Username,
		a.Location.Lat,
		a.Location.Lng,
		a.CheckInTime,
		a.CheckOutTime,
		a.Date,
		a.Status,
	))
	if err != nil {
		// DO NOTHING returns no row when the (user, date) key is taken.
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return created, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &a, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE attendance
		SET check_out_time = $1
		WHERE id = $2 AND check_out_time IS NULL
	`, at, id)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM attendance WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check attendance: %w", err)
		}
		if !exists {
			return attendance.ErrAttendanceNotFound
		}
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return r.list(ctx, `WHERE date = $1 ORDER BY check_in_time DESC`, date)
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, from, to string) ([]attendance.Attendance, error) {
	return r.list(ctx, `WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date ASC`, userID, from, to)
}

// ListByUserAndMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserAndMonth(ctx context.Context, userID string, month string) ([]attendance.Attendance, error) {
	return r.list(ctx, `WHERE user_id = $1 AND date LIKE $2 || '%' ORDER BY date ASC`, userID, month)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, clause string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Username,
		&a.Location.Lat,
		&a.Location.Lng,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.Date,
		&a.Status,
		&a.CreatedAt,
	)
	return a, err
}
