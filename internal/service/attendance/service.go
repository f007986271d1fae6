package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/config"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	users  user.Resolver
	clock  clock.Clock
	office config.OfficeConfig
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	users user.Resolver,
	clk clock.Clock,
	office config.OfficeConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		users:                users,
		clock:                clk,
		office:               office,
	}
}

// GetTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, identity string) (attendance.TodayStatusResponse, error) {
	u, err := s.users.Resolve(ctx, identity)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	today := clock.ISTDate(s.clock.Now())
	record, err := s.GetByUserAndDate(ctx, u.AttendanceKey(), today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.TodayStatusResponse{Status: attendance.StatusAbsent}, nil
	}

	resp := attendance.TodayStatusResponse{Status: record.Status}
	if record.CheckOutTime != nil {
		out := record.CheckOutTime.Format(clock.DateTimeLayout)
		resp.CheckOutTime = &out
	}
	return resp, nil
}

// MarkAttendance implements attendance.AttendanceService.
// Steps run in a fixed order: validate, resolve user, load today's record,
// geofence, then the action itself. The first failure is returned.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	u, err := s.users.Resolve(ctx, req.Identity)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	now := clock.IST(s.clock.Now())
	today := now.Format(clock.DateLayout)
	key := u.AttendanceKey()

	existing, err := s.GetByUserAndDate(ctx, key, today)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if err := checkGeofence(s.office, *req.Location); err != nil {
		slog.Info("Attendance rejected outside geofence", "user_id", key, "lat", req.Location.Lat, "lng", req.Location.Lng)
		return attendance.MarkAttendanceResponse{}, err
	}

	switch req.Action {
	case attendance.ActionCheckIn:
		return s.checkIn(ctx, u, req, existing, now)
	case attendance.ActionCheckOut:
		return s.checkOut(ctx, key, existing, now)
	default:
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("%w: %q", attendance.ErrInvalidAction, req.Action)
	}
}

func (s *AttendanceServiceImpl) checkIn(ctx context.Context, u user.User, req attendance.MarkAttendanceRequest, existing *attendance.Attendance, now time.Time) (attendance.MarkAttendanceResponse, error) {
	if existing != nil {
		return attendance.MarkAttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !u.HasFace() {
		return attendance.MarkAttendanceResponse{}, attendance.ErrFaceNotRegistered
	}
	if len(req.Descriptor) == 0 {
		return attendance.MarkAttendanceResponse{}, attendance.ErrFaceDataMissing
	}
	if err := verifyFace(u.FaceDescriptor, req.Descriptor); err != nil {
		slog.Info("Face verification failed", "user_id", u.ID)
		return attendance.MarkAttendanceResponse{}, err
	}

	username := req.Username
	if validator.IsEmpty(username) {
		username = u.Username
	}

	status := StatusAt(now)
	record, err := s.InsertIfAbsent(ctx, attendance.Attendance{
		UserID:      u.AttendanceKey(),
		Username:    username,
		Location:    *req.Location,
		CheckInTime: now,
		Date:        now.Format(clock.DateLayout),
		Status:      status,
	})
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	slog.Info("Checked in", "user_id", record.UserID, "date", record.Date, "status", record.Status)
	return attendance.MarkAttendanceResponse{
		Action:  attendance.ActionCheckIn,
		Status:  record.Status,
		Message: fmt.Sprintf("Checked in as '%s'", record.Status),
	}, nil
}

func (s *AttendanceServiceImpl) checkOut(ctx context.Context, key string, existing *attendance.Attendance, now time.Time) (attendance.MarkAttendanceResponse, error) {
	if existing == nil {
		return attendance.MarkAttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.IsCheckedOut() {
		return attendance.MarkAttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if err := s.SetCheckOut(ctx, existing.ID, now); err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	slog.Info("Checked out", "user_id", key, "date", existing.Date)
	return attendance.MarkAttendanceResponse{
		Action:  attendance.ActionCheckOut,
		Message: "Checked out successfully",
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, date string) (attendance.ListAttendanceResponse, error) {
	if validator.IsEmpty(date) {
		date = clock.ISTDate(s.clock.Now())
	} else if _, ok := validator.IsValidDate(date); !ok {
		return attendance.ListAttendanceResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	records, err := s.ListByDate(ctx, date)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewListAttendanceResponse(records), nil
}

// ListUserMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListUserMonth(ctx context.Context, identity string, month string) (attendance.ListAttendanceResponse, error) {
	from, to, ok := validator.MonthRange(month)
	if !ok {
		return attendance.ListAttendanceResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}

	u, err := s.users.Resolve(ctx, identity)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.ListByUserAndRange(ctx, u.AttendanceKey(), from, to)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewListAttendanceResponse(records), nil
}
