package attendance

import (
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	Identity   string    `json:"id"`
	Username   string    `json:"username"`
	Location   *Location `json:"location"`
	Action     Action    `json:"type"`
	Descriptor []float64 `json:"descriptor,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identity) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Location == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	} else {
		if r.Location.Lat < -90 || r.Location.Lat > 90 {
			errs = append(errs, validator.ValidationError{
				Field:   "location.lat",
				Message: "latitude must be between -90 and 90",
			})
		}
		if r.Location.Lng < -180 || r.Location.Lng > 180 {
			errs = append(errs, validator.ValidationError{
				Field:   "location.lng",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if r.Descriptor != nil && !utils.AllFinite(r.Descriptor) {
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: "descriptor must contain only finite numbers",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkAttendanceResponse struct {
	Action  Action `json:"type"`
	Status  Status `json:"status,omitempty"`
	Message string `json:"message"`
}

type TodayStatusResponse struct {
	Status       Status  `json:"status"`
	CheckOutTime *string `json:"checkOutTime,omitempty"`
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Location     Location `json:"location"`
	CheckInTime  string   `json:"checkInTime"`
	CheckOutTime *string  `json:"checkOutTime"`
	Date         string   `json:"date"`
	Status       Status   `json:"status"`
}

type ListAttendanceResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Username:    a.Username,
		Location:    a.Location,
		CheckInTime: a.CheckInTime.Format(clock.DateTimeLayout),
		Date:        a.Date,
		Status:      a.Status,
	}
	if a.CheckOutTime != nil {
		s := a.CheckOutTime.Format(clock.DateTimeLayout)
		resp.CheckOutTime = &s
	}
	return resp
}

func NewListAttendanceResponse(records []Attendance) ListAttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, NewAttendanceResponse(a))
	}
	return ListAttendanceResponse{Attendance: out}
}
