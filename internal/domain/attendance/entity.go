package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "Present"
	StatusLate       Status = "Late"
	StatusLateAbsent Status = "Late Absent"
	// StatusAbsent is never stored; it is reported when no record exists for the day.
	StatusAbsent Status = "Absent"
)

type Action string

const (
	ActionCheckIn  Action = "check-in"
	ActionCheckOut Action = "check-out"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attendance is one user's record for one IST calendar day.
// CheckInTime and CheckOutTime hold the IST wall clock.
type Attendance struct {
	ID           string
	UserID       string
	Username     string
	Location     Location
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Date         string
	Status       Status
	CreatedAt    time.Time
}

// IsCheckedOut reports whether the check-out time has been set.
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOutTime != nil
}
