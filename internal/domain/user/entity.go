package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR admin - payroll, salary and leave decisions
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID             string
	UserID         *string
	LegacyID       *string
	Username       string
	Email          *string
	Role           Role
	FaceDescriptor []float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin checks if user has HR admin rights
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasFace reports whether a face descriptor has been registered.
func (u *User) HasFace() bool {
	return len(u.FaceDescriptor) > 0
}

// AttendanceKey is the identifier attendance records are stored under:
// the external user id when present, the primary key otherwise.
func (u *User) AttendanceKey() string {
	if u.UserID != nil && *u.UserID != "" {
		return *u.UserID
	}
	return u.ID
}
