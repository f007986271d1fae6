package attendance

import "errors"

// Attendance domain errors
var (
	// Verification errors
	ErrOutOfRange        = errors.New("not at office location")
	ErrFaceNotRegistered = errors.New("face not registered, please register face first")
	ErrFaceDataMissing   = errors.New("face data missing in request")
	ErrFaceMismatch      = errors.New("face verification failed")

	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidAction     = errors.New("invalid action, expected check-in or check-out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
