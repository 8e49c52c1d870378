package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrOutsideGeofence = errors.New("you are outside the office radius")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
)
