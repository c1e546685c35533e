package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Submission errors
	ErrOutsideWindow     = errors.New("submission is outside the allowed time window")
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNoSeatsAvailable  = errors.New("all seats taken")
	ErrNoClockInFound    = errors.New("you have not clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrSeatTaken         = errors.New("seat is already assigned today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// WindowError reports a submission outside its accepted window.
// It matches ErrOutsideWindow with errors.Is.
type WindowError struct {
	Action Action
	Window Window
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s is only accepted between %s and %s", e.Action, e.Window.Start, e.Window.End)
}

func (e *WindowError) Is(target error) bool {
	return target == ErrOutsideWindow
}

// AlreadyClockedInError carries the seat from the earlier clock-in.
// It matches ErrAlreadyClockedIn with errors.Is.
type AlreadyClockedInError struct {
	SeatNumber int
}

func (e *AlreadyClockedInError) Error() string {
	return fmt.Sprintf("you have already clocked in today, your seat number is %d", e.SeatNumber)
}

func (e *AlreadyClockedInError) Is(target error) bool {
	return target == ErrAlreadyClockedIn
}
