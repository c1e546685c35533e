package attendance

import (
	"time"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	SeatNumber int
	Status     Status
	Remark     Remark
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName   *string
	EmployeeNumber *string
	EmployeeRole   *string
	EmployeeTeam   *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

type Remark string

const (
	RemarkOnTime           Remark = "on-time"
	RemarkLate             Remark = "late"
	RemarkUnexcusedAbsence Remark = "unexcused-absence"
)

// Action is the kind of kiosk submission.
type Action string

const (
	ActionClockIn  Action = "clock-in"
	ActionClockOut Action = "clock-out"
)

// DateOf returns the calendar date of t in t's location, as UTC midnight.
// Dates are stored in DATE columns, which pgx scans back as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
