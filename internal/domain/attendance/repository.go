package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the attendance ledger.
type AttendanceRepository interface {
	// WithinDateLock runs fn in a transaction that holds the exclusive lock for date.
	// Every check-then-write on the records of one date must go through it.
	WithinDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context) error) error

	// Create inserts a record. Returns ErrAlreadyClockedIn or ErrSeatTaken on unique violations.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record on date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListTakenSeats returns the non-zero seats assigned on date.
	ListTakenSeats(ctx context.Context, date time.Time) ([]int, error)

	// SetClockOut sets clock_out on a record that has a clock-in and no clock-out yet.
	// Returns ErrAlreadyClockedOut when no such record matched.
	SetClockOut(ctx context.Context, id string, clockOut time.Time) (Attendance, error)

	// ListEmployeesWithoutRecord returns ids of employees with no record on date.
	ListEmployeesWithoutRecord(ctx context.Context, date time.Time) ([]string, error)

	// BulkCreateAbsences inserts absence records, skipping (employee, date) pairs that
	// already exist. Returns the number of rows inserted.
	BulkCreateAbsences(ctx context.Context, absences []Attendance) (int, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	Delete(ctx context.Context, id string) error
}

// SeatPicker chooses one seat out of a non-empty pool.
type SeatPicker interface {
	Pick(pool []int) int
}
