package attendance

import (
	"context"
	"time"
)

// AttendanceService is the decision engine behind the kiosk.
type AttendanceService interface {
	// Submit validates and applies a clock-in or clock-out made at now.
	// It always runs SweepAbsentees first.
	Submit(ctx context.Context, req SubmitRequest, now time.Time) (SubmitResult, error)

	// SweepAbsentees marks every employee without a record today as absent once the
	// clock-in window has closed. Safe to run repeatedly.
	SweepAbsentees(ctx context.Context, now time.Time) (int, error)

	// KioskStatus runs the sweep and describes today's windows for the kiosk page.
	KioskStatus(ctx context.Context, now time.Time) (KioskStatusResponse, error)

	// ListAttendance retrieves report rows with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	DeleteAttendance(ctx context.Context, id string) error
}
