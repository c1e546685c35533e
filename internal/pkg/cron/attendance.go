package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		interval:          interval,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", j.interval, time.Minute, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees runs the absentee sweep. Before the cutoff it is a no-op,
// and later runs on the same day find nobody left to mark.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	marked, err := j.attendanceService.SweepAbsentees(ctx, j.now())
	if err != nil {
		return err
	}
	if marked > 0 {
		slog.Info("Cron: Marked absent employees", "count", marked)
	}
	return nil
}
