package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy attendance.Policy
	seats  attendance.SeatPicker
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	policy attendance.Policy,
	seats attendance.SeatPicker,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		policy:               policy,
		seats:                seats,
	}
}

// Submit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitRequest, now time.Time) (attendance.SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitResult{}, err
	}
	local := s.policy.Local(now)

	// The sweep never blocks a submission; a failed run is retried by the next one.
	if _, err := s.SweepAbsentees(ctx, local); err != nil {
		slog.ErrorContext(ctx, "absentee sweep failed", "error", err, "date", local.Format("2006-01-02"))
	}

	emp, err := s.EmployeeRepository.GetByNameAndNumber(ctx, req.Name, req.EmployeeNumber)
	if err != nil {
		return attendance.SubmitResult{}, err
	}

	switch req.Action() {
	case attendance.ActionClockOut:
		return s.clockOut(ctx, emp, local)
	default:
		return s.clockIn(ctx, emp, local)
	}
}

func (s *AttendanceServiceImpl) clockIn(ctx context.Context, emp employee.Employee, local time.Time) (attendance.SubmitResult, error) {
	window := s.policy.ClockIn
	tod := attendance.TimeOfDayOf(local)
	if !window.Contains(tod) {
		return attendance.SubmitResult{}, &attendance.WindowError{Action: attendance.ActionClockIn, Window: window}
	}

	date := attendance.DateOf(local)
	remark := s.policy.Remark(tod)

	var created attendance.Attendance
	err := s.AttendanceRepository.WithinDateLock(ctx, date, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			return &attendance.AlreadyClockedInError{SeatNumber: existing.SeatNumber}
		}

		seat := 0
		if s.policy.HasSeat(emp.Role) {
			taken, err := s.AttendanceRepository.ListTakenSeats(ctx, date)
			if err != nil {
				return err
			}
			free := s.policy.FreeSeats(taken)
			if len(free) == 0 {
				return attendance.ErrNoSeatsAvailable
			}
			seat = s.seats.Pick(free)
		}

		clockIn := local
		created, err = s.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       date,
			ClockIn:    &clockIn,
			SeatNumber: seat,
			Status:     attendance.StatusPresent,
			Remark:     remark,
		})
		return err
	})
	if err != nil {
		return attendance.SubmitResult{}, err
	}

	slog.InfoContext(ctx, "employee clocked in",
		"employee_id", emp.ID,
		"date", date.Format("2006-01-02"),
		"seat_number", created.SeatNumber,
		"remark", created.Remark,
	)

	return attendance.SubmitResult{
		Action:     attendance.ActionClockIn,
		Remark:     created.Remark,
		SeatNumber: created.SeatNumber,
		Attendance: s.toResponse(withEmployee(created, emp)),
	}, nil
}

func (s *AttendanceServiceImpl) clockOut(ctx context.Context, emp employee.Employee, local time.Time) (attendance.SubmitResult, error) {
	window := s.policy.ClockOut
	if !window.Contains(attendance.TimeOfDayOf(local)) {
		return attendance.SubmitResult{}, &attendance.WindowError{Action: attendance.ActionClockOut, Window: window}
	}

	date := attendance.DateOf(local)
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.SubmitResult{}, err
	}
	// An absence record has no clock-in either.
	if existing == nil || existing.ClockIn == nil {
		return attendance.SubmitResult{}, attendance.ErrNoClockInFound
	}
	if existing.ClockOut != nil {
		return attendance.SubmitResult{}, attendance.ErrAlreadyClockedOut
	}

	updated, err := s.AttendanceRepository.SetClockOut(ctx, existing.ID, local)
	if err != nil {
		return attendance.SubmitResult{}, err
	}

	slog.InfoContext(ctx, "employee clocked out", "employee_id", emp.ID, "date", date.Format("2006-01-02"))

	return attendance.SubmitResult{
		Action:     attendance.ActionClockOut,
		Remark:     updated.Remark,
		SeatNumber: updated.SeatNumber,
		Attendance: s.toResponse(withEmployee(updated, emp)),
	}, nil
}

// SweepAbsentees implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SweepAbsentees(ctx context.Context, now time.Time) (int, error) {
	local := s.policy.Local(now)
	if attendance.TimeOfDayOf(local) < s.policy.AbsentCutoff {
		return 0, nil
	}
	date := attendance.DateOf(local)

	var marked int
	err := s.AttendanceRepository.WithinDateLock(ctx, date, func(ctx context.Context) error {
		employeeIDs, err := s.AttendanceRepository.ListEmployeesWithoutRecord(ctx, date)
		if err != nil {
			return err
		}
		if len(employeeIDs) == 0 {
			return nil
		}

		absences := make([]attendance.Attendance, 0, len(employeeIDs))
		for _, id := range employeeIDs {
			absences = append(absences, attendance.Attendance{
				EmployeeID: id,
				Date:       date,
				SeatNumber: 0,
				Status:     attendance.StatusAbsent,
				Remark:     attendance.RemarkUnexcusedAbsence,
			})
		}

		marked, err = s.AttendanceRepository.BulkCreateAbsences(ctx, absences)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("sweep absentees for %s: %w", date.Format("2006-01-02"), err)
	}

	if marked > 0 {
		slog.InfoContext(ctx, "marked employees absent", "date", date.Format("2006-01-02"), "count", marked)
	}
	return marked, nil
}

// KioskStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) KioskStatus(ctx context.Context, now time.Time) (attendance.KioskStatusResponse, error) {
	local := s.policy.Local(now)

	marked, err := s.SweepAbsentees(ctx, local)
	if err != nil {
		slog.ErrorContext(ctx, "absentee sweep failed", "error", err, "date", local.Format("2006-01-02"))
	}

	date := attendance.DateOf(local)
	taken, err := s.AttendanceRepository.ListTakenSeats(ctx, date)
	if err != nil {
		return attendance.KioskStatusResponse{}, fmt.Errorf("failed to list taken seats: %w", err)
	}

	tod := attendance.TimeOfDayOf(local)
	return attendance.KioskStatusResponse{
		Date:           date.Format("2006-01-02"),
		ServerTime:     local.Format(time.RFC3339),
		Timezone:       s.policy.Location.String(),
		ClockInWindow:  s.policy.ClockIn.String(),
		OnTimeUntil:    s.policy.OnTimeUntil.String(),
		ClockOutWindow: s.policy.ClockOut.String(),
		CanClockIn:     s.policy.ClockIn.Contains(tod),
		CanClockOut:    s.policy.ClockOut.Contains(tod),
		SeatsAvailable: len(s.policy.FreeSeats(taken)),
		MarkedAbsent:   marked,
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, s.toResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(att), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	slog.InfoContext(ctx, "attendance deleted", "attendance_id", id)
	return nil
}

func withEmployee(att attendance.Attendance, emp employee.Employee) attendance.Attendance {
	att.EmployeeName = &emp.FullName
	att.EmployeeNumber = &emp.EmployeeNumber
	att.EmployeeRole = &emp.Role
	att.EmployeeTeam = emp.Team
	return att
}

// localTimeString formats a timestamp in the kiosk timezone.
func (s *AttendanceServiceImpl) localTimeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := s.policy.Local(*t).Format("2006-01-02 15:04:05")
	return &format
}

func (s *AttendanceServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeTeam: att.EmployeeTeam,
		Date:         att.Date.Format("2006-01-02"),
		ClockInTime:  s.localTimeString(att.ClockIn),
		ClockOutTime: s.localTimeString(att.ClockOut),
		SeatNumber:   att.SeatNumber,
		Status:       att.Status,
		Remark:       att.Remark,
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	if att.EmployeeNumber != nil {
		resp.EmployeeNumber = *att.EmployeeNumber
	}
	if att.EmployeeRole != nil {
		resp.EmployeeRole = *att.EmployeeRole
	}
	return resp
}
