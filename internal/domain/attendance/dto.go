package attendance

import (
	"strings"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/validator"
)

// ========================================
// KIOSK DTOs
// ========================================

// Wire values of absen_type.
const (
	TypeDatang = "datang"
	TypePulang = "pulang"
)

type SubmitRequest struct {
	Name           string `json:"nama"`
	EmployeeNumber string `json:"nip"`
	Type           string `json:"absen_type"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.EmployeeNumber = strings.TrimSpace(r.EmployeeNumber)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "nama",
			Message: "nama is required",
		})
	}

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "absen_type",
			Message: "absen_type is required",
		})
	} else if !validator.IsInSlice(r.Type, []string{TypeDatang, TypePulang}) {
		errs = append(errs, validator.ValidationError{
			Field:   "absen_type",
			Message: "absen_type must be one of: datang, pulang",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Action maps the wire type to a domain action. Call after Validate.
func (r SubmitRequest) Action() Action {
	if r.Type == TypePulang {
		return ActionClockOut
	}
	return ActionClockIn
}

type SubmitResult struct {
	Action     Action             `json:"action"`
	Remark     Remark             `json:"remark,omitempty"`
	SeatNumber int                `json:"seat_number"`
	Attendance AttendanceResponse `json:"attendance"`
}

type KioskStatusResponse struct {
	Date           string `json:"date"`
	ServerTime     string `json:"server_time"`
	Timezone       string `json:"timezone"`
	ClockInWindow  string `json:"clock_in_window"`
	OnTimeUntil    string `json:"on_time_until"`
	ClockOutWindow string `json:"clock_out_window"`
	CanClockIn     bool   `json:"can_clock_in"`
	CanClockOut    bool   `json:"can_clock_out"`
	SeatsAvailable int    `json:"seats_available"`
	MarkedAbsent   int    `json:"marked_absent"`
}

type SweepResponse struct {
	Date         string `json:"date"`
	MarkedAbsent int    `json:"marked_absent"`
}

// ========================================
// REPORT DTOs
// ========================================

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	EmployeeRole   string  `json:"employee_role,omitempty"`
	EmployeeTeam   *string `json:"employee_team,omitempty"`
	Date           string  `json:"date"`
	ClockInTime    *string `json:"clock_in_time,omitempty"`
	ClockOutTime   *string `json:"clock_out_time,omitempty"`
	SeatNumber     int     `json:"seat_number"`
	Status         Status  `json:"status"`
	Remark         Remark  `json:"remark"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	Search    *string `json:"search,omitempty"`     // name, role or team
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
	Remark    *string `json:"remark,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, clock_in_time, seat_number, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusPresent), string(StatusAbsent)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, absent",
			})
		}
	}

	if f.Remark != nil {
		validRemarks := []string{string(RemarkOnTime), string(RemarkLate), string(RemarkUnexcusedAbsence)}
		if !validator.IsInSlice(*f.Remark, validRemarks) {
			errs = append(errs, validator.ValidationError{
				Field:   "remark",
				Message: "remark must be one of: on-time, late, unexcused-absence",
			})
		}
	}

	dates := []struct {
		field string
		value *string
	}{
		{"date", f.Date},
		{"start_date", f.StartDate},
		{"end_date", f.EndDate},
	}
	for _, d := range dates {
		if d.value == nil || *d.value == "" {
			continue
		}
		if _, valid := validator.IsValidDate(*d.value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   d.field,
				Message: d.field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_name", "clock_in_time", "seat_number", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_name, clock_in_time, seat_number, status",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
