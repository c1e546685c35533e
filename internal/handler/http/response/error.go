package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/validator"
)

// Resolve maps a domain error to a status code and the detail shown to the caller.
// Unknown errors resolve to a generic 500 so internals never leak.
func Resolve(err error) (int, ErrorDetail) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: validationErrs.ToMap(),
		}
	}

	switch {
	// Kiosk submission errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "EMPLOYEE_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, attendance.ErrOutsideWindow):
		return http.StatusUnprocessableEntity, ErrorDetail{Code: "OUTSIDE_WINDOW", Message: err.Error()}
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		return http.StatusConflict, ErrorDetail{Code: "ALREADY_CLOCKED_IN", Message: err.Error()}
	case errors.Is(err, attendance.ErrNoSeatsAvailable):
		return http.StatusConflict, ErrorDetail{Code: "NO_SEATS_AVAILABLE", Message: err.Error()}
	case errors.Is(err, attendance.ErrSeatTaken):
		return http.StatusConflict, ErrorDetail{Code: "SEAT_TAKEN", Message: err.Error()}
	case errors.Is(err, attendance.ErrNoClockInFound):
		return http.StatusConflict, ErrorDetail{Code: "NO_CLOCK_IN_FOUND", Message: err.Error()}
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		return http.StatusConflict, ErrorDetail{Code: "ALREADY_CLOCKED_OUT", Message: err.Error()}

	// Admin errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Attendance record not found"}
	case errors.Is(err, employee.ErrEmployeeNumberExists):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: "Employee number already registered"}
	case errors.Is(err, employee.ErrInvalidFaceDescriptor):
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: map[string]string{"descriptor": err.Error()},
		}

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: err.Error()}
	}

	return http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An unexpected error occurred"}
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	status, detail := Resolve(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	Error(w, status, detail)
}
