package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"employee mismatch", employee.ErrEmployeeNotFound, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "name or id mismatch"},
		{
			"outside window",
			&attendance.WindowError{Action: attendance.ActionClockIn, Window: attendance.DefaultPolicy().ClockIn},
			http.StatusUnprocessableEntity, "OUTSIDE_WINDOW", "clock-in is only accepted between 04:30 and 09:30",
		},
		{
			"already clocked in",
			&attendance.AlreadyClockedInError{SeatNumber: 17},
			http.StatusConflict, "ALREADY_CLOCKED_IN", "you have already clocked in today, your seat number is 17",
		},
		{"no seats", attendance.ErrNoSeatsAvailable, http.StatusConflict, "NO_SEATS_AVAILABLE", "all seats taken"},
		{"no clock in", attendance.ErrNoClockInFound, http.StatusConflict, "NO_CLOCK_IN_FOUND", "you have not clocked in today"},
		{"clocked out", attendance.ErrAlreadyClockedOut, http.StatusConflict, "ALREADY_CLOCKED_OUT", "you have already clocked out today"},
		{"wrapped", fmt.Errorf("ledger: %w", attendance.ErrAttendanceNotFound), http.StatusNotFound, "NOT_FOUND", "Attendance record not found"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password"},
		{"forbidden", auth.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN", "admin privilege required"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := Resolve(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.wantMsg, detail.Message)
		})
	}
}

func TestHandleError_ValidationEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "nip", Message: "nip is required"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "nip is required", body.Error.Details["nip"])
}
