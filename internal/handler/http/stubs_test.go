package http

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
)

type stubAttendanceService struct {
	submitResult attendance.SubmitResult
	submitErr    error
	lastSubmit   attendance.SubmitRequest
	lastNow      time.Time

	status    attendance.KioskStatusResponse
	swept     int
	list      attendance.ListAttendanceResponse
	gotFilter attendance.AttendanceFilter
	getErr    error
}

func (s *stubAttendanceService) Submit(_ context.Context, req attendance.SubmitRequest, now time.Time) (attendance.SubmitResult, error) {
	s.lastSubmit = req
	s.lastNow = now
	return s.submitResult, s.submitErr
}

func (s *stubAttendanceService) SweepAbsentees(_ context.Context, now time.Time) (int, error) {
	s.lastNow = now
	return s.swept, nil
}

func (s *stubAttendanceService) KioskStatus(_ context.Context, now time.Time) (attendance.KioskStatusResponse, error) {
	s.lastNow = now
	return s.status, nil
}

func (s *stubAttendanceService) ListAttendance(_ context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	s.gotFilter = filter
	return s.list, nil
}

func (s *stubAttendanceService) GetAttendance(_ context.Context, id string) (attendance.AttendanceResponse, error) {
	if s.getErr != nil {
		return attendance.AttendanceResponse{}, s.getErr
	}
	return attendance.AttendanceResponse{ID: id}, nil
}

func (s *stubAttendanceService) DeleteAttendance(_ context.Context, id string) error {
	return s.getErr
}

type stubEmployeeService struct {
	faces     []employee.FaceResponse
	created   employee.CreateEmployeeRequest
	updated   employee.UpdateEmployeeRequest
	face      employee.UpdateFaceRequest
	createErr error
}

func (s *stubEmployeeService) GetEmployee(_ context.Context, id string) (employee.EmployeeResponse, error) {
	if id == "missing" {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeResponse{ID: id}, nil
}

func (s *stubEmployeeService) CreateEmployee(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	s.created = req
	if s.createErr != nil {
		return employee.EmployeeResponse{}, s.createErr
	}
	return employee.EmployeeResponse{ID: "emp-1", FullName: req.FullName, EmployeeNumber: req.EmployeeNumber}, nil
}

func (s *stubEmployeeService) UpdateEmployee(_ context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	s.updated = req
	return employee.EmployeeResponse{ID: req.ID}, nil
}

func (s *stubEmployeeService) UpdateFace(_ context.Context, req employee.UpdateFaceRequest) (employee.EmployeeResponse, error) {
	s.face = req
	return employee.EmployeeResponse{ID: req.ID, HasFace: len(req.Descriptor) > 0}, nil
}

func (s *stubEmployeeService) DeleteEmployee(_ context.Context, id string) error {
	return nil
}

func (s *stubEmployeeService) ListEmployees(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	return employee.ListEmployeeResponse{Page: 1, Limit: 20}, nil
}

func (s *stubEmployeeService) ListFaces(_ context.Context) ([]employee.FaceResponse, error) {
	return s.faces, nil
}

type stubAuthService struct {
	token auth.TokenResponse
	err   error
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return s.token, s.err
}

func (s *stubAuthService) EnsureAdmin(_ context.Context, username string, password string) error {
	return nil
}
