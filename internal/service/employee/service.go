package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/cache"
	"golang.org/x/sync/singleflight"
)

// FacesCacheKey holds the serialized face matching set.
const FacesCacheKey = "faces"

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	cache        cache.Store
	facesTTL     time.Duration
	sf           singleflight.Group
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, store cache.Store, facesTTL time.Duration) employee.EmployeeService {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		cache:        store,
		facesTTL:     facesTTL,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		FullName:       emp.FullName,
		EmployeeNumber: emp.EmployeeNumber,
		Role:           emp.Role,
		Team:           emp.Team,
		HasFace:        emp.HasFace(),
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      emp.UpdatedAt.Format(time.RFC3339),
	}
}

// invalidateFaces drops the cached matching set. A failure only delays
// freshness until the TTL expires, so it is logged and not returned.
func (s *EmployeeServiceImpl) invalidateFaces(ctx context.Context) {
	if err := s.cache.Delete(ctx, FacesCacheKey); err != nil {
		slog.WarnContext(ctx, "failed to invalidate faces cache", "key", FacesCacheKey, "error", err)
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	team := req.Team
	if team != nil && *team == "" {
		team = nil
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:       req.FullName,
		EmployeeNumber: req.EmployeeNumber,
		Role:           req.Role,
		Team:           team,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNumberExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.InfoContext(ctx, "employee created", "employee_id", created.ID)
	return mapEmployeeToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, req.ID, req)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, employee.ErrEmployeeNumberExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	// name and number are part of the matching set
	if updated.HasFace() {
		s.invalidateFaces(ctx)
	}
	return mapEmployeeToResponse(updated), nil
}

// UpdateFace implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateFace(ctx context.Context, req employee.UpdateFaceRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.UpdateFaceDescriptor(ctx, req.ID, req.Descriptor)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.invalidateFaces(ctx)
	slog.InfoContext(ctx, "face descriptor updated", "employee_id", updated.ID, "enrolled", updated.HasFace())
	return mapEmployeeToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFaces(ctx)
	slog.InfoContext(ctx, "employee deleted", "employee_id", id)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// ListFaces implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListFaces(ctx context.Context) ([]employee.FaceResponse, error) {
	cached, err := s.cache.Get(ctx, FacesCacheKey)
	switch {
	case err == nil:
		var faces []employee.FaceResponse
		if jsonErr := json.Unmarshal(cached, &faces); jsonErr == nil {
			return faces, nil
		}
		slog.WarnContext(ctx, "discarding malformed faces cache entry", "key", FacesCacheKey)
	case !errors.Is(err, cache.ErrMiss):
		slog.WarnContext(ctx, "faces cache unavailable", "error", err)
	}

	v, err, _ := s.sf.Do(FacesCacheKey, func() (interface{}, error) {
		employees, err := s.employeeRepo.ListWithFace(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list faces: %w", err)
		}

		faces := make([]employee.FaceResponse, 0, len(employees))
		for _, emp := range employees {
			faces = append(faces, employee.FaceResponse{
				ID:             emp.ID,
				FullName:       emp.FullName,
				EmployeeNumber: emp.EmployeeNumber,
				Descriptor:     emp.FaceDescriptor,
			})
		}

		if data, err := json.Marshal(faces); err == nil {
			if err := s.cache.Set(ctx, FacesCacheKey, data, s.facesTTL); err != nil {
				slog.WarnContext(ctx, "failed to cache faces", "error", err)
			}
		}
		return faces, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]employee.FaceResponse), nil
}
