package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByNameAndNumber matches both fields exactly. Returns ErrEmployeeNotFound when absent.
	GetByNameAndNumber(ctx context.Context, fullName string, employeeNumber string) (Employee, error)

	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	UpdateFaceDescriptor(ctx context.Context, id string, descriptor []float64) (Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ListWithFace returns employees that have a face descriptor.
	ListWithFace(ctx context.Context) ([]Employee, error)
}
