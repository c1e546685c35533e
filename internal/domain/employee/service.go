package employee

import "context"

// EmployeeService is the employee directory used by administrators and the kiosk.
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdateFace enrolls or clears an employee's face descriptor
	UpdateFace(ctx context.Context, req UpdateFaceRequest) (EmployeeResponse, error)

	DeleteEmployee(ctx context.Context, id string) error

	// ListEmployees lists employees, optionally filtered by name, role or team
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// ListFaces returns the descriptors the kiosk matches against
	ListFaces(ctx context.Context) ([]FaceResponse, error)
}
