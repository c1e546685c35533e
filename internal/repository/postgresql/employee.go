package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, full_name, employee_number, role, team, face_descriptor, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.EmployeeNumber, &emp.Role, &emp.Team,
		&emp.FaceDescriptor, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func mapEmployeeWriteError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok && constraint == "employees_employee_number_key" {
		return employee.ErrEmployeeNumberExists
	}
	return err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return emp, nil
}

// GetByNameAndNumber implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByNameAndNumber(ctx context.Context, fullName string, employeeNumber string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE full_name = $1 AND employee_number = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, fullName, employeeNumber))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by name and number: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (full_name, employee_number, role, team, face_descriptor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.FullName, newEmployee.EmployeeNumber, newEmployee.Role, newEmployee.Team, newEmployee.FaceDescriptor,
	))
	if err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
// An empty team clears it.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET full_name = COALESCE($2, full_name),
			employee_number = COALESCE($3, employee_number),
			role = COALESCE($4, role),
			team = CASE WHEN $5::text IS NULL THEN team ELSE NULLIF($5::text, '') END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, id, req.FullName, req.EmployeeNumber, req.Role, req.Team))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return updated, nil
}

// UpdateFaceDescriptor implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateFaceDescriptor(ctx context.Context, id string, descriptor []float64) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	if len(descriptor) == 0 {
		descriptor = nil
	}

	query := `
		UPDATE employees
		SET face_descriptor = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, id, descriptor))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update face descriptor for employee %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
// Attendance records of the employee are removed with it.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR employee_number ILIKE $%d OR role ILIKE $%d OR team ILIKE $%d)", argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY full_name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListWithFace implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListWithFace(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE face_descriptor IS NOT NULL ORDER BY full_name ASC, id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with face: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
