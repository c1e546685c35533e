package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// attendanceLockClass namespaces the per-date advisory locks.
const attendanceLockClass int32 = 0x4b534b31

const attendanceColumns = `a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.seat_number, a.status, a.remark, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func dateLockKey(date time.Time) int32 {
	y, m, d := date.Date()
	return int32(y*10000 + int(m)*100 + d)
}

// WithinDateLock implements attendance.AttendanceRepository.
func (a *attendanceRepository) WithinDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, attendanceLockClass, dateLockKey(date)); err != nil {
			return fmt.Errorf("failed to lock attendance date %s: %w", date.Format("2006-01-02"), err)
		}
		return fn(ContextWithTx(ctx, tx))
	})
}

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []any{
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.SeatNumber, &att.Status, &att.Remark, &att.CreatedAt, &att.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return att, err
}

func scanAttendanceWithEmployee(row pgx.Row) (attendance.Attendance, error) {
	var name, number, role, team *string
	att, err := scanAttendance(row, &name, &number, &role, &team)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.EmployeeName = name
	att.EmployeeNumber = number
	att.EmployeeRole = role
	att.EmployeeTeam = team
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances AS a (employee_id, date, clock_in, clock_out, seat_number, status, remark)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.EmployeeID, newAttendance.Date, newAttendance.ClockIn, newAttendance.ClockOut,
		newAttendance.SeatNumber, newAttendance.Status, newAttendance.Remark,
	))
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			switch constraint {
			case "attendances_employee_date_key":
				return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
			case "attendances_date_seat_key":
				return attendance.Attendance{}, attendance.ErrSeatTaken
			}
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !isUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.full_name, e.employee_number, e.role, e.team
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendanceWithEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance %s: %w", id, err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.employee_id = $1 AND a.date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s: %w", employeeID, err)
	}
	return &att, nil
}

// ListTakenSeats implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListTakenSeats(ctx context.Context, date time.Time) ([]int, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT seat_number FROM attendances WHERE date = $1 AND seat_number <> 0 ORDER BY seat_number`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list taken seats: %w", err)
	}
	seats, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to scan taken seats: %w", err)
	}
	return seats, nil
}

// SetClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetClockOut(ctx context.Context, id string, clockOut time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances AS a
		SET clock_out = $2, updated_at = NOW()
		WHERE a.id = $1 AND a.clock_in IS NOT NULL AND a.clock_out IS NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, id, clockOut))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set clock out on attendance %s: %w", id, err)
	}
	return updated, nil
}

// ListEmployeesWithoutRecord implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEmployeesWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.id::text
		FROM employees e
		WHERE NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.employee_id = e.id AND a.date = $1
		)
		ORDER BY e.id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees without attendance: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee ids: %w", err)
	}
	return ids, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) (int, error) {
	if len(absences) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, a.db)

	employeeIDs := make([]string, len(absences))
	dates := make([]time.Time, len(absences))
	statuses := make([]string, len(absences))
	remarks := make([]string, len(absences))
	for i, abs := range absences {
		employeeIDs[i] = abs.EmployeeID
		dates[i] = abs.Date
		statuses[i] = string(abs.Status)
		remarks[i] = string(abs.Remark)
	}

	query := `
		INSERT INTO attendances (employee_id, date, seat_number, status, remark)
		SELECT u.employee_id::uuid, u.date, 0, u.status, u.remark
		FROM unnest($1::text[], $2::date[], $3::text[], $4::text[]) AS u(employee_id, date, status, remark)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, employeeIDs, dates, statuses, remarks)
	if err != nil {
		return 0, fmt.Errorf("failed to insert absences: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	// Search on name, role or team
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.role ILIKE $%d OR e.team ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d::date", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Remark != nil && *filter.Remark != "" {
		baseWhere += fmt.Sprintf(" AND a.remark = $%d", argIdx)
		args = append(args, *filter.Remark)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "clock_in_time":
		orderByField = "a.clock_in"
	case "seat_number":
		orderByField = "a.seat_number"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s,
			e.full_name, e.employee_number, e.role, e.team
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s NULLS LAST, a.id ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0, filter.Limit)
	for rows.Next() {
		att, err := scanAttendanceWithEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
