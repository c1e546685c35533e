package attendance

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/employee"
	"github.com/google/uuid"
)

var errNotImplemented = errors.New("not implemented in fake")

// fakeDirectory is an in-memory employee.EmployeeRepository.
type fakeDirectory struct {
	mu        sync.Mutex
	employees []employee.Employee
}

func (d *fakeDirectory) add(name, number, role string) employee.Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	emp := employee.Employee{ID: uuid.NewString(), FullName: name, EmployeeNumber: number, Role: role}
	d.employees = append(d.employees, emp)
	return emp
}

func (d *fakeDirectory) ids() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, 0, len(d.employees))
	for _, e := range d.employees {
		ids = append(ids, e.ID)
	}
	return ids
}

func (d *fakeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (d *fakeDirectory) GetByNameAndNumber(ctx context.Context, fullName string, employeeNumber string) (employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.employees {
		if e.FullName == fullName && e.EmployeeNumber == employeeNumber {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (d *fakeDirectory) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (d *fakeDirectory) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (d *fakeDirectory) UpdateFaceDescriptor(ctx context.Context, id string, descriptor []float64) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (d *fakeDirectory) Delete(ctx context.Context, id string) error {
	return errNotImplemented
}

func (d *fakeDirectory) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, errNotImplemented
}

func (d *fakeDirectory) ListWithFace(ctx context.Context) ([]employee.Employee, error) {
	return nil, errNotImplemented
}

// fakeLedger is an in-memory attendance.AttendanceRepository. It enforces the
// same uniqueness rules as the database constraints.
type fakeLedger struct {
	directory *fakeDirectory

	dateLock sync.Mutex
	mu       sync.Mutex
	records  []attendance.Attendance

	failSweep error
}

func newFakeLedger(directory *fakeDirectory) *fakeLedger {
	return &fakeLedger{directory: directory}
}

func (l *fakeLedger) all() []attendance.Attendance {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]attendance.Attendance, len(l.records))
	copy(out, l.records)
	return out
}

func (l *fakeLedger) WithinDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context) error) error {
	l.dateLock.Lock()
	defer l.dateLock.Unlock()
	return fn(ctx)
}

func (l *fakeLedger) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.EmployeeID == att.EmployeeID && r.Date.Equal(att.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		if att.SeatNumber != 0 && r.SeatNumber == att.SeatNumber && r.Date.Equal(att.Date) {
			return attendance.Attendance{}, attendance.ErrSeatTaken
		}
	}
	now := time.Now()
	att.ID = uuid.NewString()
	att.CreatedAt = now
	att.UpdatedAt = now
	l.records = append(l.records, att)
	return att, nil
}

func (l *fakeLedger) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (l *fakeLedger) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (l *fakeLedger) ListTakenSeats(ctx context.Context, date time.Time) ([]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var seats []int
	for _, r := range l.records {
		if r.Date.Equal(date) && r.SeatNumber != 0 {
			seats = append(seats, r.SeatNumber)
		}
	}
	sort.Ints(seats)
	return seats, nil
}

func (l *fakeLedger) SetClockOut(ctx context.Context, id string, clockOut time.Time) (attendance.Attendance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.records {
		if r.ID == id && r.ClockIn != nil && r.ClockOut == nil {
			t := clockOut
			l.records[i].ClockOut = &t
			l.records[i].UpdatedAt = time.Now()
			return l.records[i], nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
}

func (l *fakeLedger) ListEmployeesWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	if l.failSweep != nil {
		return nil, l.failSweep
	}
	var ids []string
	for _, id := range l.directory.ids() {
		rec, _ := l.GetByEmployeeAndDate(ctx, id, date)
		if rec == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (l *fakeLedger) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) (int, error) {
	inserted := 0
	for _, abs := range absences {
		if _, err := l.Create(ctx, abs); err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (l *fakeLedger) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	all := l.all()
	start := min((filter.Page-1)*filter.Limit, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (l *fakeLedger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

// lowestSeat always takes the smallest free seat.
type lowestSeat struct{}

func (lowestSeat) Pick(pool []int) int { return pool[0] }
