package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hrdash/internal/hrapi"
)

var (
	ErrAlreadyCheckedIn  = errors.New("employee has already checked in today")
	ErrAlreadyCheckedOut = errors.New("employee has already checked out today")

	// ErrRefreshFailed wraps a failed snapshot re-fetch after the backend
	// accepted a command. The mutation itself went through.
	ErrRefreshFailed = errors.New("snapshot refresh failed")
)

// Backend is the slice of the HR API the board needs.
type Backend interface {
	ListAttendance(ctx context.Context, filter hrapi.Filter) ([]hrapi.Employee, error)
	CheckIn(ctx context.Context, employeeID string) error
	CheckOut(ctx context.Context, employeeID string) error
	CreateEmployeeJSON(ctx context.Context, profile hrapi.Employee) (hrapi.Employee, error)
}

// Board holds the attendance view-model: the last successfully fetched
// snapshot of all employees with their attendance records. All mutation
// goes through the backend followed by a full re-fetch; the board never
// synthesizes attendance state from a command response.
type Board struct {
	backend Backend
	loc     *time.Location

	mu        sync.Mutex
	employees []hrapi.Employee
}

func NewBoard(backend Backend, loc *time.Location) *Board {
	if loc == nil {
		loc = time.UTC
	}
	return &Board{backend: backend, loc: loc}
}

// Location is the calendar frame the board resolves days in. Callers
// parsing day inputs must parse them in this location.
func (b *Board) Location() *time.Location {
	return b.loc
}

// LoadAll refreshes the snapshot. On any failure the previous snapshot is
// left untouched and the error is returned for the notification path; no
// partial merge ever happens.
func (b *Board) LoadAll(ctx context.Context) error {
	employees, err := b.backend.ListAttendance(ctx, "")
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.employees = employees
	b.mu.Unlock()
	return nil
}

// Employees returns a copy of the current snapshot.
func (b *Board) Employees() []hrapi.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	snapshot := make([]hrapi.Employee, len(b.employees))
	copy(snapshot, b.employees)
	return snapshot
}

func (b *Board) find(employeeID string) (hrapi.Employee, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.employees {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return hrapi.Employee{}, false
}

// CheckIn records an arrival for the employee on the given day. A second
// check-in for the same day is rejected locally before any network call.
// An employee code missing from the snapshot is passed through: the
// backend owns the authoritative roster.
func (b *Board) CheckIn(ctx context.Context, employeeID string, day time.Time) error {
	if employee, ok := b.find(employeeID); ok && HasCheckedIn(employee, day, b.loc) {
		return ErrAlreadyCheckedIn
	}
	if err := b.backend.CheckIn(ctx, employeeID); err != nil {
		return err
	}
	if err := b.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return nil
}

// CheckOut mirrors CheckIn with the departure guard.
func (b *Board) CheckOut(ctx context.Context, employeeID string, day time.Time) error {
	if employee, ok := b.find(employeeID); ok && HasCheckedOut(employee, day, b.loc) {
		return ErrAlreadyCheckedOut
	}
	if err := b.backend.CheckOut(ctx, employeeID); err != nil {
		return err
	}
	if err := b.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return nil
}

// AddEmployee creates a minimal profile from the board's add dialog and
// appends the created record to the snapshot.
func (b *Board) AddEmployee(ctx context.Context, profile hrapi.Employee) (hrapi.Employee, error) {
	created, err := b.backend.CreateEmployeeJSON(ctx, profile)
	if err != nil {
		return hrapi.Employee{}, err
	}

	b.mu.Lock()
	b.employees = append(b.employees, created)
	b.mu.Unlock()
	return created, nil
}

// Row is one attendance board line for a chosen day.
type Row struct {
	Employee hrapi.Employee           `json:"employee"`
	Present  bool                     `json:"present"`
	Records  []hrapi.AttendanceRecord `json:"records"`
	CheckIn  bool                     `json:"checkedIn"`
	CheckOut bool                     `json:"checkedOut"`
}

// RowsFor projects the snapshot onto a calendar day.
func (b *Board) RowsFor(day time.Time) []Row {
	employees := b.Employees()
	rows := make([]Row, 0, len(employees))
	for _, employee := range employees {
		records := RecordsOn(employee, day, b.loc)
		rows = append(rows, Row{
			Employee: employee,
			Present:  len(records) > 0,
			Records:  records,
			CheckIn:  HasCheckedIn(employee, day, b.loc),
			CheckOut: HasCheckedOut(employee, day, b.loc),
		})
	}
	return rows
}
