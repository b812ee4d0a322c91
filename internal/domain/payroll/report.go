package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hrdash/internal/hrapi"
)

var ErrBadFilter = errors.New("filter must be currentMonth or lastMonth")

type Backend interface {
	ListAttendance(ctx context.Context, filter hrapi.Filter) ([]hrapi.Employee, error)
	GenerateSalarySlip(ctx context.Context, employeeID string, filter hrapi.Filter) (*hrapi.SalarySlip, error)
}

// Report holds the payroll view-model for one period filter. Salary, PF
// and gross figures arrive pre-computed from the backend; the only
// aggregation done here is the total-hours sum.
type Report struct {
	backend Backend

	mu        sync.Mutex
	filter    hrapi.Filter
	employees []hrapi.Employee
}

func NewReport(backend Backend) *Report {
	return &Report{backend: backend, filter: hrapi.FilterCurrentMonth}
}

// LoadForFilter re-fetches the report whenever the filter changes (or on
// demand for the current one). A failed fetch keeps the previous rows and
// the previous filter.
func (r *Report) LoadForFilter(ctx context.Context, filter hrapi.Filter) error {
	if !filter.Valid() {
		return ErrBadFilter
	}

	employees, err := r.backend.ListAttendance(ctx, filter)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.filter = filter
	r.employees = employees
	r.mu.Unlock()
	return nil
}

func (r *Report) Employees() []hrapi.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]hrapi.Employee, len(r.employees))
	copy(snapshot, r.employees)
	return snapshot
}

func (r *Report) Filter() hrapi.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter
}

// TotalHours sums the attendance records' totalHours, treating a missing
// figure as zero, formatted to exactly two decimal places.
func TotalHours(e hrapi.Employee) string {
	var total float64
	for _, record := range e.AttendanceRecords {
		if record.TotalHours != nil {
			total += *record.TotalHours
		}
	}
	return fmt.Sprintf("%.2f", total)
}

// Row is one flat payroll export line. Currency figures are already
// formatted to two decimals.
type Row struct {
	Name        string `json:"name"`
	EmployeeID  string `json:"employeeId"`
	Email       string `json:"email"`
	Position    string `json:"position"`
	Department  string `json:"department"`
	WorkingDays int    `json:"workingDays"`
	LeaveDays   int    `json:"leaveDays"`
	TotalHours  string `json:"totalHours"`
	Salary      string `json:"salary"`
	PFAmount    string `json:"pfAmount"`
	GrossSalary string `json:"grossSalary"`
}

// Rows projects employees onto the flat report shape.
func Rows(employees []hrapi.Employee) []Row {
	rows := make([]Row, 0, len(employees))
	for _, employee := range employees {
		rows = append(rows, Row{
			Name:        employee.Name,
			EmployeeID:  employee.EmployeeID,
			Email:       employee.Email,
			Position:    employee.Position,
			Department:  employee.Department,
			WorkingDays: employee.WorkingDays,
			LeaveDays:   employee.LeaveDays,
			TotalHours:  TotalHours(employee),
			Salary:      fmt.Sprintf("%.2f", employee.Salary),
			PFAmount:    fmt.Sprintf("%.2f", employee.PFAmount),
			GrossSalary: fmt.Sprintf("%.2f", employee.GrossSalary),
		})
	}
	return rows
}

// Rows returns the current report projection.
func (r *Report) Rows() []Row {
	return Rows(r.Employees())
}
