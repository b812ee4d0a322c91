package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hrdash/internal/hrapi"
)

// ValidationError lists the required fields the submission left blank.
// It is raised before any network call is made.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Missing, ", "))
}

var requiredFields = []string{"name", "position", "department", "email", "employeeId", "hourlyRate"}

// Validate checks the roster form's required fields. Bank details, cost
// centre, PAN and the image stay optional.
func Validate(profile hrapi.NewEmployee) error {
	values := profile.FormValues()
	missing := make([]string, 0, len(requiredFields))
	for _, field := range requiredFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

type Backend interface {
	ListEmployees(ctx context.Context) ([]hrapi.Employee, error)
	CreateEmployee(ctx context.Context, profile hrapi.NewEmployee) (hrapi.Employee, error)
}

// Roster holds the employee profile view-model: the last-good snapshot of
// the employee collection plus the create path.
type Roster struct {
	backend Backend

	mu        sync.Mutex
	employees []hrapi.Employee
}

func New(backend Backend) *Roster {
	return &Roster{backend: backend}
}

// LoadAll refreshes the snapshot; a failure leaves the last successful
// snapshot in place.
func (r *Roster) LoadAll(ctx context.Context) error {
	employees, err := r.backend.ListEmployees(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.employees = employees
	r.mu.Unlock()
	return nil
}

func (r *Roster) Employees() []hrapi.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]hrapi.Employee, len(r.employees))
	copy(snapshot, r.employees)
	return snapshot
}

// Submit validates the form, short-circuiting before any network call
// when a required field is blank, then creates the profile upstream and
// appends the created record. On failure the caller keeps the submitted
// form untouched so operator input is not lost.
func (r *Roster) Submit(ctx context.Context, profile hrapi.NewEmployee) (hrapi.Employee, error) {
	if err := Validate(profile); err != nil {
		return hrapi.Employee{}, err
	}

	created, err := r.backend.CreateEmployee(ctx, profile)
	if err != nil {
		return hrapi.Employee{}, err
	}

	r.mu.Lock()
	r.employees = append(r.employees, created)
	r.mu.Unlock()
	return created, nil
}
