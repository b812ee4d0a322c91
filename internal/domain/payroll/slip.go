package payroll

import (
	"context"
	"errors"
	"log"
	"sync"

	"hrdash/internal/hrapi"
)

// ErrNoSlip means an export was requested before any slip was generated.
var ErrNoSlip = errors.New("no salary slip generated yet")

// SlipDialog models the generate-slip sub-dialog: it holds at most one
// generated slip, regenerated on demand and never persisted.
type SlipDialog struct {
	backend Backend

	mu   sync.Mutex
	slip *hrapi.SalarySlip
}

func NewSlipDialog(backend Backend) *SlipDialog {
	return &SlipDialog{backend: backend}
}

// Generate fetches a fresh slip for the employee and filter. An empty
// upstream body yields (nil, nil) and clears the held slip: the dialog
// closes without an error notification. The distinct log line keeps the
// branch observable.
func (d *SlipDialog) Generate(ctx context.Context, employeeID string, filter hrapi.Filter) (*hrapi.SalarySlip, error) {
	if !filter.Valid() {
		return nil, ErrBadFilter
	}

	slip, err := d.backend.GenerateSalarySlip(ctx, employeeID, filter)
	if err != nil {
		d.mu.Lock()
		d.slip = nil
		d.mu.Unlock()
		return nil, err
	}

	if slip == nil {
		log.Printf("salary slip response empty for employee %s filter %s; closing without a slip", employeeID, filter)
	}

	d.mu.Lock()
	d.slip = slip
	d.mu.Unlock()
	return slip, nil
}

// Current returns the held slip, or nil when none was generated.
func (d *SlipDialog) Current() *hrapi.SalarySlip {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slip
}

// Export hands the held slip to render; without one it is a no-op
// returning ErrNoSlip.
func (d *SlipDialog) Export(render func(hrapi.SalarySlip) ([]byte, error)) ([]byte, error) {
	slip := d.Current()
	if slip == nil {
		log.Print("salary slip export requested with no slip generated")
		return nil, ErrNoSlip
	}
	return render(*slip)
}
