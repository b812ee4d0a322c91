package hrapi

import (
	"context"
	"net/url"
)

// ListAttendance fetches every employee with embedded attendance records.
// An empty filter asks for the unscoped collection; a period filter scopes
// the payroll summary fields to that reporting window.
func (c *Client) ListAttendance(ctx context.Context, filter Filter) ([]Employee, error) {
	path := "/api/attendance/attendanceRecords/all"
	if filter != "" {
		path += "?filter=" + url.QueryEscape(string(filter))
	}

	var employees []Employee
	if err := c.getJSON(ctx, path, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// CheckIn records an arrival for the given employee code. The response
// body carries nothing the caller may use; derived state is re-fetched.
func (c *Client) CheckIn(ctx context.Context, employeeID string) error {
	_, err := c.postJSON(ctx, "/api/attendance/checkin", map[string]string{"employeeId": employeeID})
	return err
}

// CheckOut records a departure for the given employee code.
func (c *Client) CheckOut(ctx context.Context, employeeID string) error {
	_, err := c.postJSON(ctx, "/api/attendance/checkout", map[string]string{"employeeId": employeeID})
	return err
}
