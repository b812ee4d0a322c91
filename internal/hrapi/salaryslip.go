package hrapi

import (
	"context"
	"encoding/json"
	"net/url"
)

// GenerateSalarySlip asks the upstream to compute one employee's slip for
// the given period filter. A 2xx response with an empty body yields
// (nil, nil): the upstream treats "no slip" and "slip" the same way and
// the caller owns the distinction.
func (c *Client) GenerateSalarySlip(ctx context.Context, employeeID string, filter Filter) (*SalarySlip, error) {
	path := "/api/employees/employeeId/salary-slip?filter=" + url.QueryEscape(string(filter))
	payload, err := c.postJSON(ctx, path, map[string]string{"employeeId": employeeID})
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil, nil
	}

	var slip SalarySlip
	if err := json.Unmarshal(payload, &slip); err != nil {
		return nil, err
	}
	return &slip, nil
}
