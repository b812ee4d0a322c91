package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
)

// ListEmployees fetches the roster without attendance scoping.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.getJSON(ctx, "/api/employees", &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// CreateEmployee submits a new profile as multipart/form-data. All text
// fields are written as form values; the optional image travels as a file
// part named employeeImage.
func (c *Client) CreateEmployee(ctx context.Context, profile NewEmployee) (Employee, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range profile.FormValues() {
		if err := writer.WriteField(field, value); err != nil {
			return Employee{}, err
		}
	}

	if len(profile.Image) > 0 {
		name := profile.ImageName
		if name == "" {
			name = "employee-image"
		}
		part, err := writer.CreateFormFile("employeeImage", name)
		if err != nil {
			return Employee{}, err
		}
		if _, err := part.Write(profile.Image); err != nil {
			return Employee{}, err
		}
	}

	if err := writer.Close(); err != nil {
		return Employee{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/employees/", &buf)
	if err != nil {
		return Employee{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	payload, err := c.do(req)
	if err != nil {
		return Employee{}, err
	}

	var created Employee
	if err := json.Unmarshal(payload, &created); err != nil {
		return Employee{}, err
	}
	return created, nil
}

// CreateEmployeeJSON submits a minimal profile as JSON. The attendance
// board's add dialog uses this path; the full roster form goes through
// CreateEmployee.
func (c *Client) CreateEmployeeJSON(ctx context.Context, profile Employee) (Employee, error) {
	payload, err := c.postJSON(ctx, "/api/employees/", map[string]string{
		"employeeId": profile.EmployeeID,
		"name":       profile.Name,
		"email":      profile.Email,
		"position":   profile.Position,
		"department": profile.Department,
	})
	if err != nil {
		return Employee{}, err
	}

	var created Employee
	if err := json.Unmarshal(payload, &created); err != nil {
		return Employee{}, err
	}
	return created, nil
}
