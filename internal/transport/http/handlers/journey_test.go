package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hrdash/internal/app/server"
	"hrdash/internal/hrapi"
	"hrdash/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// fakeHRAPI mimics the remote attendance/payroll backend closely enough
// for the dashboard journey: employees with embedded attendance records,
// check-in/out commands, and slip generation.
type fakeHRAPI struct {
	mu        sync.Mutex
	employees []hrapi.Employee
	slips     map[string]*hrapi.SalarySlip

	checkInCalls  int
	checkOutCalls int
	createCalls   int
}

func (f *fakeHRAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/attendance/attendanceRecords/all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.employees)
	})

	mux.HandleFunc("POST /api/attendance/checkin", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.checkInCalls++
		var body struct {
			EmployeeID string `json:"employeeId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		now := hrapi.Timestamp{Time: time.Now()}
		for i := range f.employees {
			if f.employees[i].EmployeeID == body.EmployeeID {
				f.employees[i].AttendanceRecords = append(f.employees[i].AttendanceRecords, hrapi.AttendanceRecord{
					Date:    now,
					CheckIn: &now,
				})
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "employee not found"})
	})

	mux.HandleFunc("POST /api/attendance/checkout", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.checkOutCalls++
		var body struct {
			EmployeeID string `json:"employeeId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		now := hrapi.Timestamp{Time: time.Now()}
		for i := range f.employees {
			if f.employees[i].EmployeeID != body.EmployeeID {
				continue
			}
			records := f.employees[i].AttendanceRecords
			if len(records) > 0 {
				records[len(records)-1].CheckOut = &now
			}
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/employees", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.employees)
	})

	mux.HandleFunc("POST /api/employees/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.createCalls++
		created := hrapi.Employee{ID: fmt.Sprintf("id-%d", f.createCalls)}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			_ = r.ParseMultipartForm(10 << 20)
			created.EmployeeID = r.FormValue("employeeId")
			created.Name = r.FormValue("name")
			created.Email = r.FormValue("email")
			created.Position = r.FormValue("position")
			created.Department = r.FormValue("department")
		} else {
			_ = json.NewDecoder(r.Body).Decode(&created)
		}
		f.employees = append(f.employees, created)
		_ = json.NewEncoder(w).Encode(created)
	})

	mux.HandleFunc("POST /api/employees/employeeId/salary-slip", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var body struct {
			EmployeeID string `json:"employeeId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		slip, ok := f.slips[body.EmployeeID]
		if !ok || slip == nil {
			// Empty 200 body: the documented "no slip" shape.
			w.WriteHeader(http.StatusOK)
			return
		}
		_ = json.NewEncoder(w).Encode(slip)
	})

	return mux
}

func newDashboard(t *testing.T, upstream *fakeHRAPI) *httptest.Server {
	t.Helper()

	backend := httptest.NewServer(upstream.handler())
	t.Cleanup(backend.Close)

	app, err := server.New(config.Config{
		Addr:               ":0",
		Environment:        "test",
		HRAPIBaseURL:       backend.URL,
		HRAPIToken:         "test-token",
		HRAPITimeout:       5 * time.Second,
		CORSAllowedOrigins: []string{"*"},
	})
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	dashboard := httptest.NewServer(app.Router)
	t.Cleanup(dashboard.Close)
	return dashboard
}

func getEnvelope(t *testing.T, url string) envelope {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return body
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, envelope) {
	t.Helper()
	encoded, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return resp, body
}

func TestAttendanceJourney(t *testing.T) {
	upstream := &fakeHRAPI{
		employees: []hrapi.Employee{
			{ID: "id-1", EmployeeID: "E1", Name: "Asha", Position: "Engineer", Department: "R&D", Email: "asha@example.com"},
		},
		slips: map[string]*hrapi.SalarySlip{},
	}
	dashboard := newDashboard(t, upstream)

	// Board starts with one absent employee.
	body := getEnvelope(t, dashboard.URL+"/api/v1/attendance")
	var board struct {
		Rows []struct {
			Present    bool `json:"present"`
			CheckedIn  bool `json:"checkedIn"`
			CheckedOut bool `json:"checkedOut"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body.Data, &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if len(board.Rows) != 1 || board.Rows[0].Present {
		t.Fatalf("expected one absent employee, got %+v", board.Rows)
	}

	// First check-in goes upstream and is reflected after the re-fetch.
	resp, _ := postJSON(t, dashboard.URL+"/api/v1/attendance/check-in", map[string]string{"employeeId": "E1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 check-in, got %d", resp.StatusCode)
	}
	if upstream.checkInCalls != 1 {
		t.Fatalf("expected one upstream check-in, got %d", upstream.checkInCalls)
	}

	body = getEnvelope(t, dashboard.URL+"/api/v1/attendance")
	if err := json.Unmarshal(body.Data, &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if !board.Rows[0].Present || !board.Rows[0].CheckedIn {
		t.Fatalf("expected present and checked in, got %+v", board.Rows[0])
	}

	// Second same-day check-in is rejected locally, no upstream call.
	resp, env := postJSON(t, dashboard.URL+"/api/v1/attendance/check-in", map[string]string{"employeeId": "E1"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "already_checked_in" {
		t.Fatalf("expected already_checked_in, got %+v", env.Error)
	}
	if upstream.checkInCalls != 1 {
		t.Fatalf("duplicate check-in must not reach upstream, calls=%d", upstream.checkInCalls)
	}

	// Check-out works once, then is guarded too.
	resp, _ = postJSON(t, dashboard.URL+"/api/v1/attendance/check-out", map[string]string{"employeeId": "E1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 check-out, got %d", resp.StatusCode)
	}
	resp, env = postJSON(t, dashboard.URL+"/api/v1/attendance/check-out", map[string]string{"employeeId": "E1"})
	if resp.StatusCode != http.StatusConflict || env.Error == nil || env.Error.Code != "already_checked_out" {
		t.Fatalf("expected already_checked_out conflict, got %d %+v", resp.StatusCode, env.Error)
	}
	if upstream.checkOutCalls != 1 {
		t.Fatalf("expected one upstream check-out, got %d", upstream.checkOutCalls)
	}
}

func TestRosterJourney(t *testing.T) {
	upstream := &fakeHRAPI{slips: map[string]*hrapi.SalarySlip{}}
	dashboard := newDashboard(t, upstream)

	// A blank required field never reaches the upstream.
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	_ = writer.WriteField("name", "Ravi")
	_ = writer.WriteField("position", "Analyst")
	_ = writer.Close()

	resp, err := http.Post(dashboard.URL+"/api/v1/employees", writer.FormDataContentType(), &form)
	if err != nil {
		t.Fatalf("POST employees: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 validation failure, got %d", resp.StatusCode)
	}
	if upstream.createCalls != 0 {
		t.Fatalf("validation failure must not reach upstream, calls=%d", upstream.createCalls)
	}

	// A complete submission, image included, is created and listed.
	form.Reset()
	writer = multipart.NewWriter(&form)
	for field, value := range map[string]string{
		"name":       "Ravi",
		"position":   "Analyst",
		"department": "Finance",
		"email":      "ravi@example.com",
		"employeeId": "E2",
		"hourlyRate": "35",
	} {
		_ = writer.WriteField(field, value)
	}
	image, _ := writer.CreateFormFile("employeeImage", "ravi.png")
	_, _ = image.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	_ = writer.Close()

	resp, err = http.Post(dashboard.URL+"/api/v1/employees", writer.FormDataContentType(), &form)
	if err != nil {
		t.Fatalf("POST employees: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if upstream.createCalls != 1 {
		t.Fatalf("expected one upstream create, got %d", upstream.createCalls)
	}

	body := getEnvelope(t, dashboard.URL+"/api/v1/employees")
	var employees []hrapi.Employee
	if err := json.Unmarshal(body.Data, &employees); err != nil {
		t.Fatalf("decode employees: %v", err)
	}
	if len(employees) != 1 || employees[0].EmployeeID != "E2" {
		t.Fatalf("unexpected roster %+v", employees)
	}
}

func TestPayrollJourney(t *testing.T) {
	hours := 5.25
	upstream := &fakeHRAPI{
		employees: []hrapi.Employee{{
			ID:          "id-1",
			EmployeeID:  "E1",
			Name:        "Asha",
			Email:       "asha@example.com",
			Position:    "Engineer",
			Department:  "R&D",
			WorkingDays: 20,
			LeaveDays:   2,
			Salary:      1000,
			PFAmount:    120,
			GrossSalary: 1120,
			AttendanceRecords: []hrapi.AttendanceRecord{
				{Date: hrapi.Timestamp{Time: time.Now()}, TotalHours: &hours},
			},
		}},
		slips: map[string]*hrapi.SalarySlip{
			"E1": {
				EmployeeID: "E1",
				Name:       "Asha",
				SlipNumber: "SL-100",
				Payments:   hrapi.SlipPayments{BasicSalary: 1000, TotalPayments: 1000},
				Deductions: hrapi.SlipDeductions{ProvidentFund: 120, TotalDeductions: 120},
				NetSalary:  880,
			},
		},
	}
	dashboard := newDashboard(t, upstream)

	body := getEnvelope(t, dashboard.URL+"/api/v1/payroll?filter=lastMonth")
	var report struct {
		Filter string `json:"filter"`
		Rows   []struct {
			TotalHours string `json:"totalHours"`
			Salary     string `json:"salary"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Filter != "lastMonth" {
		t.Fatalf("expected lastMonth filter, got %s", report.Filter)
	}
	if len(report.Rows) != 1 || report.Rows[0].TotalHours != "5.25" || report.Rows[0].Salary != "1000.00" {
		t.Fatalf("unexpected rows %+v", report.Rows)
	}

	// Unknown filter fails locally.
	resp, err := http.Get(dashboard.URL + "/api/v1/payroll?filter=thisYear")
	if err != nil {
		t.Fatalf("GET payroll: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 bad filter, got %d", resp.StatusCode)
	}

	// Spreadsheet export carries the workbook attachment.
	resp, err = http.Get(dashboard.URL + "/api/v1/payroll/export")
	if err != nil {
		t.Fatalf("GET export: %v", err)
	}
	workbook, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 export, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=EmployeeSalaryRecords.xlsx" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if len(workbook) == 0 || !bytes.Equal(workbook[:2], []byte("PK")) {
		t.Fatal("expected a zip-shaped xlsx payload")
	}

	// PDF export before any slip generation is a 404 no-op.
	resp, err = http.Get(dashboard.URL + "/api/v1/payroll/salary-slip/export")
	if err != nil {
		t.Fatalf("GET slip export: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before generation, got %d", resp.StatusCode)
	}

	// Unknown employee yields the silent empty-body close: 204, no error.
	resp, _ = postJSON(t, dashboard.URL+"/api/v1/payroll/salary-slip?filter=lastMonth", map[string]string{"employeeId": "ghost"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for empty slip body, got %d", resp.StatusCode)
	}

	// Known employee renders and exports.
	resp, env := postJSON(t, dashboard.URL+"/api/v1/payroll/salary-slip?filter=currentMonth", map[string]string{"employeeId": "E1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 slip, got %d", resp.StatusCode)
	}
	var slip hrapi.SalarySlip
	if err := json.Unmarshal(env.Data, &slip); err != nil {
		t.Fatalf("decode slip: %v", err)
	}
	if slip.SlipNumber != "SL-100" || slip.NetSalary != 880 {
		t.Fatalf("unexpected slip %+v", slip)
	}

	resp, err = http.Get(dashboard.URL + "/api/v1/payroll/salary-slip/export")
	if err != nil {
		t.Fatalf("GET slip export: %v", err)
	}
	document, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 pdf, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=salary_slip.pdf" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}
