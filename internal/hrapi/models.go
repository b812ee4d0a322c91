package hrapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp tolerates the date-time shapes the HR API is known to emit:
// RFC3339 with or without fractional seconds, and bare YYYY-MM-DD.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// AttendanceRecord is owned by exactly one employee; the API embeds it on
// the employee object rather than exposing it as its own resource.
type AttendanceRecord struct {
	ID         string     `json:"_id,omitempty"`
	Date       Timestamp  `json:"date"`
	CheckIn    *Timestamp `json:"checkIn,omitempty"`
	CheckOut   *Timestamp `json:"checkOut,omitempty"`
	TotalHours *float64   `json:"totalHours,omitempty"`
}

type Employee struct {
	ID            string  `json:"_id,omitempty"`
	EmployeeID    string  `json:"employeeId"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Position      string  `json:"position"`
	Department    string  `json:"department"`
	HourlyRate    float64 `json:"hourlyRate,omitempty"`
	BankCode      string  `json:"bankCode,omitempty"`
	BranchName    string  `json:"branchName,omitempty"`
	BankName      string  `json:"bankName,omitempty"`
	BankBranch    string  `json:"bankBranch,omitempty"`
	BankAccountNo string  `json:"bankAccountNumber,omitempty"`
	CostCentre    string  `json:"costCentre,omitempty"`
	PANNumber     string  `json:"panNumber,omitempty"`
	EmployeeImage string  `json:"employeeImage,omitempty"`

	// Payroll summary, computed upstream and only displayed here.
	WorkingDays int     `json:"workingDays,omitempty"`
	LeaveDays   int     `json:"leaveDays,omitempty"`
	Salary      float64 `json:"salary,omitempty"`
	PFAmount    float64 `json:"pfAmount,omitempty"`
	GrossSalary float64 `json:"grossSalary,omitempty"`

	AttendanceRecords []AttendanceRecord `json:"attendanceRecords,omitempty"`
}

type BankDetails struct {
	BankCode          string `json:"bankCode"`
	BranchName        string `json:"branchName"`
	BankName          string `json:"bankName"`
	BankBranch        string `json:"bankBranch"`
	BankAccountNumber string `json:"bankAccountNumber"`
}

type AdditionalDetails struct {
	CostCentre    string `json:"costCentre"`
	CCDescription string `json:"ccDescription"`
	Grade         string `json:"grade"`
	PANNumber     string `json:"panNumber"`
	PayPeriod     string `json:"payPeriod"`
}

type SlipPayments struct {
	BasicSalary   float64 `json:"basicSalary"`
	TotalPayments float64 `json:"totalPayments"`
}

type SlipDeductions struct {
	ProvidentFund   float64 `json:"providentFund"`
	TotalDeductions float64 `json:"totalDeductions"`
}

// SalarySlip is a read-only snapshot for one employee and one period
// filter; it is regenerated on demand and never persisted here.
type SalarySlip struct {
	EmployeeID        string            `json:"employeeId"`
	Name              string            `json:"name"`
	SlipNumber        string            `json:"slipNumber"`
	BankDetails       BankDetails       `json:"bankDetails"`
	AdditionalDetails AdditionalDetails `json:"additionalDetails"`
	Payments          SlipPayments      `json:"payments"`
	Deductions        SlipDeductions    `json:"deductions"`
	NetSalary         float64           `json:"netSalary"`
}

// NewEmployee carries the roster submission, including the optional
// profile image sent as a multipart file part.
type NewEmployee struct {
	Name          string
	Position      string
	Department    string
	Email         string
	EmployeeID    string
	HourlyRate    string
	BankCode      string
	BranchName    string
	BankName      string
	BankBranch    string
	BankAccountNo string
	CostCentre    string
	PANNumber     string

	ImageName string
	Image     []byte
}

// FormValues returns the text fields keyed the way the upstream API
// expects them in the multipart body.
func (n NewEmployee) FormValues() map[string]string {
	return map[string]string{
		"name":              n.Name,
		"position":          n.Position,
		"department":        n.Department,
		"email":             n.Email,
		"employeeId":        n.EmployeeID,
		"hourlyRate":        n.HourlyRate,
		"bankCode":          n.BankCode,
		"branchName":        n.BranchName,
		"bankName":          n.BankName,
		"bankBranch":        n.BankBranch,
		"bankAccountNumber": n.BankAccountNo,
		"costCentre":        n.CostCentre,
		"panNumber":         n.PANNumber,
	}
}

type Filter string

const (
	FilterCurrentMonth Filter = "currentMonth"
	FilterLastMonth    Filter = "lastMonth"
)

func (f Filter) Valid() bool {
	return f == FilterCurrentMonth || f == FilterLastMonth
}
