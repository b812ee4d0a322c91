package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"hrdash/internal/domain/payroll"
)

// SpreadsheetFilename is the download name for the payroll workbook.
const SpreadsheetFilename = "EmployeeSalaryRecords.xlsx"

const salarySheet = "Employee Salary Records"

var salaryHeaders = []string{
	"Name",
	"Employee ID",
	"Email",
	"Position",
	"Department",
	"Working Days",
	"Leave Days",
	"Total Working Hours",
	"Total Salary",
	"PF Amount",
	"Gross Salary",
}

// SalaryWorkbook serializes the report rows into an xlsx workbook with a
// single styled sheet.
func SalaryWorkbook(rows []payroll.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(salarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range salaryHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(salarySheet, cell, header); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(salaryHeaders), 1)
	if err := f.SetCellStyle(salarySheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []any{
			row.Name,
			row.EmployeeID,
			row.Email,
			row.Position,
			row.Department,
			row.WorkingDays,
			row.LeaveDays,
			row.TotalHours,
			row.Salary,
			row.PFAmount,
			row.GrossSalary,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(salarySheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(salarySheet, "A", "E", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(salarySheet, "F", "K", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
