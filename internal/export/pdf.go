package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hrdash/internal/hrapi"
)

// SlipFilename is the download name for a rendered payslip.
const SlipFilename = "salary_slip.pdf"

// SalarySlipPDF renders the fixed payslip layout: identity and bank
// details up top, the payments/deductions breakdown in the middle, net
// salary at the bottom.
func SalarySlipPDF(slip hrapi.SalarySlip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	detail := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	detail("Name", slip.Name)
	detail("Employee Code", slip.EmployeeID)
	detail("Payslip No.", slip.SlipNumber)
	detail("Pay Period", slip.AdditionalDetails.PayPeriod)
	pdf.Ln(3)

	detail("Bank Code", slip.BankDetails.BankCode)
	detail("Bank Name", slip.BankDetails.BankName)
	detail("Branch Name", slip.BankDetails.BranchName)
	detail("Bank Branch", slip.BankDetails.BankBranch)
	detail("Bank A/C No.", slip.BankDetails.BankAccountNumber)
	pdf.Ln(3)

	detail("Cost Centre", slip.AdditionalDetails.CostCentre)
	detail("CC Description", slip.AdditionalDetails.CCDescription)
	detail("Grade", slip.AdditionalDetails.Grade)
	detail("PAN No.", slip.AdditionalDetails.PANNumber)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 8, "Payments", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "Deductions", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(60, 8, "Basic Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", slip.Payments.BasicSalary), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Provident Fund", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", slip.Deductions.ProvidentFund), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "Total Payments", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", slip.Payments.TotalPayments), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", slip.Deductions.TotalDeductions), "1", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Net Salary", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", slip.NetSalary), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
