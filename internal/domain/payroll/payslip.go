package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"nairapay/internal/domain/salary"
)

// earningsOrder fixes the payslip line order regardless of component map
// iteration order.
var earningsOrder = []string{
	salary.ComponentBasic,
	salary.ComponentHousing,
	salary.ComponentTransport,
	salary.ComponentUtility,
	salary.ComponentMeal,
	salary.ComponentClothing,
}

var earningsLabels = map[string]string{
	salary.ComponentBasic:     "Basic",
	salary.ComponentHousing:   "Housing",
	salary.ComponentTransport: "Transport",
	salary.ComponentUtility:   "Utility",
	salary.ComponentMeal:      "Meal",
	salary.ComponentClothing:  "Clothing",
}

func naira(amount float64) string {
	return fmt.Sprintf("NGN %.2f", amount)
}

// RenderPayslip produces the payslip PDF for one calculated result. It is a
// pure function of the result so it can be rendered again at any time.
func RenderPayslip(result salary.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	line := func(label, value string) {
		pdf.Cell(60, 6, label)
		pdf.Cell(0, 6, value)
		pdf.Ln(6)
	}
	line("Employee Name", result.Name)
	line("Staff ID", result.StaffID)
	line("Department", result.Department)
	line("Job Title", result.JobTitle)
	line("Pay Period", fmt.Sprintf("%s to %s",
		result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02")))
	pdf.Ln(4)

	amountRow := func(label string, amount float64) {
		pdf.Cell(120, 6, label)
		pdf.CellFormat(0, 6, naira(amount), "", 1, "R", false, 0, "")
	}
	sectionHeader := func(title string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(120, 7, title)
		pdf.CellFormat(0, 7, "Amount", "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}

	sectionHeader("Earnings")
	for _, name := range earningsOrder {
		amountRow(earningsLabels[name], result.Components[name])
	}
	if result.Reimbursements > 0 {
		pdf.SetTextColor(128, 128, 128)
		amountRow("Reimbursements", result.Reimbursements)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetFont("Helvetica", "B", 10)
	amountRow("Total Earnings (Gross)", result.ProratedMonthlyGross+result.Reimbursements)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(4)

	sectionHeader("Statutory Deductions")
	amountRow("Pension (Employee 8%)", result.Pension.Employee)
	// Shown for information only; the employer share never reduces net pay.
	pdf.SetTextColor(128, 128, 128)
	amountRow("Pension (Employer) - Not deducted", result.Pension.Employer)
	pdf.SetTextColor(0, 0, 0)
	if result.Pension.Voluntary > 0 {
		amountRow("Pension (Voluntary)", result.Pension.Voluntary)
	}
	amountRow("PAYE (Tax)", result.PAYE)
	pdf.Ln(4)

	sectionHeader("Salary Deduction")
	amountRow("Other Deductions", result.OtherDeductions)
	pdf.SetFont("Helvetica", "B", 10)
	amountRow("Total Deductions", result.TotalDeductions)
	pdf.Ln(4)

	pdf.SetFillColor(102, 0, 153)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 10, "Salary Payout for "+result.EndDate.Format("January"), "", 0, "L", true, 0, "")
	pdf.CellFormat(0, 10, naira(result.NetPay), "", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Ln(2)
	pdf.Cell(0, 5, "Salary Payout = Total Earnings (Gross) - Total Deductions")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PayslipFilename is <staff id>_<yyyymm>_payslip.pdf, keyed to the pay
// period's end month.
func PayslipFilename(result salary.Result) string {
	return fmt.Sprintf("%s_%s_payslip.pdf", result.StaffID, result.EndDate.Format("200601"))
}
