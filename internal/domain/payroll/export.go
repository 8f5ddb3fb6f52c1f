package payroll

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"nairapay/internal/domain/salary"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RegisterCSV renders the bank payment register for a run: one line per
// employee with the account to credit and the net amount.
func RegisterCSV(records []ResultRecord) []byte {
	rows := [][]string{{"STAFF ID", "NAME", "Account Number", "NET PAY"}}
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Result.StaffID,
			rec.Result.Name,
			rec.Result.AccountNumber,
			money(rec.Result.NetPay),
		})
	}
	return writeCSV(rows)
}

// ResultsCSV renders the full calculation breakdown for a run.
func ResultsCSV(records []ResultRecord) []byte {
	rows := [][]string{{
		"STAFF ID", "NAME", "Email", "DEPARTMENT", "JOB TITLE", "Contract Type",
		"MONTHLY GROSS", "WORKING DAYS RATIO", "PRORATED GROSS",
		"BASIC", "TRANSPORT", "HOUSING", "UTILITY", "MEAL", "CLOTHING",
		"PENSION EMPLOYEE", "PENSION EMPLOYER", "PENSION VOLUNTARY",
		"CRA", "TAXABLE PAY", "PAYE",
		"OTHER DEDUCTIONS", "REIMBURSEMENTS", "TOTAL DEDUCTIONS",
		"NET PAY", "TAX RELIEF",
	}}
	for _, rec := range records {
		r := rec.Result
		rows = append(rows, []string{
			r.StaffID, r.Name, r.Email, r.Department, r.JobTitle, string(r.ContractType),
			money(r.MonthlyGross), money(r.WorkingDaysRatio), money(r.ProratedMonthlyGross),
			money(r.Components[salary.ComponentBasic]),
			money(r.Components[salary.ComponentTransport]),
			money(r.Components[salary.ComponentHousing]),
			money(r.Components[salary.ComponentUtility]),
			money(r.Components[salary.ComponentMeal]),
			money(r.Components[salary.ComponentClothing]),
			money(r.Pension.Employee), money(r.Pension.Employer), money(r.Pension.Voluntary),
			money(r.CRA), money(r.TaxablePay), money(r.PAYE),
			money(r.OtherDeductions), money(r.Reimbursements), money(r.TotalDeductions),
			money(r.NetPay), money(r.TaxRelief),
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) []byte {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	_ = writer.WriteAll(rows)
	return buf.Bytes()
}
