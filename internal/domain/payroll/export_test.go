package payroll

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"nairapay/internal/domain/salary"
)

func sampleResult(t *testing.T) salary.Result {
	t.Helper()
	calc, err := salary.NewCalculator(salary.DefaultComponents())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	result, err := calc.Calculate(salary.Employee{
		AccountNumber:  "0123456789",
		StaffID:        "EMP250001",
		Email:          "ada.obi@example.com",
		Name:           "Ada Obi",
		Department:     "Engineering",
		JobTitle:       "Engineer",
		AnnualGrossPay: 1_200_000,
		ContractType:   salary.ContractFullTime,
		StartDate:      time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return result
}

func TestRegisterCSV(t *testing.T) {
	records := []ResultRecord{{ID: "r1", Result: sampleResult(t)}}

	rows, err := csv.NewReader(bytes.NewReader(RegisterCSV(records))).ReadAll()
	if err != nil {
		t.Fatalf("parse register: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one", len(rows))
	}
	want := []string{"EMP250001", "Ada Obi", "0123456789", "88220.00"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Fatalf("register cell %d = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestResultsCSV(t *testing.T) {
	records := []ResultRecord{{ID: "r1", Result: sampleResult(t)}}

	rows, err := csv.NewReader(bytes.NewReader(ResultsCSV(records))).ReadAll()
	if err != nil {
		t.Fatalf("parse results: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one", len(rows))
	}
	header, data := rows[0], rows[1]
	if len(header) != len(data) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(data))
	}

	byColumn := map[string]string{}
	for i, name := range header {
		byColumn[name] = data[i]
	}
	checks := map[string]string{
		"STAFF ID":      "EMP250001",
		"MONTHLY GROSS": "100000.00",
		"BASIC":         "30000.00",
		"PAYE":          "5780.00",
		"NET PAY":       "88220.00",
		"TAX RELIEF":    "41466.67",
	}
	for col, want := range checks {
		if byColumn[col] != want {
			t.Fatalf("%s = %q, want %q", col, byColumn[col], want)
		}
	}
}

func TestRenderPayslip(t *testing.T) {
	content, err := RenderPayslip(sampleResult(t))
	if err != nil {
		t.Fatalf("RenderPayslip: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Fatalf("payslip does not start with a PDF header")
	}
	if len(content) < 500 {
		t.Fatalf("payslip suspiciously small: %d bytes", len(content))
	}
}

func TestPayslipFilename(t *testing.T) {
	got := PayslipFilename(sampleResult(t))
	if got != "EMP250001_202504_payslip.pdf" {
		t.Fatalf("filename = %q", got)
	}
	if strings.Contains(got, " ") {
		t.Fatalf("filename contains spaces: %q", got)
	}
}
