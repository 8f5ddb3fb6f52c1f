package ingestion

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"nairapay/internal/domain/salary"
)

const validHeader = "Account Number,STAFF ID,Email,NAME,DEPARTMENT,JOB TITLE," +
	"ANNUAL GROSS PAY,START DATE,END DATE,Contract Type,Reimbursements," +
	"Other Deductions,VOLUNTARY_PENSION"

func TestParseBatchValidRows(t *testing.T) {
	input := validHeader + "\n" +
		"0123456789,EMP001,ada.obi@example.com,Ada Obi,Engineering,Engineer,1200000,2025-04-01,2025-04-30,Full Time,5000,1000,2000\n" +
		"9876543210,CON001,tunde.ade@example.com,Tunde Ade,Finance,Analyst,4000000,2025-04-14,2025-04-30,contract,,,\n"

	employees, rowErrs, err := ParseBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(employees) != 2 {
		t.Fatalf("employees = %d, want 2", len(employees))
	}

	first := employees[0]
	if first.StaffID != "EMP001" || first.AnnualGrossPay != 1_200_000 {
		t.Fatalf("first row parsed wrong: %+v", first)
	}
	if first.ContractType != salary.ContractFullTime {
		t.Fatalf("contract type = %q, want %q", first.ContractType, salary.ContractFullTime)
	}
	if !first.StartDate.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start date = %v", first.StartDate)
	}

	second := employees[1]
	if second.ContractType != salary.ContractContract {
		t.Fatalf("lowercase contract type not accepted: %q", second.ContractType)
	}
	if second.Reimbursements != 0 || second.OtherDeductions != 0 || second.VoluntaryPension != 0 {
		t.Fatalf("blank optional amounts should default to zero: %+v", second)
	}
}

func TestParseBatchMissingColumnsFatal(t *testing.T) {
	input := "STAFF ID,NAME\nEMP001,Ada Obi\n"

	_, _, err := ParseBatch(strings.NewReader(input))
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("err = %v, want ErrMissingColumns", err)
	}
}

func TestParseBatchCollectsRowErrors(t *testing.T) {
	input := validHeader + "\n" +
		"0123456789,EMP001,a@example.com,A,Eng,Dev,abc,2025-04-01,2025-04-30,Full Time,,,\n" +
		"0123456789,EMP002,b@example.com,B,Eng,Dev,1200000,2025-05-02,2025-04-30,Full Time,,,\n" +
		"0123456789,EMP003,no-at-sign,C,Eng,Dev,1200000,2025-04-01,2025-04-30,Intern,,,\n" +
		"0123456789,EMP004,d@example.com,D,Eng,Dev,1200000,2025-04-01,2025-04-30,Full Time,,,40000\n" +
		"0123456789,EMP005,e@example.com,E,Eng,Dev,1200000,2025-04-01,2025-04-30,Full Time,,,\n"

	employees, rowErrs, err := ParseBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}

	if len(employees) != 1 || employees[0].StaffID != "EMP005" {
		t.Fatalf("employees = %+v, want only EMP005", employees)
	}

	byRow := map[int][]string{}
	for _, re := range rowErrs {
		byRow[re.Row] = append(byRow[re.Row], re.Field)
	}

	if fields := byRow[1]; len(fields) != 1 || fields[0] != ColAnnualGrossPay {
		t.Fatalf("row 1 errors = %v, want gross pay", fields)
	}
	if fields := byRow[2]; len(fields) != 1 || fields[0] != ColStartDate {
		t.Fatalf("row 2 errors = %v, want date order", fields)
	}
	if fields := byRow[3]; len(fields) != 2 {
		t.Fatalf("row 3 errors = %v, want email and contract type", fields)
	}
	if fields := byRow[4]; len(fields) != 1 || fields[0] != ColVoluntaryPension {
		t.Fatalf("row 4 errors = %v, want voluntary pension cap", fields)
	}
	if len(byRow[5]) != 0 {
		t.Fatalf("row 5 should be clean: %v", byRow[5])
	}
}

func TestTemplateRoundTrips(t *testing.T) {
	now := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)

	employees, rowErrs, err := ParseBatch(bytes.NewReader(Template(now)))
	if err != nil {
		t.Fatalf("ParseBatch(Template): %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("template rows should validate: %v", rowErrs)
	}
	if len(employees) != 2 {
		t.Fatalf("employees = %d, want 2", len(employees))
	}
	if employees[1].ContractType != salary.ContractContract {
		t.Fatalf("second example should be contract staff: %+v", employees[1])
	}
}
