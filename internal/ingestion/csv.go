// Package ingestion parses the payroll batch CSV into employee records.
// Parsing collects every row's problems instead of failing on the first:
// a batch with some bad rows still yields the good ones.
package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"nairapay/internal/domain/salary"
)

// Column names as they appear in the upload template. The header row must
// contain every one of these, byte for byte.
const (
	ColAccountNumber    = "Account Number"
	ColStaffID          = "STAFF ID"
	ColEmail            = "Email"
	ColName             = "NAME"
	ColDepartment       = "DEPARTMENT"
	ColJobTitle         = "JOB TITLE"
	ColAnnualGrossPay   = "ANNUAL GROSS PAY"
	ColStartDate        = "START DATE"
	ColEndDate          = "END DATE"
	ColContractType     = "Contract Type"
	ColReimbursements   = "Reimbursements"
	ColOtherDeductions  = "Other Deductions"
	ColVoluntaryPension = "VOLUNTARY_PENSION"
)

// RequiredColumns lists the template columns in template order.
var RequiredColumns = []string{
	ColAccountNumber,
	ColStaffID,
	ColEmail,
	ColName,
	ColDepartment,
	ColJobTitle,
	ColAnnualGrossPay,
	ColStartDate,
	ColEndDate,
	ColContractType,
	ColReimbursements,
	ColOtherDeductions,
	ColVoluntaryPension,
}

const dateLayout = "2006-01-02"

// ErrMissingColumns aborts the whole batch: without the full header there is
// no way to interpret any row.
var ErrMissingColumns = errors.New("missing required columns")

// RowError describes one validation failure on one data row. Row is the
// 1-based data row number, not counting the header.
type RowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Field, e.Reason)
}

// ParseBatch reads the upload CSV and returns the rows that validated
// cleanly plus a row error for every problem found. Only a missing header
// column or an unreadable stream returns a non-nil error.
func ParseBatch(r io.Reader) ([]salary.Employee, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var employees []salary.Employee
	var rowErrs []RowError
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		row++

		emp, errs := parseRow(record, index, row)
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}
		employees = append(employees, emp)
	}

	return employees, rowErrs, nil
}

func parseRow(record []string, index map[string]int, row int) (salary.Employee, []RowError) {
	var errs []RowError

	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	fail := func(col, reason string) {
		errs = append(errs, RowError{Row: row, Field: col, Reason: reason})
	}

	emp := salary.Employee{
		AccountNumber: cell(ColAccountNumber),
		StaffID:       cell(ColStaffID),
		Email:         cell(ColEmail),
		Name:          cell(ColName),
		Department:    cell(ColDepartment),
		JobTitle:      cell(ColJobTitle),
	}

	if emp.Email != "" && !strings.Contains(emp.Email, "@") {
		fail(ColEmail, "not a valid email address")
	}

	parseAmount := func(col string, optional bool) (float64, bool) {
		raw := cell(col)
		if raw == "" {
			if optional {
				return 0, true
			}
			fail(col, "required")
			return 0, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fail(col, "not a number")
			return 0, false
		}
		if v < 0 {
			fail(col, "must not be negative")
			return 0, false
		}
		return v, true
	}

	gross, grossOK := parseAmount(ColAnnualGrossPay, false)
	emp.AnnualGrossPay = gross
	emp.Reimbursements, _ = parseAmount(ColReimbursements, true)
	emp.OtherDeductions, _ = parseAmount(ColOtherDeductions, true)
	voluntary, voluntaryOK := parseAmount(ColVoluntaryPension, true)
	emp.VoluntaryPension = voluntary

	start, err := time.Parse(dateLayout, cell(ColStartDate))
	if err != nil {
		fail(ColStartDate, "expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, cell(ColEndDate))
	if err != nil {
		fail(ColEndDate, "expected YYYY-MM-DD")
	}
	emp.StartDate = start
	emp.EndDate = end
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		fail(ColStartDate, "must be on or before "+ColEndDate)
	}

	contractType, err := salary.ParseContractType(cell(ColContractType))
	if err != nil {
		fail(ColContractType, "must be Full Time or Contract")
	}
	emp.ContractType = contractType

	if grossOK && voluntaryOK && gross > 0 {
		monthly := salary.Round2(gross / 12)
		if voluntary > monthly*salary.VoluntaryPensionCap {
			fail(ColVoluntaryPension, "exceeds one third of monthly gross pay")
		}
	}

	return emp, errs
}
