package salary

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func mustCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultComponents())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return calc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fullTimeEmployee spans all of April 2025 (22 weekdays, ratio 1.00).
func fullTimeEmployee(annualGross float64) Employee {
	return Employee{
		StaffID:        "EMP250001",
		Name:           "Ada Obi",
		Email:          "ada.obi@example.com",
		AnnualGrossPay: annualGross,
		ContractType:   ContractFullTime,
		StartDate:      date(2025, time.April, 1),
		EndDate:        date(2025, time.April, 30),
	}
}

func TestCalculateFullMonth(t *testing.T) {
	calc := mustCalculator(t)

	result, err := calc.Calculate(fullTimeEmployee(1_200_000))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if result.MonthlyGross != 100_000.00 {
		t.Fatalf("monthly gross = %v, want 100000.00", result.MonthlyGross)
	}
	if result.WorkingDaysRatio != 1.00 {
		t.Fatalf("ratio = %v, want 1.00", result.WorkingDaysRatio)
	}
	if result.ProratedMonthlyGross != 100_000.00 {
		t.Fatalf("prorated = %v, want 100000.00", result.ProratedMonthlyGross)
	}

	wantComponents := map[string]float64{
		ComponentBasic:     30_000.00,
		ComponentTransport: 25_000.00,
		ComponentHousing:   20_000.00,
		ComponentUtility:   15_000.00,
		ComponentMeal:      5_000.00,
		ComponentClothing:  5_000.00,
	}
	if !reflect.DeepEqual(result.Components, wantComponents) {
		t.Fatalf("components = %v, want %v", result.Components, wantComponents)
	}

	if result.Pension.Employee != 6_000.00 {
		t.Fatalf("employee pension = %v, want 6000.00", result.Pension.Employee)
	}
	if result.Pension.Employer != 7_500.00 {
		t.Fatalf("employer pension = %v, want 7500.00", result.Pension.Employer)
	}
	if result.CRA != 35_466.67 {
		t.Fatalf("CRA = %v, want 35466.67", result.CRA)
	}
	if result.TaxablePay != 58_533.33 {
		t.Fatalf("taxable pay = %v, want 58533.33", result.TaxablePay)
	}
	if result.PAYE != 5_780.00 {
		t.Fatalf("PAYE = %v, want 5780.00", result.PAYE)
	}
	if result.TotalDeductions != 11_780.00 {
		t.Fatalf("total deductions = %v, want 11780.00", result.TotalDeductions)
	}
	if result.NetPay != 88_220.00 {
		t.Fatalf("net pay = %v, want 88220.00", result.NetPay)
	}
	if result.TaxRelief != 41_466.67 {
		t.Fatalf("tax relief = %v, want 41466.67", result.TaxRelief)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCalculatePartialMonthWeekdayProration(t *testing.T) {
	calc := mustCalculator(t)

	emp := fullTimeEmployee(1_200_000)
	// Monday April 14 through Wednesday April 30: 13 of April's 22 weekdays.
	emp.StartDate = date(2025, time.April, 14)

	result, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.WorkingDaysRatio != 0.59 {
		t.Fatalf("ratio = %v, want 0.59 (13/22 weekdays)", result.WorkingDaysRatio)
	}
	if result.ProratedMonthlyGross != 59_000.00 {
		t.Fatalf("prorated = %v, want 59000.00", result.ProratedMonthlyGross)
	}
	// Components prorate from the unprorated monthly gross.
	if result.Components[ComponentBasic] != 17_700.00 {
		t.Fatalf("BASIC = %v, want 17700.00", result.Components[ComponentBasic])
	}
}

func TestCalculateStartBeforeMonthClampsToMonthStart(t *testing.T) {
	calc := mustCalculator(t)

	emp := fullTimeEmployee(1_200_000)
	emp.StartDate = date(2024, time.June, 3)

	result, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.WorkingDaysRatio != 1.00 {
		t.Fatalf("ratio = %v, want 1.00 for range covering the month", result.WorkingDaysRatio)
	}
}

func TestCalculateInvalidDateRange(t *testing.T) {
	calc := mustCalculator(t)

	emp := fullTimeEmployee(1_200_000)
	emp.StartDate = date(2025, time.May, 2)
	emp.EndDate = date(2025, time.April, 30)

	if _, err := calc.Calculate(emp); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestPensionEligibilityBoundary(t *testing.T) {
	calc := mustCalculator(t)

	// Exactly 30,000 prorated monthly gross is still eligible.
	atFloor, err := calc.Calculate(fullTimeEmployee(360_000))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if atFloor.ProratedMonthlyGross != 30_000.00 {
		t.Fatalf("prorated = %v, want 30000.00", atFloor.ProratedMonthlyGross)
	}
	if atFloor.Pension.Employee != 1_800.00 {
		t.Fatalf("employee pension = %v, want 1800.00 at the eligibility floor", atFloor.Pension.Employee)
	}

	below, err := calc.Calculate(fullTimeEmployee(359_000))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if below.Pension != (PensionDetail{}) {
		t.Fatalf("pension = %+v, want all zero below the floor", below.Pension)
	}
}

func TestContractTypeExcludesPension(t *testing.T) {
	calc := mustCalculator(t)

	emp := fullTimeEmployee(9_000_000)
	emp.ContractType = ContractContract
	emp.VoluntaryPension = 10_000

	result, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.Pension != (PensionDetail{}) {
		t.Fatalf("pension = %+v, want all zero for contract staff", result.Pension)
	}
}

func TestVoluntaryPensionClippedWithWarning(t *testing.T) {
	calc := mustCalculator(t)

	emp := fullTimeEmployee(1_200_000)
	emp.VoluntaryPension = 40_000 // above 100000/3

	result, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.Pension.Voluntary != 33_333.33 {
		t.Fatalf("voluntary = %v, want clipped 33333.33", result.Pension.Voluntary)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != WarningVoluntaryClipped {
		t.Fatalf("warnings = %v, want [%s]", result.Warnings, WarningVoluntaryClipped)
	}
}

func TestPAYEMonotonicOverGross(t *testing.T) {
	calc := mustCalculator(t)

	previous := -1.0
	for _, annual := range []float64{200_000, 360_000, 800_000, 1_200_000, 3_000_000, 9_000_000, 25_000_000} {
		result, err := calc.Calculate(fullTimeEmployee(annual))
		if err != nil {
			t.Fatalf("Calculate(%v): %v", annual, err)
		}
		if result.PAYE < previous {
			t.Fatalf("PAYE decreased: %v at annual gross %v, previous %v", result.PAYE, annual, previous)
		}
		previous = result.PAYE
	}
}

func TestNetPayIdentity(t *testing.T) {
	calc := mustCalculator(t)

	emp := fullTimeEmployee(4_750_000)
	emp.Reimbursements = 50_000
	emp.OtherDeductions = 12_500
	emp.VoluntaryPension = 20_000

	result, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	recomputed := Round2(result.ProratedMonthlyGross - result.TotalDeductions + result.Reimbursements)
	if result.NetPay != recomputed {
		t.Fatalf("net pay = %v, recomputed %v from emitted fields", result.NetPay, recomputed)
	}
	deductions := Round2(result.PAYE + result.Pension.Employee + result.Pension.Voluntary + result.OtherDeductions)
	if result.TotalDeductions != deductions {
		t.Fatalf("total deductions = %v, recomputed %v", result.TotalDeductions, deductions)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	calc := mustCalculator(t)
	emp := fullTimeEmployee(5_500_000)
	emp.VoluntaryPension = 5_000

	first, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := calc.Calculate(emp)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestCalculateBatchPreservesOrderAndReportsRows(t *testing.T) {
	calc := mustCalculator(t)

	bad := fullTimeEmployee(2_000_000)
	bad.StartDate = date(2025, time.May, 2)

	batch := []Employee{
		fullTimeEmployee(1_200_000),
		bad,
		fullTimeEmployee(3_600_000),
	}
	batch[0].StaffID = "EMP250001"
	batch[2].StaffID = "EMP250003"

	results, rowErrs := calc.CalculateBatch(batch)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].StaffID != "EMP250001" || results[1].StaffID != "EMP250003" {
		t.Fatalf("batch order not preserved: %s, %s", results[0].StaffID, results[1].StaffID)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("row errors = %d, want 1", len(rowErrs))
	}
	if rowErrs[0].Row != 1 || !errors.Is(rowErrs[0], ErrInvalidDateRange) {
		t.Fatalf("row error = %+v, want row 1 ErrInvalidDateRange", rowErrs[0])
	}
}

// Rounding is half away from zero; the cases use exactly representable
// binary fractions so banker's rounding would visibly differ.
func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.13},
		{0.375, 0.38},
		{-0.125, -0.13},
		{-0.375, -0.38},
		{2.0, 2.0},
		{16_666.666666666668, 16_666.67},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
