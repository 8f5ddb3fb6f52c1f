package salary

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// PensionEligibilityFloor is the prorated monthly gross below which no
	// pension is deducted. Exactly 30,000 is still eligible.
	PensionEligibilityFloor = 30_000

	// EmployeePensionRate is the mandatory employee contribution on
	// pensionable earnings (BASIC + TRANSPORT + HOUSING).
	EmployeePensionRate = 0.08

	// MinEmployerPensionRate is the statutory minimum employer contribution.
	MinEmployerPensionRate = 0.10

	// AnnualReliefFloor is the statutory minimum consolidated relief per
	// year; the calculator applies it as a monthly figure.
	AnnualReliefFloor = 200_000

	// VoluntaryPensionCap limits voluntary contributions to this fraction
	// of monthly gross pay.
	VoluntaryPensionCap = 1.0 / 3.0

	batchWorkers = 8
)

// Calculator runs the statutory pay pipeline for one employee at a time.
// It holds no mutable state: the component split and employer rate are fixed
// at construction and every Calculate call is pure.
type Calculator struct {
	components   Components
	employerRate float64
}

// NewCalculator validates the component split and returns a calculator using
// the default 10% employer pension rate.
func NewCalculator(components Components) (*Calculator, error) {
	return NewCalculatorWithEmployerRate(components, MinEmployerPensionRate)
}

// NewCalculatorWithEmployerRate allows an employer pension rate above the
// statutory minimum.
func NewCalculatorWithEmployerRate(components Components, employerRate float64) (*Calculator, error) {
	if err := components.Validate(); err != nil {
		return nil, err
	}
	if employerRate < MinEmployerPensionRate {
		return nil, fmt.Errorf("%w: employer pension rate %.2f below statutory minimum %.2f",
			ErrConfiguration, employerRate, MinEmployerPensionRate)
	}
	return &Calculator{components: components.clone(), employerRate: employerRate}, nil
}

// Components returns a copy of the configured split.
func (c *Calculator) Components() Components {
	return c.components.clone()
}

// Calculate runs the full pipeline for one employee:
// proration, component split, pension, CRA, taxable pay, PAYE, net pay.
func (c *Calculator) Calculate(emp Employee) (Result, error) {
	ratio, err := c.workingDaysRatio(emp.StartDate, emp.EndDate)
	if err != nil {
		return Result{}, err
	}

	monthlyGross := Round2(emp.AnnualGrossPay / 12)
	prorated := Round2(monthlyGross * ratio)

	// The ratio is applied to the unprorated monthly gross so each component
	// is rounded exactly once.
	components := make(map[string]float64, len(c.components))
	for name, pct := range c.components {
		components[name] = Round2(monthlyGross * (pct / 100) * ratio)
	}

	result := Result{
		Employee:             emp,
		MonthlyGross:         monthlyGross,
		WorkingDaysRatio:     ratio,
		ProratedMonthlyGross: prorated,
		Components:           components,
	}

	result.Pension = c.pension(emp, monthlyGross, prorated, components, &result.Warnings)

	statutory := result.Pension.Employee + result.Pension.Voluntary
	adjustedGross := prorated - statutory
	cra := Round2(0.20*adjustedGross) + Round2(math.Max(0.01*adjustedGross, AnnualReliefFloor/12))

	result.CRA = cra
	result.TaxablePay = Round2(adjustedGross - cra)
	result.PAYE = PAYE(result.TaxablePay)
	result.TotalDeductions = Round2(result.PAYE + statutory + emp.OtherDeductions)
	// Reimbursements come back after deductions: untaxed, not pensionable.
	result.NetPay = Round2(prorated - result.TotalDeductions + emp.Reimbursements)
	result.TaxRelief = Round2(cra + statutory)

	return result, nil
}

// pension applies the eligibility gate and rates. Contract staff and anyone
// below the eligibility floor get a zero detail, voluntary included.
func (c *Calculator) pension(emp Employee, monthlyGross, prorated float64, components map[string]float64, warnings *[]string) PensionDetail {
	if emp.ContractType == ContractContract || prorated < PensionEligibilityFloor {
		return PensionDetail{}
	}

	base := components[ComponentBasic] + components[ComponentTransport] + components[ComponentHousing]

	voluntary := emp.VoluntaryPension
	if limit := monthlyGross * VoluntaryPensionCap; voluntary > limit {
		// The ingestion validator rejects this upstream; clip rather than
		// fail for callers that skip it.
		voluntary = limit
		*warnings = append(*warnings, WarningVoluntaryClipped)
	}

	detail := PensionDetail{
		Employee:  Round2(EmployeePensionRate * base),
		Employer:  Round2(c.employerRate * base),
		Voluntary: Round2(voluntary),
	}
	detail.Total = Round2(detail.Employee + detail.Employer + detail.Voluntary)
	return detail
}

// workingDaysRatio divides the weekdays worked within the end date's
// calendar month by that month's total weekdays. Weekends count for neither
// side: pay is prorated against working days.
func (c *Calculator) workingDaysRatio(start, end time.Time) (float64, error) {
	if start.After(end) {
		return 0, ErrInvalidDateRange
	}

	monthStart := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	total := countWeekdays(monthStart, monthEnd)
	if total == 0 {
		return 0, ErrZeroWorkingDays
	}

	from := dateOnly(start)
	if from.Before(monthStart) {
		from = monthStart
	}
	to := dateOnly(end)
	if to.After(monthEnd) {
		to = monthEnd
	}

	worked := 0
	if !from.After(to) {
		worked = countWeekdays(from, to)
	}
	return Round2(float64(worked) / float64(total)), nil
}

// CalculateBatch computes every record independently with a bounded fan-out.
// Results are written by input index, so output order always matches input
// order. Failed rows are reported, never silently dropped, and never stop
// the rest of the batch.
func (c *Calculator) CalculateBatch(employees []Employee) ([]Result, []RowError) {
	results := make([]Result, len(employees))
	failures := make([]error, len(employees))

	var group errgroup.Group
	group.SetLimit(batchWorkers)
	for i := range employees {
		i := i
		group.Go(func() error {
			results[i], failures[i] = c.Calculate(employees[i])
			return nil
		})
	}
	_ = group.Wait()

	out := make([]Result, 0, len(employees))
	var rowErrs []RowError
	for i := range employees {
		if failures[i] != nil {
			rowErrs = append(rowErrs, RowError{Row: i, Err: failures[i]})
			continue
		}
		out = append(out, results[i])
	}
	return out, rowErrs
}

func countWeekdays(from, to time.Time) int {
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
