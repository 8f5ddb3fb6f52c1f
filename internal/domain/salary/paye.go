package salary

import "math"

// Statutory PAYE bands: each entry taxes the slice of annual income that
// falls within its cumulative width.
type taxBand struct {
	width float64
	rate  float64
}

var payeBands = []taxBand{
	{300_000, 0.07},
	{300_000, 0.11},
	{500_000, 0.15},
	{500_000, 0.19},
	{1_600_000, 0.21},
	{math.Inf(1), 0.24},
}

// PAYE computes the monthly Pay-As-You-Earn tax for a monthly taxable pay
// figure. The bands are annual, so taxable pay is annualized, taxed
// progressively, and the annual tax divided back down to a month.
func PAYE(monthlyTaxable float64) float64 {
	annualTaxable := monthlyTaxable * 12

	tax := 0.0
	remaining := annualTaxable
	for _, band := range payeBands {
		if remaining <= 0 {
			break
		}
		taxableInBand := math.Min(band.width, remaining)
		tax += taxableInBand * band.rate
		remaining -= band.width
	}
	return Round2(tax / 12)
}
