package salary

import "testing"

func TestPAYE(t *testing.T) {
	cases := []struct {
		name           string
		monthlyTaxable float64
		want           float64
	}{
		// 58,533.33 annualizes to 702,399.96: 300k at 7%, 300k at 11%,
		// 102,399.96 at 15%.
		{"mid second band", 58_533.33, 5_780.00},
		{"zero", 0, 0},
		{"negative taxable", -5_000, 0},
		// 25,000 annualizes to 300,000: first band only.
		{"first band boundary", 25_000, 1_750.00},
		// 300,000 annualizes to 3.6M: all bands incl. 400k remainder at 24%.
		{"top band", 300_000, 54_666.67},
	}

	for _, tc := range cases {
		if got := PAYE(tc.monthlyTaxable); got != tc.want {
			t.Fatalf("%s: PAYE(%v) = %v, want %v", tc.name, tc.monthlyTaxable, got, tc.want)
		}
	}
}
