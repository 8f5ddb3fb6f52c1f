package salary

import "math"

// Round2 rounds to 2 decimal places, half away from zero. Every monetary
// figure the calculator emits goes through this one function so the rounding
// strategy cannot drift between steps.
func Round2(value float64) float64 {
	return math.Trunc(value*100+math.Copysign(0.5, value)) / 100
}
