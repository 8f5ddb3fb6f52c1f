package salary

import (
	"fmt"
	"math"
	"sort"
)

// Standard component names. The set is configurable; these are the names the
// pension base and the default split use.
const (
	ComponentBasic     = "BASIC"
	ComponentTransport = "TRANSPORT"
	ComponentHousing   = "HOUSING"
	ComponentUtility   = "UTILITY"
	ComponentMeal      = "MEAL"
	ComponentClothing  = "CLOTHING"
)

// percentSumTolerance absorbs floating-point drift in user-supplied splits.
const percentSumTolerance = 0.01

// Components maps a salary component name to its percentage of gross pay.
type Components map[string]float64

// DefaultComponents is the statutory split the original payroll templates
// ship with.
func DefaultComponents() Components {
	return Components{
		ComponentBasic:     30,
		ComponentTransport: 25,
		ComponentHousing:   20,
		ComponentUtility:   15,
		ComponentMeal:      5,
		ComponentClothing:  5,
	}
}

// Validate checks the configuration invariant: non-empty, every percentage
// within [0,100], and the sum equal to 100 within tolerance.
func (c Components) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no components defined", ErrConfiguration)
	}

	sum := 0.0
	for name, pct := range c {
		if pct < 0 {
			return fmt.Errorf("%w: component %s has negative percentage %.2f", ErrConfiguration, name, pct)
		}
		if pct > 100 {
			return fmt.Errorf("%w: component %s exceeds 100%% (%.2f)", ErrConfiguration, name, pct)
		}
		sum += pct
	}
	if math.Abs(sum-100) > percentSumTolerance {
		return fmt.Errorf("%w: percentages sum to %.2f, expected 100", ErrConfiguration, sum)
	}
	return nil
}

// Names returns the component names sorted for stable output.
func (c Components) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Components) clone() Components {
	out := make(Components, len(c))
	for name, pct := range c {
		out[name] = pct
	}
	return out
}
