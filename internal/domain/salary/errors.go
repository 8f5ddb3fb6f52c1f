package salary

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration       = errors.New("invalid component configuration")
	ErrInvalidDateRange    = errors.New("start date is after end date")
	ErrUnknownContractType = errors.New("unknown contract type")
	ErrZeroWorkingDays     = errors.New("month has no working days")
)

// RowError ties a calculation failure to the offending batch row.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
