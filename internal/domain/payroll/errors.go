package payroll

import "errors"

var (
	ErrRunNotFound      = errors.New("payroll run not found")
	ErrResultNotFound   = errors.New("payroll result not found")
	ErrRunNotApprovable = errors.New("only a completed run can be approved")
	ErrEmptyBatch       = errors.New("no valid rows in batch")
)
