package salary

import (
	"fmt"
	"strings"
	"time"
)

type ContractType string

const (
	ContractFullTime ContractType = "Full Time"
	ContractContract ContractType = "Contract"
)

// ParseContractType matches case-insensitively and tolerates surrounding
// whitespace; the CSV boundary feeds it raw cell values.
func ParseContractType(value string) (ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "full time":
		return ContractFullTime, nil
	case "contract":
		return ContractContract, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContractType, value)
}

// Employee is one pay computation request. Identity fields are opaque to the
// calculator and only echoed into the Result.
type Employee struct {
	AccountNumber string `json:"accountNumber"`
	StaffID       string `json:"staffId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	JobTitle      string `json:"jobTitle"`

	AnnualGrossPay   float64      `json:"annualGrossPay"`
	ContractType     ContractType `json:"contractType"`
	StartDate        time.Time    `json:"startDate"`
	EndDate          time.Time    `json:"endDate"`
	Reimbursements   float64      `json:"reimbursements"`
	OtherDeductions  float64      `json:"otherDeductions"`
	VoluntaryPension float64      `json:"voluntaryPension"`
}

// PensionDetail splits the pension position for one employee. Employer is
// informational: it is paid on top of gross and never deducted.
type PensionDetail struct {
	Employee  float64 `json:"employee"`
	Employer  float64 `json:"employer"`
	Voluntary float64 `json:"voluntary"`
	Total     float64 `json:"total"`
}

const (
	WarningVoluntaryClipped = "voluntary_pension_clipped"
)

// Result is the flat output record for one employee: the input echoed plus
// every computed quantity. Never mutated after Calculate returns it.
type Result struct {
	Employee

	MonthlyGross         float64            `json:"monthlyGross"`
	WorkingDaysRatio     float64            `json:"workingDaysRatio"`
	ProratedMonthlyGross float64            `json:"proratedMonthlyGross"`
	Components           map[string]float64 `json:"components"`
	Pension              PensionDetail      `json:"pension"`
	CRA                  float64            `json:"cra"`
	TaxablePay           float64            `json:"taxablePay"`
	PAYE                 float64            `json:"paye"`
	TotalDeductions      float64            `json:"totalDeductions"`
	NetPay               float64            `json:"netPay"`
	TaxRelief            float64            `json:"taxRelief"`
	Warnings             []string           `json:"warnings,omitempty"`
}
