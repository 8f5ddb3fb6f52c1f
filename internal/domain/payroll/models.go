// Package payroll orchestrates payroll runs: a CSV batch goes in, a run with
// per-employee results, rejected rows, and totals comes out. Completed runs
// can be approved, exported, and delivered as payslips.
package payroll

import (
	"context"
	"time"

	"nairapay/internal/domain/salary"
)

type Run struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	Status         string    `json:"status"`
	TotalRows      int       `json:"totalRows"`
	CalculatedRows int       `json:"calculatedRows"`
	RejectedRows   int       `json:"rejectedRows"`
	TotalGross     float64   `json:"totalGross"`
	TotalNet       float64   `json:"totalNet"`
	TotalPAYE      float64   `json:"totalPaye"`
	TotalPension   float64   `json:"totalPension"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RowIssue is a rejected input row persisted alongside the run. Field is
// blank when the calculation, not the parse, failed.
type RowIssue struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ResultRecord is one employee's stored calculation within a run.
type ResultRecord struct {
	ID     string        `json:"id"`
	RunID  string        `json:"runId"`
	Result salary.Result `json:"result"`
}

// RunReport is what a completed run returns to the caller: the run header,
// every calculated result, and every rejected row.
type RunReport struct {
	Run     Run            `json:"run"`
	Results []ResultRecord `json:"results"`
	Issues  []RowIssue     `json:"issues,omitempty"`
}

// Attachment is a file carried on an outbound email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Mailer sends payslip mail. The platform email package provides the SMTP
// implementation and a no-op fallback.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string, attachments ...Attachment) error
}
