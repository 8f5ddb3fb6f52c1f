package payroll

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nairapay/internal/domain/salary"
	"nairapay/internal/ingestion"
	"nairapay/internal/platform/metrics"
)

type Service struct {
	store      *Store
	calc       *salary.Calculator
	mailer     Mailer
	metrics    *metrics.Collector
	emailFrom  string
	payslipDir string
}

func NewService(store *Store, calc *salary.Calculator, mailer Mailer, collector *metrics.Collector, emailFrom, payslipDir string) *Service {
	return &Service{
		store:      store,
		calc:       calc,
		mailer:     mailer,
		metrics:    collector,
		emailFrom:  emailFrom,
		payslipDir: payslipDir,
	}
}

// Preview parses and calculates a batch without persisting anything.
func (s *Service) Preview(r io.Reader) ([]salary.Result, []RowIssue, error) {
	results, _, issues, err := s.runBatch(r)
	return results, issues, err
}

// RunPayroll parses the upload, calculates every row, and persists the run
// with its results and rejected rows. A batch where no row survives is an
// error; a batch with some bad rows is a completed run with issues.
func (s *Service) RunPayroll(ctx context.Context, reference, createdBy string, r io.Reader) (RunReport, error) {
	results, totalRows, issues, err := s.runBatch(r)
	if err != nil {
		return RunReport{}, err
	}
	if len(results) == 0 {
		return RunReport{}, fmt.Errorf("%w: %d rows rejected", ErrEmptyBatch, len(issues))
	}

	run, err := s.store.CreateRun(ctx, reference, createdBy)
	if err != nil {
		return RunReport{}, err
	}

	records := make([]ResultRecord, len(results))
	for i, result := range results {
		records[i] = ResultRecord{Result: result}
		run.TotalGross = salary.Round2(run.TotalGross + result.ProratedMonthlyGross)
		run.TotalNet = salary.Round2(run.TotalNet + result.NetPay)
		run.TotalPAYE = salary.Round2(run.TotalPAYE + result.PAYE)
		run.TotalPension = salary.Round2(run.TotalPension + result.Pension.Total)
	}
	if err := s.store.InsertResults(ctx, run.ID, records); err != nil {
		return RunReport{}, err
	}

	run.TotalRows = totalRows
	run.CalculatedRows = len(results)
	run.RejectedRows = totalRows - len(results)
	if err := s.store.CompleteRun(ctx, run, issues); err != nil {
		return RunReport{}, err
	}
	run.Status = RunStatusCompleted

	s.metrics.RecordPayrollRun(run.CalculatedRows, run.RejectedRows)

	return RunReport{Run: run, Results: records, Issues: issues}, nil
}

// runBatch is the shared parse-and-calculate stage. It returns the surviving
// results, the total data row count, and one issue per rejected row.
func (s *Service) runBatch(r io.Reader) ([]salary.Result, int, []RowIssue, error) {
	employees, parseErrs, err := ingestion.ParseBatch(r)
	if err != nil {
		return nil, 0, nil, err
	}

	results, calcErrs := s.calc.CalculateBatch(employees)

	var issues []RowIssue
	rejectedRows := map[int]bool{}
	for _, pe := range parseErrs {
		issues = append(issues, RowIssue{Row: pe.Row, Field: pe.Field, Reason: pe.Reason})
		rejectedRows[pe.Row] = true
	}
	for _, ce := range calcErrs {
		// Calculation rows index the accepted set, which excludes rows the
		// parser already rejected.
		issues = append(issues, RowIssue{Row: ce.Row + 1, Reason: "calculation: " + ce.Err.Error()})
	}

	totalRows := len(employees) + len(rejectedRows)
	return results, totalRows, issues, nil
}

func (s *Service) ListRuns(ctx context.Context) ([]Run, error) {
	return s.store.ListRuns(ctx)
}

func (s *Service) Report(ctx context.Context, runID string) (RunReport, error) {
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return RunReport{}, err
	}
	results, err := s.store.ListResults(ctx, runID)
	if err != nil {
		return RunReport{}, err
	}
	issues, err := s.store.RunIssues(ctx, runID)
	if err != nil {
		return RunReport{}, err
	}
	return RunReport{Run: run, Results: results, Issues: issues}, nil
}

func (s *Service) Approve(ctx context.Context, runID string) (Run, error) {
	if err := s.store.ApproveRun(ctx, runID); err != nil {
		return Run{}, err
	}
	return s.store.GetRun(ctx, runID)
}

// GeneratePayslip renders one result's payslip, saves a copy under the
// payslip directory, and returns the filename and bytes.
func (s *Service) GeneratePayslip(ctx context.Context, runID, resultID string) (string, []byte, error) {
	rec, err := s.store.GetResult(ctx, runID, resultID)
	if err != nil {
		return "", nil, err
	}

	content, err := RenderPayslip(rec.Result)
	if err != nil {
		return "", nil, err
	}

	filename := PayslipFilename(rec.Result)
	if err := os.MkdirAll(s.payslipDir, 0o755); err != nil {
		return "", nil, err
	}
	if err := os.WriteFile(filepath.Join(s.payslipDir, filename), content, 0o600); err != nil {
		return "", nil, err
	}
	return filename, content, nil
}

// EmailPayslip renders one result's payslip and mails it to the employee.
func (s *Service) EmailPayslip(ctx context.Context, runID, resultID string) error {
	rec, err := s.store.GetResult(ctx, runID, resultID)
	if err != nil {
		return err
	}
	if rec.Result.Email == "" {
		return fmt.Errorf("no email address on record for %s", rec.Result.StaffID)
	}

	content, err := RenderPayslip(rec.Result)
	if err != nil {
		return err
	}

	period := rec.Result.EndDate.Format("January 2006")
	body := fmt.Sprintf("Dear %s,\n\nPlease find attached your payslip for %s.\n\nRegards,\nPayroll",
		rec.Result.Name, period)
	err = s.mailer.Send(ctx, s.emailFrom, rec.Result.Email,
		"Your payslip for "+period, body,
		Attachment{Filename: PayslipFilename(rec.Result), Content: content})
	if err != nil {
		return err
	}

	s.metrics.RecordPayslipEmailed()
	return nil
}
