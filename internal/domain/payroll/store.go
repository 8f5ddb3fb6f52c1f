package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "nairapay/internal/platform/crypto"
)

type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

func (s *Store) CreateRun(ctx context.Context, reference, createdBy string) (Run, error) {
	run := Run{Reference: reference, Status: RunStatusDraft, CreatedBy: createdBy}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_runs (reference, status, created_by)
    VALUES ($1, $2, $3)
    RETURNING id, created_at, updated_at
  `, reference, run.Status, createdBy).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// CompleteRun writes the totals and rejected rows accumulated during
// calculation and moves the run to completed.
func (s *Store) CompleteRun(ctx context.Context, run Run, issues []RowIssue) error {
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return err
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE payroll_runs
    SET status = $1,
        total_rows = $2,
        calculated_rows = $3,
        rejected_rows = $4,
        total_gross = $5,
        total_net = $6,
        total_paye = $7,
        total_pension = $8,
        issues = $9,
        updated_at = now()
    WHERE id = $10
  `, RunStatusCompleted, run.TotalRows, run.CalculatedRows, run.RejectedRows,
		run.TotalGross, run.TotalNet, run.TotalPAYE, run.TotalPension, issuesJSON, run.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}

const runColumns = `
    id, reference, status, total_rows, calculated_rows, rejected_rows,
    total_gross, total_net, total_paye, total_pension,
    COALESCE(created_by, ''), created_at, updated_at`

func scanRun(row pgx.Row) (Run, error) {
	var run Run
	err := row.Scan(
		&run.ID, &run.Reference, &run.Status,
		&run.TotalRows, &run.CalculatedRows, &run.RejectedRows,
		&run.TotalGross, &run.TotalNet, &run.TotalPAYE, &run.TotalPension,
		&run.CreatedBy, &run.CreatedAt, &run.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	return scanRun(s.DB.QueryRow(ctx,
		"SELECT"+runColumns+" FROM payroll_runs WHERE id = $1", runID))
}

func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT"+runColumns+" FROM payroll_runs ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// ApproveRun moves a completed run to approved. The status guard lives in
// the WHERE clause so concurrent approvals cannot double-fire.
func (s *Store) ApproveRun(ctx context.Context, runID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE payroll_runs SET status = $1, updated_at = now()
    WHERE id = $2 AND status = $3
  `, RunStatusApproved, runID, RunStatusCompleted)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := s.GetRun(ctx, runID); err != nil {
			return err
		}
		return ErrRunNotApprovable
	}
	return nil
}

func (s *Store) RunIssues(ctx context.Context, runID string) ([]RowIssue, error) {
	var issuesJSON []byte
	err := s.DB.QueryRow(ctx,
		"SELECT issues FROM payroll_runs WHERE id = $1", runID).Scan(&issuesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	var issues []RowIssue
	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &issues); err != nil {
			return nil, err
		}
	}
	return issues, nil
}

// InsertResults stores every calculated result for a run. Account numbers go
// into their own encrypted column and are blanked inside the detail JSON.
func (s *Store) InsertResults(ctx context.Context, runID string, results []ResultRecord) error {
	for i := range results {
		rec := &results[i]
		accountEnc, err := s.Crypto.EncryptString(rec.Result.AccountNumber)
		if err != nil {
			return err
		}

		detail := rec.Result
		detail.AccountNumber = ""
		detailJSON, err := json.Marshal(detail)
		if err != nil {
			return err
		}

		err = s.DB.QueryRow(ctx, `
      INSERT INTO payroll_results (run_id, staff_id, email, account_number_enc, net_pay, detail)
      VALUES ($1, $2, $3, $4, $5, $6)
      RETURNING id
    `, runID, rec.Result.StaffID, rec.Result.Email, accountEnc, rec.Result.NetPay, detailJSON).Scan(&rec.ID)
		if err != nil {
			return fmt.Errorf("store result for %s: %w", rec.Result.StaffID, err)
		}
		rec.RunID = runID
	}
	return nil
}

func (s *Store) scanResult(row pgx.Row) (ResultRecord, error) {
	var rec ResultRecord
	var accountEnc, detailJSON []byte
	err := row.Scan(&rec.ID, &rec.RunID, &accountEnc, &detailJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return ResultRecord{}, ErrResultNotFound
	}
	if err != nil {
		return ResultRecord{}, err
	}
	if err := json.Unmarshal(detailJSON, &rec.Result); err != nil {
		return ResultRecord{}, err
	}
	rec.Result.AccountNumber, err = s.Crypto.DecryptString(accountEnc)
	if err != nil {
		return ResultRecord{}, fmt.Errorf("decrypt account number for %s: %w", rec.Result.StaffID, err)
	}
	return rec, nil
}

func (s *Store) ListResults(ctx context.Context, runID string) ([]ResultRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, run_id, account_number_enc, detail
    FROM payroll_results
    WHERE run_id = $1
    ORDER BY staff_id
  `, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		rec, err := s.scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) GetResult(ctx context.Context, runID, resultID string) (ResultRecord, error) {
	return s.scanResult(s.DB.QueryRow(ctx, `
    SELECT id, run_id, account_number_enc, detail
    FROM payroll_results
    WHERE run_id = $1 AND id = $2
  `, runID, resultID))
}
