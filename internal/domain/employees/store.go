// Package employees persists the employee register. Bank account numbers
// are encrypted at rest; everything else is stored plain.
package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "nairapay/internal/platform/crypto"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

type Record struct {
	ID               string    `json:"id"`
	StaffID          string    `json:"staffId"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Department       string    `json:"department"`
	JobTitle         string    `json:"jobTitle"`
	AccountNumber    string    `json:"accountNumber"`
	AnnualGrossPay   float64   `json:"annualGrossPay"`
	ContractType     string    `json:"contractType"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Reimbursements   float64   `json:"reimbursements"`
	OtherDeductions  float64   `json:"otherDeductions"`
	VoluntaryPension float64   `json:"voluntaryPension"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

const recordColumns = `
    id, staff_id, name, email,
    COALESCE(department, ''), COALESCE(job_title, ''),
    account_number_enc, annual_gross_pay, contract_type,
    start_date, end_date, reimbursements, other_deductions, voluntary_pension,
    created_at, updated_at`

func (s *Store) scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var accountEnc []byte
	err := row.Scan(
		&rec.ID, &rec.StaffID, &rec.Name, &rec.Email,
		&rec.Department, &rec.JobTitle,
		&accountEnc, &rec.AnnualGrossPay, &rec.ContractType,
		&rec.StartDate, &rec.EndDate,
		&rec.Reimbursements, &rec.OtherDeductions, &rec.VoluntaryPension,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	rec.AccountNumber, err = s.Crypto.DecryptString(accountEnc)
	if err != nil {
		return Record{}, fmt.Errorf("decrypt account number for %s: %w", rec.StaffID, err)
	}
	return rec, nil
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	return s.scanRecord(s.DB.QueryRow(ctx,
		"SELECT"+recordColumns+" FROM employees WHERE id = $1", id))
}

func (s *Store) GetByStaffID(ctx context.Context, staffID string) (Record, error) {
	return s.scanRecord(s.DB.QueryRow(ctx,
		"SELECT"+recordColumns+" FROM employees WHERE staff_id = $1", staffID))
}

func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT"+recordColumns+" FROM employees ORDER BY staff_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create inserts a record. A blank StaffID gets the next generated one.
func (s *Store) Create(ctx context.Context, rec Record) (Record, error) {
	if rec.StaffID == "" {
		staffID, err := s.NextStaffID(ctx)
		if err != nil {
			return Record{}, err
		}
		rec.StaffID = staffID
	}

	accountEnc, err := s.Crypto.EncryptString(rec.AccountNumber)
	if err != nil {
		return Record{}, err
	}

	err = s.DB.QueryRow(ctx, `
    INSERT INTO employees (staff_id, name, email, department, job_title,
      account_number_enc, annual_gross_pay, contract_type, start_date, end_date,
      reimbursements, other_deductions, voluntary_pension)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id, created_at, updated_at
  `,
		rec.StaffID, rec.Name, rec.Email, rec.Department, rec.JobTitle,
		accountEnc, rec.AnnualGrossPay, rec.ContractType, rec.StartDate, rec.EndDate,
		rec.Reimbursements, rec.OtherDeductions, rec.VoluntaryPension,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) Update(ctx context.Context, id string, rec Record) error {
	accountEnc, err := s.Crypto.EncryptString(rec.AccountNumber)
	if err != nil {
		return err
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        email = $2,
        department = $3,
        job_title = $4,
        account_number_enc = $5,
        annual_gross_pay = $6,
        contract_type = $7,
        start_date = $8,
        end_date = $9,
        reimbursements = $10,
        other_deductions = $11,
        voluntary_pension = $12,
        updated_at = now()
    WHERE id = $13
  `,
		rec.Name, rec.Email, rec.Department, rec.JobTitle, accountEnc,
		rec.AnnualGrossPay, rec.ContractType, rec.StartDate, rec.EndDate,
		rec.Reimbursements, rec.OtherDeductions, rec.VoluntaryPension, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NextStaffID produces EMP<yy><seq> where seq restarts each year, e.g. the
// third employee registered in 2026 gets EMP260003.
func (s *Store) NextStaffID(ctx context.Context) (string, error) {
	year := time.Now().UTC().Format("06")
	prefix := "EMP" + year

	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE staff_id LIKE $1", prefix+"%").Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
