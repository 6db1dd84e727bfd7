package onboarding

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const stagedColumns = `employee_number, last_name, first_name, last_name_kana, first_name_kana,
  birth_date, email, COALESCE(dependent_status, ''), status, created_at, updated_at`

func (s *Store) Create(ctx context.Context, staged *StagedEmployee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO onboarding_employees
      (employee_number, last_name, first_name, last_name_kana, first_name_kana,
       birth_date, email, dependent_status, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, staged.EmployeeNumber, staged.LastName, staged.FirstName, staged.LastNameKana, staged.FirstNameKana,
		staged.BirthDate, staged.Email, staged.DependentStatus, staged.Status)
	return err
}

func (s *Store) Get(ctx context.Context, employeeNumber string) (*StagedEmployee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+stagedColumns+`
    FROM onboarding_employees
    WHERE employee_number = $1
  `, employeeNumber)

	var staged StagedEmployee
	if err := scanStaged(row, &staged); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &staged, nil
}

func (s *Store) List(ctx context.Context) ([]StagedEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+stagedColumns+`
    FROM onboarding_employees
    ORDER BY employee_number
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StagedEmployee
	for rows.Next() {
		var staged StagedEmployee
		if err := scanStaged(rows, &staged); err != nil {
			return nil, err
		}
		out = append(out, staged)
	}
	return out, nil
}

func (s *Store) SetStatus(ctx context.Context, employeeNumber string, status Status) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE onboarding_employees
    SET status = $1, updated_at = now()
    WHERE employee_number = $2
  `, status, employeeNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, employeeNumber string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM onboarding_employees WHERE employee_number = $1`, employeeNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStaged(row pgx.Row, staged *StagedEmployee) error {
	return row.Scan(&staged.EmployeeNumber, &staged.LastName, &staged.FirstName,
		&staged.LastNameKana, &staged.FirstNameKana, &staged.BirthDate, &staged.Email,
		&staged.DependentStatus, &staged.Status, &staged.CreatedAt, &staged.UpdatedAt)
}
