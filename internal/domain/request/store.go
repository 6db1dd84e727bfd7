package request

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, req *Request) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO change_requests (employee_number, application_type, message, created_by)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, req.EmployeeNumber, req.ApplicationType, req.Message, req.CreatedBy).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) List(ctx context.Context) ([]Request, error) {
	return s.list(ctx, `
    SELECT id, employee_number, application_type, COALESCE(message, ''), created_by, created_at
    FROM change_requests
    ORDER BY id
  `)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeNumber string) ([]Request, error) {
	return s.list(ctx, `
    SELECT id, employee_number, application_type, COALESCE(message, ''), created_by, created_at
    FROM change_requests
    WHERE employee_number = $1
    ORDER BY id
  `, employeeNumber)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeNumber, &req.ApplicationType, &req.Message, &req.CreatedBy, &req.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM change_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteOutstanding(ctx context.Context, employeeNumber, applicationType string) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM change_requests
    WHERE employee_number = $1 AND application_type = $2
  `, employeeNumber, applicationType)
	return err
}
