package application

import (
	"context"
	"encoding/json"
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

func (s *Store) Create(ctx context.Context, app *Application) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO applications (application_type, employee_number, status, status_comment, payload)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, app.Type, app.EmployeeNumber, app.Status, app.StatusComment, app.Payload).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Application, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, application_type, employee_number, status, COALESCE(status_comment, ''), payload, created_at, updated_at
    FROM applications
    WHERE id = $1
  `, id)

	var app Application
	if err := row.Scan(&app.ID, &app.Type, &app.EmployeeNumber, &app.Status, &app.StatusComment, &app.Payload, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	attachments, err := s.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Attachments = attachments
	return &app, nil
}

func (s *Store) List(ctx context.Context) ([]Application, error) {
	return s.list(ctx, `
    SELECT id, application_type, employee_number, status, COALESCE(status_comment, ''), payload, created_at, updated_at
    FROM applications
    ORDER BY id
  `)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeNumber string) ([]Application, error) {
	return s.list(ctx, `
    SELECT id, application_type, employee_number, status, COALESCE(status_comment, ''), payload, created_at, updated_at
    FROM applications
    WHERE employee_number = $1
    ORDER BY id
  `, employeeNumber)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.Type, &app.EmployeeNumber, &app.Status, &app.StatusComment, &app.Payload, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, nil
}

func (s *Store) Replace(ctx context.Context, id int64, payload json.RawMessage) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE applications
    SET payload = $1, status = $2, status_comment = '', updated_at = now()
    WHERE id = $3
  `, payload, StatusPending, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, id int64, status Status, comment string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE applications
    SET status = $1, status_comment = $2, updated_at = now()
    WHERE id = $3
  `, status, comment, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddAttachment(ctx context.Context, id int64, att Attachment) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO application_attachments (application_id, file_name, url)
    VALUES ($1,$2,$3)
  `, id, att.FileName, att.URL)
	return err
}

func (s *Store) ListAttachments(ctx context.Context, id int64) ([]Attachment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, application_id, file_name, url, created_at
    FROM application_attachments
    WHERE application_id = $1
    ORDER BY id
  `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attachment
	for rows.Next() {
		var att Attachment
		if err := rows.Scan(&att.ID, &att.ApplicationID, &att.FileName, &att.URL, &att.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, att)
	}
	return out, nil
}
