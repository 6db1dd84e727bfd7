package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID             int64
	EmployeeNumber string
	Email          string
	Role           string
	PasswordHash   string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(employee_number, ''), email, role, password_hash
    FROM users
    WHERE email = $1
  `, email)

	var u User
	if err := row.Scan(&u.ID, &u.EmployeeNumber, &u.Email, &u.Role, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Provision creates or resets the employee-role login used right after
// onboarding promotion.
func (s *Store) Provision(ctx context.Context, employeeNumber, email, passwordHash string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (employee_number, email, role, password_hash)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (email) DO UPDATE
    SET employee_number = EXCLUDED.employee_number, password_hash = EXCLUDED.password_hash
  `, employeeNumber, email, RoleEmployee, passwordHash)
	return err
}

func (s *Store) EnsureHRUser(ctx context.Context, email, passwordHash string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (email, role, password_hash)
    VALUES ($1,$2,$3)
    ON CONFLICT (email) DO NOTHING
  `, email, RoleHR, passwordHash)
	return err
}

func (s *Store) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := s.DB.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
