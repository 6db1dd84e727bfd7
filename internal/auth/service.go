package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const TokenTTL = 12 * time.Hour

type Service struct {
	Store  *Store
	Secret string
}

func NewService(store *Store, secret string) *Service {
	return &Service{Store: store, Secret: secret}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{
		UserID:         user.ID,
		EmployeeNumber: user.EmployeeNumber,
		Role:           user.Role,
	}, TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Provision satisfies the credential hook used by onboarding promotion.
func (s *Service) Provision(ctx context.Context, employeeNumber, email, passwordHash string) error {
	return s.Store.Provision(ctx, employeeNumber, email, passwordHash)
}
