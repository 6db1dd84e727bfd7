package request

import (
	"context"
	"fmt"

	"hrflow/internal/domain/application"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

type CreateInput struct {
	EmployeeNumber  string
	ApplicationType string
	Message         string
	CreatedBy       string
}

// Create records a request after checking the type against the registry, so
// HR cannot ask for an application the system cannot accept.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	if _, err := application.SchemaFor(application.Type(in.ApplicationType)); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownType, in.ApplicationType)
	}
	return s.Store.Create(ctx, &Request{
		EmployeeNumber:  in.EmployeeNumber,
		ApplicationType: in.ApplicationType,
		Message:         in.Message,
		CreatedBy:       in.CreatedBy,
	})
}

func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.Store.List(ctx)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeNumber string) ([]Request, error) {
	return s.Store.ListByEmployee(ctx, employeeNumber)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

// DeleteOutstanding satisfies the sweeper hook used by application submission.
func (s *Service) DeleteOutstanding(ctx context.Context, employeeNumber, applicationType string) error {
	return s.Store.DeleteOutstanding(ctx, employeeNumber, applicationType)
}
