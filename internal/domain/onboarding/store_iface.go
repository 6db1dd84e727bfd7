package onboarding

import "context"

type StoreAPI interface {
	Create(ctx context.Context, staged *StagedEmployee) error
	Get(ctx context.Context, employeeNumber string) (*StagedEmployee, error)
	List(ctx context.Context) ([]StagedEmployee, error)
	SetStatus(ctx context.Context, employeeNumber string, status Status) error
	Delete(ctx context.Context, employeeNumber string) error
}
