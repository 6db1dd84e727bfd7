package employee

import "context"

type StoreAPI interface {
	GetByNumber(ctx context.Context, employeeNumber string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	UpdateAddress(ctx context.Context, employeeNumber string, update AddressUpdate) error
	UpdateName(ctx context.Context, employeeNumber string, update NameUpdate) error
	UpdateMyNumber(ctx context.Context, employeeNumber, myNumber string) error
	StampResignation(ctx context.Context, employeeNumber string, stamp ResignationStamp) error
	ListDependents(ctx context.Context, employeeNumber string) ([]Dependent, error)
	AddDependent(ctx context.Context, employeeNumber string, dep Dependent) (string, error)
	RemoveDependentByID(ctx context.Context, employeeNumber, dependentID string) error
	RemoveDependentByMatch(ctx context.Context, employeeNumber, name, relationship string) error
}
