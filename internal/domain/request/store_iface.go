package request

import "context"

type StoreAPI interface {
	Create(ctx context.Context, req *Request) (int64, error)
	List(ctx context.Context) ([]Request, error)
	ListByEmployee(ctx context.Context, employeeNumber string) ([]Request, error)
	Delete(ctx context.Context, id int64) error
	// DeleteOutstanding removes every open request of the given type for the
	// employee. Deleting zero rows is not an error.
	DeleteOutstanding(ctx context.Context, employeeNumber, applicationType string) error
}
