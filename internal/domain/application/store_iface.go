package application

import (
	"context"
	"encoding/json"
)

type StoreAPI interface {
	Create(ctx context.Context, app *Application) (int64, error)
	Get(ctx context.Context, id int64) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByEmployee(ctx context.Context, employeeNumber string) ([]Application, error)
	// Replace swaps the payload wholesale, returns the status to pending and
	// clears the status comment. The application id never changes.
	Replace(ctx context.Context, id int64, payload json.RawMessage) error
	SetStatus(ctx context.Context, id int64, status Status, comment string) error
	AddAttachment(ctx context.Context, id int64, att Attachment) error
	ListAttachments(ctx context.Context, id int64) ([]Attachment, error)
}
