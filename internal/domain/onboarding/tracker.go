package onboarding

import (
	"context"
	"errors"

	"hrflow/internal/domain/application"
)

// Tracker adapts the staged-employee store to the application service so an
// onboarding application drives the staged lifecycle: submission moves the
// record to applied, review decisions move it to rejected or ready.
type Tracker struct {
	Staged StoreAPI
}

func (t *Tracker) MarkApplied(ctx context.Context, employeeNumber string) error {
	return t.Staged.SetStatus(ctx, employeeNumber, StatusApplied)
}

func (t *Tracker) MarkDecision(ctx context.Context, employeeNumber string, to application.Status) error {
	switch to {
	case application.StatusApproved:
		// Approval makes the staged record ready for the promotion batch.
		return t.Staged.SetStatus(ctx, employeeNumber, StatusReady)
	case application.StatusRejected:
		return t.Staged.SetStatus(ctx, employeeNumber, StatusRejected)
	}
	return nil
}

// StagedStatus returns "" without error when no staged record exists, which
// is the normal state after promotion.
func (t *Tracker) StagedStatus(ctx context.Context, employeeNumber string) (string, error) {
	staged, err := t.Staged.Get(ctx, employeeNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(staged.Status), nil
}
