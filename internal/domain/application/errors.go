package application

import "errors"

var (
	ErrNotFound           = errors.New("application not found")
	ErrUnknownType        = errors.New("unknown application type")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCommentRequired    = errors.New("status comment required for rejection")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrNotRejected        = errors.New("only a rejected application can be resubmitted")
)
