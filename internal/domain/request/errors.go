package request

import "errors"

var (
	ErrNotFound    = errors.New("change request not found")
	ErrUnknownType = errors.New("unknown application type")
)
