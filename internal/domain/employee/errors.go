package employee

import "errors"

var (
	ErrNotFound          = errors.New("employee not found")
	ErrDependentNotFound = errors.New("dependent not found")
	ErrAmbiguousMatch    = errors.New("dependent match is ambiguous")
)
