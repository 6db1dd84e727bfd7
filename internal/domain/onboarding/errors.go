package onboarding

import "errors"

var (
	ErrNotFound = errors.New("staged employee not found")
	ErrNotReady = errors.New("staged employee is not ready for promotion")
)
