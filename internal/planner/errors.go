package planner

import "errors"

var (
	// ErrInvalidProfile marks malformed athlete input. Caller-correctable;
	// surfaced immediately, never retried internally.
	ErrInvalidProfile = errors.New("invalid athlete profile")

	// ErrIncompletePlan marks schedule assembly over inconsistent
	// intermediate state, i.e. a caller-side sequencing bug.
	ErrIncompletePlan = errors.New("incomplete plan")
)
