package math

import "errors"

var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrMissingCamera     = errors.New("no active camera set")
	ErrInvalidProjection = errors.New("invalid projection parameters")
)
