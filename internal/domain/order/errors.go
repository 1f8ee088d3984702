package order

import "errors"

var (
	ErrMissingField = errors.New("required field is missing")
	ErrNoProducts   = errors.New("order needs at least one product")
)
