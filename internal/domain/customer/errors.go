package customer

import "errors"

var (
	ErrMissingField = errors.New("required field is missing")
	ErrInvalidPhone = errors.New("phone format is invalid")
)
