package apperrors

import "errors"

// ErrNotFound indicates that a referenced entity or stored plan does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")
