package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidRoute = errors.New("invalid route")
)
