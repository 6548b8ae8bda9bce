package admin

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("booking not found")
	ErrAlreadyDecided = errors.New("booking already decided")
)
