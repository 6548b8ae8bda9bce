package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrCeremonyNotFound = errors.New("ceremony type not found or inactive")
	ErrNotFound         = errors.New("booking not found")
	ErrSlotTaken        = errors.New("slot already has a live booking")
	ErrAlreadyDecided   = errors.New("booking already decided")
	ErrForbidden        = errors.New("forbidden")
)
