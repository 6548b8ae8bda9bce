package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrSlotTaken      = errors.New("time slot is already booked")
	ErrAlreadyDecided = errors.New("booking is no longer pending")
	ErrNotOwner       = errors.New("booking belongs to another user")
)
