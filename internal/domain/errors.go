package domain

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomExists        = errors.New("room already exists")
	ErrBookingConflict   = errors.New("booking time conflict")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrNotBookingOwner   = errors.New("booking not owned by user")
	ErrAlreadyAdmin      = errors.New("user is already an admin")
	ErrNotAdmin          = errors.New("user is not an admin")
	ErrOffsetOutOfRange  = errors.New("timezone offset out of range")
)
