package services

import "errors"

// Sentinel errors returned by the services. Handlers translate these to
// HTTP status codes; anything else is treated as an internal error.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("game session not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrSeatTaken     = errors.New("seat already taken by another participant")
	ErrUsernameTaken = errors.New("username already taken")
	ErrCodeExhausted = errors.New("could not allocate a unique room code")

	ErrNotParticipant = errors.New("user is not part of this game session")

	ErrInvalidSeat        = errors.New("seat number out of range")
	ErrEmptyName          = errors.New("participant name must not be empty")
	ErrSameSeat           = errors.New("seat numbers must be different")
	ErrInvalidQuestion    = errors.New("question number out of range")
	ErrEmptyAnswer        = errors.New("answer text must not be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
