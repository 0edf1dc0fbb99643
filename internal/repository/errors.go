package repository

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalid            = errors.New("invalid input")
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrAlreadyCompleted   = errors.New("already completed today")
)
