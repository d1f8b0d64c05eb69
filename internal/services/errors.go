package services

import "errors"

var (
	ErrBadCreds          = errors.New("invalid email or password")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
)
