package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid terminal code or secret")
	ErrTerminalNotFound   = errors.New("terminal not found")
	ErrTerminalDisabled   = errors.New("terminal is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
