package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin password is not configured")
	ErrNotFound           = errors.New("booking not found")
)
