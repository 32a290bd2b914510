package service

import "errors"

// Callers branch on these with errors.Is; wrapped detail is for logs only.
var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal")
)
