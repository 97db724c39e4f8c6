package models

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("not authorized to access this task")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// FieldError mirrors the {field, message} shape of validation errors
// in API responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
