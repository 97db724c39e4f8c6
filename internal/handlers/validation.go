package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"taskhub/internal/models"
)

// Field checks mirror the API's validation contract; each failure is
// reported as {field, message}. Length limits count characters, not
// bytes, so non-ASCII input is not penalized.

func validateRegister(req *models.RegisterRequest) []models.FieldError {
	var errs []models.FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "Name is required"})
	} else if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		errs = append(errs, models.FieldError{Field: "name", Message: "Name must be between 2 and 50 characters"})
	}

	errs = append(errs, validateEmailField(req.Email, true)...)

	if req.Password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "Password is required"})
	} else if len(req.Password) < 6 {
		errs = append(errs, models.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

func validateLogin(req *models.LoginRequest) []models.FieldError {
	var errs []models.FieldError
	errs = append(errs, validateEmailField(req.Email, true)...)
	if req.Password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

func validateEmailField(email string, required bool) []models.FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		if required {
			return []models.FieldError{{Field: "email", Message: "Email is required"}}
		}
		return nil
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return []models.FieldError{{Field: "email", Message: "Please provide a valid email"}}
	}
	return nil
}

func validateTitle(title string, required bool) []models.FieldError {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		if required {
			return []models.FieldError{{Field: "title", Message: "Task title is required"}}
		}
		return []models.FieldError{{Field: "title", Message: "Task title cannot be empty"}}
	}
	if utf8.RuneCountInString(trimmed) > 100 {
		return []models.FieldError{{Field: "title", Message: "Title cannot be more than 100 characters"}}
	}
	return nil
}

func validateDescription(desc string) []models.FieldError {
	if utf8.RuneCountInString(strings.TrimSpace(desc)) > 500 {
		return []models.FieldError{{Field: "description", Message: "Description cannot be more than 500 characters"}}
	}
	return nil
}

func validateStatus(s models.TaskStatus) []models.FieldError {
	if !models.IsValidStatus(s) {
		return []models.FieldError{{Field: "status", Message: fmt.Sprintf("Invalid status value %q", s)}}
	}
	return nil
}

func validatePriority(p models.TaskPriority) []models.FieldError {
	if !models.IsValidPriority(p) {
		return []models.FieldError{{Field: "priority", Message: fmt.Sprintf("Invalid priority value %q", p)}}
	}
	return nil
}
