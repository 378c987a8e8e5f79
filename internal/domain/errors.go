package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrMissingRequiredField = errors.New("missing required field")
)

// MissingFieldError lists the required fields that were blank in a submission.
// It matches ErrMissingRequiredField with errors.Is.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "please fill all required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// RequireFields returns a *MissingFieldError naming every blank value, or nil when all are set.
// Values are checked in the order given; names and values are paired by position.
func RequireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingFieldError{Fields: missing}
}
