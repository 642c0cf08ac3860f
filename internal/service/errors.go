package service

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("user not authorized")
	ErrUnauthorized          = errors.New("invalid or expired token")
	ErrPublicResultsDisabled = errors.New("public access not enabled")
	ErrDuplicateEmail        = errors.New("user already exists")
	ErrDuplicateUsername     = errors.New("username already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("incorrect password")
)

// ValidationError reports every problem found in one input, not just the first.
// Missing lists the text of required questions left unanswered.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing answers for required questions: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, strings.Join(e.Invalid, "; "))
	}
	if len(parts) == 0 {
		return "invalid input"
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Invalid = append(e.Invalid, fmt.Sprintf(format, args...))
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

// parseID converts a path identifier; malformed ids resolve like missing records
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
