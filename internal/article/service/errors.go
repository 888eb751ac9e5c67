package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no article exists for the requested slug.
	ErrNotFound = errors.New("article not found")
	// ErrForbidden means the viewer is authenticated but is not the author.
	ErrForbidden = errors.New("not the article author")
	// ErrConflict means a unique slug could not be assigned even after
	// suffix retries.
	ErrConflict = errors.New("slug conflict")
)

// ValidationError lists the fields that were missing or empty. It is
// returned before any store write happens.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or empty fields: %s", strings.Join(e.Missing, ", "))
}
