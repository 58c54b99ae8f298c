package db

import (
	"errors"
	"fmt"
)

// Sentinel store errors. Repositories wrap these with entity-specific
// messages; the HTTP layer matches on them with errors.Is to pick a
// status code without inspecting message text.
var (
	// ErrNotFound is returned when an entity does not exist, or exists
	// but is not owned by the caller where ownership is required.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on uniqueness violations: duplicate
	// follow edges, duplicate competition entries, duplicate exercise
	// names, duplicate usernames/emails.
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument is returned on business-rule violations beyond
	// primitive shape: self-follow, non-positive entry value, closed
	// competition window.
	ErrInvalidArgument = errors.New("invalid argument")
)

func notFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
