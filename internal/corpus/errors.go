package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id or name has no matching record
	ErrNotFound = errors.New("not found")
	// ErrIntegrity marks a corpus that violates its referential or ordering rules
	ErrIntegrity = errors.New("corpus integrity violation")
)

// LookupError describes a failed lookup
type LookupError struct {
	Kind string // book, chapter, title, content
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Unwrap lets errors.Is match ErrNotFound
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

func notFound(kind string, key fmt.Stringer) error {
	return &LookupError{Kind: kind, Key: key.String()}
}

func integrity(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}
