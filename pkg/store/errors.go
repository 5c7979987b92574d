package store

import "fmt"

// ValidationError wraps a schema-constraint failure on write.
type ValidationError struct {
	Collection string
	Err        error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: %s: invalid document: %v", e.Collection, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a patch or lookup against a missing id.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("store: %s: no document with id %q", e.Collection, e.ID)
}

// DuplicateKeyError reports an insert colliding with an existing id.
type DuplicateKeyError struct {
	Collection string
	ID         string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("store: %s: id %q already exists", e.Collection, e.ID)
}
