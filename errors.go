package storage

import (
	// Standard Library Imports
	"fmt"

	// External Imports
	"github.com/pkg/errors"
)

var (
	// ErrValidation is returned when a caller supplies a filter or argument
	// that violates a precondition. It is returned before storage is touched.
	ErrValidation = errors.New("validation failed")

	// ErrAmbiguousResult is returned when a single-record lookup matches more
	// than one record.
	ErrAmbiguousResult = errors.New("more than one record matched")

	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage failure")

	// ErrResourceExists is returned when a record conflicts with a unique
	// index on insert.
	ErrResourceExists = errors.New("resource conflicts with an existing resource")
)

// StorageError reports a connectivity, serialization or backend failure for an
// operation against a collection.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports true for ErrStorage so callers can match any backend failure.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err as a StorageError, or returns nil if err is nil.
func NewStorageError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Collection: collection, Err: err}
}

// NewValidationError annotates ErrValidation with the offending argument.
func NewValidationError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}
