package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	// ErrInvalidArgument marks a negative or malformed calculator input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorage marks a failure of the input store medium or its data.
	ErrStorage = errors.New("storage error")
)

// StorageError wraps an input store failure with the operation and slot key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s %s", e.Op, ErrStorage)
	if e.Key != "" {
		base += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) hold for every StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
