// SPDX-License-Identifier: MPL-2.0

package romap

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongKeyType is the sentinel error wrapped by WrongKeyTypeError.
	ErrWrongKeyType = errors.New("wrong key type")
	// ErrNotMapping is the sentinel error wrapped by NotMappingError.
	ErrNotMapping = errors.New("not a mapping")
	// ErrKeyNotFound is the sentinel error wrapped by KeyNotFoundError.
	ErrKeyNotFound = errors.New("key not found")
	// ErrReadOnly is the sentinel error wrapped by ReadOnlyEntryError.
	ErrReadOnly = errors.New("entry is read-only")
	// ErrAdditionNotAllowed is the sentinel error wrapped by AdditionNotAllowedError.
	ErrAdditionNotAllowed = errors.New("addition not allowed")
	// ErrDeletionNotAllowed is the sentinel error wrapped by DeletionNotAllowedError.
	ErrDeletionNotAllowed = errors.New("deletion not allowed")
)

type (
	// WrongKeyTypeError is returned when a construction source carries keys
	// that are not strings. It wraps ErrWrongKeyType for errors.Is() compatibility.
	WrongKeyTypeError struct {
		Key any
	}

	// NotMappingError is returned when a construction source is not a
	// mapping-like value. It wraps ErrNotMapping for errors.Is() compatibility.
	NotMappingError struct {
		Value any
	}

	// KeyNotFoundError is returned when a read or delete targets a key that
	// does not exist. It wraps ErrKeyNotFound for errors.Is() compatibility.
	KeyNotFoundError struct {
		Key string
	}

	// ReadOnlyEntryError is returned when a normal-mode write targets a
	// protected entry. It wraps ErrReadOnly for errors.Is() compatibility.
	ReadOnlyEntryError struct {
		Key string
	}

	// AdditionNotAllowedError is returned when a normal-mode write targets a
	// key that does not exist. New entries can only be created at construction
	// or through an underscore-prefixed key. It wraps ErrAdditionNotAllowed
	// for errors.Is() compatibility.
	AdditionNotAllowedError struct {
		Key string
	}

	// DeletionNotAllowedError is returned when a normal-mode delete targets an
	// existing entry. Entries can only be removed through an underscore-prefixed
	// key. It wraps ErrDeletionNotAllowed for errors.Is() compatibility.
	DeletionNotAllowedError struct {
		Key string
	}
)

// Error implements the error interface for WrongKeyTypeError.
func (e *WrongKeyTypeError) Error() string {
	return fmt.Sprintf("wrong key %v (%T): only string keys are supported", e.Key, e.Key)
}

// Unwrap returns ErrWrongKeyType for errors.Is() compatibility.
func (e *WrongKeyTypeError) Unwrap() error { return ErrWrongKeyType }

// Error implements the error interface for NotMappingError.
func (e *NotMappingError) Error() string {
	return fmt.Sprintf("unsupported source type %T: not a mapping", e.Value)
}

// Unwrap returns ErrNotMapping for errors.Is() compatibility.
func (e *NotMappingError) Unwrap() error { return ErrNotMapping }

// Error implements the error interface for KeyNotFoundError.
func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("entry %q doesn't exist", e.Key)
}

// Unwrap returns ErrKeyNotFound for errors.Is() compatibility.
func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// Error implements the error interface for ReadOnlyEntryError.
func (e *ReadOnlyEntryError) Error() string {
	return fmt.Sprintf("entry %q is read-only", e.Key)
}

// Unwrap returns ErrReadOnly for errors.Is() compatibility.
func (e *ReadOnlyEntryError) Unwrap() error { return ErrReadOnly }

// Error implements the error interface for AdditionNotAllowedError.
func (e *AdditionNotAllowedError) Error() string {
	return fmt.Sprintf("adding new entry %q is not allowed", e.Key)
}

// Unwrap returns ErrAdditionNotAllowed for errors.Is() compatibility.
func (e *AdditionNotAllowedError) Unwrap() error { return ErrAdditionNotAllowed }

// Error implements the error interface for DeletionNotAllowedError.
func (e *DeletionNotAllowedError) Error() string {
	return fmt.Sprintf("deleting entry %q is not allowed", e.Key)
}

// Unwrap returns ErrDeletionNotAllowed for errors.Is() compatibility.
func (e *DeletionNotAllowedError) Unwrap() error { return ErrDeletionNotAllowed }
