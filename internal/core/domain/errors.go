package domain

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates every failure the contact operations can report.
type ErrorKind int

const (
	KindMissingField ErrorKind = iota + 1
	KindMissingPrimaryReference
	KindNotFound
	KindDuplicateKey
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindMissingPrimaryReference:
		return "missing_primary_reference"
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the structured error returned by the validation gate and the
// contact store. Two errors match under errors.Is when their kinds match.
type Error struct {
	Kind      ErrorKind
	ContactID string
	Field     string
	Err       error
}

// Sentinels for errors.Is checks.
var (
	ErrMissingField            = &Error{Kind: KindMissingField}
	ErrMissingPrimaryReference = &Error{Kind: KindMissingPrimaryReference}
	ErrContactNotFound         = &Error{Kind: KindNotFound}
	ErrDuplicateContact        = &Error{Kind: KindDuplicateKey}
	ErrStorage                 = &Error{Kind: KindStorage}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		if e.Field != "" {
			return "missing required field: " + e.Field
		}
		return "missing required fields"
	case KindMissingPrimaryReference:
		return "secondary contact must have a primaryContactId"
	case KindNotFound:
		if e.ContactID != "" {
			return fmt.Sprintf("contact %q not found", e.ContactID)
		}
		return "contact not found"
	}
	// Store faults surface the driver's message as is.
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind == KindDuplicateKey {
		return fmt.Sprintf("contact %q already exists", e.ContactID)
	}
	return "storage error"
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NotFound builds a KindNotFound error for contactID.
func NotFound(contactID string) error {
	return &Error{Kind: KindNotFound, ContactID: contactID}
}

// DuplicateKey builds a KindDuplicateKey error wrapping the store cause.
func DuplicateKey(contactID string, cause error) error {
	return &Error{Kind: KindDuplicateKey, ContactID: contactID, Err: cause}
}

// Storage wraps an unclassified store fault.
func Storage(contactID string, cause error) error {
	return &Error{Kind: KindStorage, ContactID: contactID, Err: cause}
}

// KindOf reports the kind of err, or 0 when err is not a domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
