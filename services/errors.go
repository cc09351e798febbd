package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"hotel-pms/stores"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Err returns nil when no field failed.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(v.Fields[k], ", "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// PreconditionError reports a request that is well formed but not allowed in
// the current state, like deleting a guest that still has reservations.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func precondition(format string, args ...any) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type domainError struct {
	msg  string
	kind error
}

func (e *domainError) Error() string        { return e.msg }
func (e *domainError) Is(target error) bool { return target == e.kind }

func notFound(what string) error {
	return &domainError{msg: what + " not found", kind: ErrNotFound}
}

func conflict(format string, args ...any) error {
	return &domainError{msg: fmt.Sprintf(format, args...), kind: ErrConflict}
}

// storeErr converts store sentinels into service errors for entity what.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, stores.ErrNotFound):
		return notFound(what)
	case errors.Is(err, stores.ErrDuplicate):
		return conflict("%s already exists", what)
	case errors.Is(err, stores.ErrForeignKey):
		return conflict("%s is still referenced by other records", what)
	}
	return err
}
