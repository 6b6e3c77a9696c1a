package database

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped into a StoreError when an update targets an id
// with no matching row. Reads use the explicit (nil, nil) contract instead.
var ErrNotFound = errors.New("record not found")

// StoreError is returned by every repository operation that fails at the
// store. The underlying store message is preserved for the user-facing
// error surface.
type StoreError struct {
	Op    string // "list", "get", "create", "update", "upsert", "delete"
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a StoreError caused by a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
