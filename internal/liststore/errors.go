package liststore

import (
	"errors"
	"fmt"
)

var (
	ErrBlankName       = errors.New("list name is required")
	ErrNoItems         = errors.New("add at least one item to the list")
	ErrBlankItemName   = errors.New("item name is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrDuplicateItemID = errors.New("duplicate item id")
)

// ValidationError marks user-correctable input problems. Callers show these as
// notifications; they are never logged.
type ValidationError struct {
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
