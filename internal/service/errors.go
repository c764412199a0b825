package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

const (
	FieldName     = "name"
	FieldQuantity = "quantity"
)

// ValidationError points at the offending line of a shopping list.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("items[%d].%s: %s", e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}
