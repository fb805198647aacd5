package keymap

import (
	"errors"

	"github.com/google/uuid"
)

// Common keymap errors
var (
	// ErrBindingNotFound is returned when a binding cannot be found
	ErrBindingNotFound = errors.New("binding not found")
	// ErrInvalidGuard is returned when a when-condition fails to compile
	ErrInvalidGuard = errors.New("invalid guard expression")
	// ErrUnsafeGuard is returned when a when-condition references blocked identifiers
	ErrUnsafeGuard = errors.New("unsafe guard expression")
)

// BindingID is a unique identifier for a registered binding
type BindingID string

// String returns the string representation of the BindingID
func (b BindingID) String() string {
	return string(b)
}

// NewBindingID generates a new unique BindingID
func NewBindingID() BindingID {
	return BindingID(uuid.New().String())
}
