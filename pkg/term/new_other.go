//go:build !unix

package term

import "errors"

// New returns the platform driver attached to the process terminal.
func New() (Driver, error) {
	return nil, errors.New("term: no terminal driver for this platform")
}

// NewInline returns a platform driver that enables raw mode but leaves
// the primary screen alone.
func NewInline() (Driver, error) {
	return nil, errors.New("term: no terminal driver for this platform")
}
