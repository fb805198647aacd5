//go:build unix

package term

// New returns the platform driver attached to the process terminal.
func New() (Driver, error) {
	return NewUnixDriver(), nil
}

// NewInline returns a platform driver that enables raw mode but leaves
// the primary screen alone. Output scrolls like normal terminal output,
// which suits line-oriented tools that should not clear the display.
func NewInline() (Driver, error) {
	d := NewUnixDriver()
	d.altScreen = false
	return d, nil
}
