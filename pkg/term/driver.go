// Package term abstracts the physical terminal behind a small driver
// contract: raw byte input with readiness waits, buffered output, size
// queries, and raw-mode/alternate-screen lifecycle. One implementation
// talks to a real Unix terminal, one is an in-memory virtual terminal
// for tests.
package term

import (
	"errors"
	"time"
)

// ErrNotInteractive is returned by Init when stdin/stdout is not a
// terminal.
var ErrNotInteractive = errors.New("not an interactive terminal")

// Driver is the terminal I/O contract the engine runs against.
type Driver interface {
	// Init enables raw mode, switches to the alternate screen buffer,
	// hides the cursor, and clears the display.
	Init() error

	// Cleanup restores the terminal. It is idempotent and must be run
	// on every exit path, including error paths.
	Cleanup() error

	// Size returns the current terminal dimensions in cells.
	Size() (width, height int, err error)

	// ReadByte returns the next pending input byte without blocking.
	// ok is false when nothing is pending.
	ReadByte() (b byte, ok bool)

	// HasInput reports whether at least one byte is pending.
	HasInput() bool

	// WaitInput blocks until input is pending or the timeout elapses,
	// reporting whether input is pending.
	WaitInput(timeout time.Duration) bool

	// Write buffers p for output.
	Write(p []byte) (int, error)

	// Flush pushes buffered output to the terminal.
	Flush() error

	// IsInteractive reports whether the driver is attached to a real
	// terminal.
	IsInteractive() bool
}
