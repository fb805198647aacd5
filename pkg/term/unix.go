//go:build unix

package term

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// UnixDriver drives a real terminal over stdin/stdout using termios raw
// mode and poll-based input readiness.
type UnixDriver struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int

	oldState  *term.State
	writer    *bufio.Writer
	pending   []byte
	initDone  bool
	altScreen bool
}

// NewUnixDriver returns a driver attached to the process stdin/stdout.
func NewUnixDriver() *UnixDriver {
	return &UnixDriver{
		in:        os.Stdin,
		out:       os.Stdout,
		inFd:      int(os.Stdin.Fd()),
		outFd:     int(os.Stdout.Fd()),
		writer:    bufio.NewWriterSize(os.Stdout, 32*1024),
		altScreen: true,
	}
}

// Init enables raw mode, enters the alternate screen, hides the cursor,
// and clears the display.
func (d *UnixDriver) Init() error {
	if !d.IsInteractive() {
		return ErrNotInteractive
	}

	old, err := term.MakeRaw(d.inFd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	d.oldState = old
	d.initDone = true

	if d.altScreen {
		d.writer.WriteString(EnterAltScreen)
		d.writer.WriteString(HideCursor)
		d.writer.WriteString(ClearScreen)
		d.writer.WriteString(CursorHome)
	}
	return d.writer.Flush()
}

// Cleanup restores the terminal. Safe to call more than once.
func (d *UnixDriver) Cleanup() error {
	if !d.initDone {
		return nil
	}
	d.initDone = false

	d.writer.WriteString(ResetStyle)
	if d.altScreen {
		d.writer.WriteString(ShowCursor)
		d.writer.WriteString(ExitAltScreen)
	}
	flushErr := d.writer.Flush()

	if d.oldState != nil {
		if err := term.Restore(d.inFd, d.oldState); err != nil {
			return fmt.Errorf("restore terminal: %w", err)
		}
		d.oldState = nil
	}
	return flushErr
}

// Size queries the terminal dimensions via TIOCGWINSZ.
func (d *UnixDriver) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(d.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// ReadByte pops one pending input byte without blocking.
func (d *UnixDriver) ReadByte() (byte, bool) {
	if len(d.pending) == 0 {
		d.fill()
	}
	if len(d.pending) == 0 {
		return 0, false
	}
	b := d.pending[0]
	d.pending = d.pending[1:]
	return b, true
}

// HasInput reports whether a byte is pending.
func (d *UnixDriver) HasInput() bool {
	if len(d.pending) > 0 {
		return true
	}
	return d.poll(0)
}

// WaitInput blocks until input arrives or timeout elapses.
func (d *UnixDriver) WaitInput(timeout time.Duration) bool {
	if len(d.pending) > 0 {
		return true
	}
	return d.poll(timeout)
}

// Write buffers p for output.
func (d *UnixDriver) Write(p []byte) (int, error) {
	return d.writer.Write(p)
}

// Flush pushes buffered output to the terminal.
func (d *UnixDriver) Flush() error {
	return d.writer.Flush()
}

// IsInteractive reports whether stdin and stdout are terminals.
func (d *UnixDriver) IsInteractive() bool {
	return term.IsTerminal(d.inFd) && term.IsTerminal(d.outFd)
}

// poll waits up to timeout for readable input on stdin. EINTR retries
// within the deadline.
func (d *UnixDriver) poll(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		remaining := int(time.Until(deadline) / time.Millisecond)
		if timeout == 0 {
			remaining = 0
		} else if remaining < 0 {
			return false
		}

		fds := []unix.PollFd{{Fd: int32(d.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, remaining)
		if err != nil {
			if err == unix.EINTR {
				if timeout == 0 {
					return false
				}
				continue
			}
			return false
		}
		return n > 0
	}
}

// fill drains whatever the terminal has ready into the pending buffer
// without blocking.
func (d *UnixDriver) fill() {
	if !d.poll(0) {
		return
	}
	buf := make([]byte, 256)
	n, err := unix.Read(d.inFd, buf)
	if err != nil || n <= 0 {
		return
	}
	d.pending = append(d.pending, buf[:n]...)
}
