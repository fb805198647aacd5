package term

import (
	"bytes"
	"time"
)

// VirtualDriver is an in-memory driver for tests and non-interactive
// use. Input is fed as byte scripts; output is captured verbatim.
type VirtualDriver struct {
	width  int
	height int

	queue    []byte
	arrivals [][]byte
	out      bytes.Buffer

	sizeErr     error
	interactive bool

	InitCalls    int
	CleanupCalls int
}

// NewVirtualDriver returns a virtual driver with the given dimensions.
func NewVirtualDriver(width, height int) *VirtualDriver {
	return &VirtualDriver{width: width, height: height, interactive: true}
}

// Feed appends bytes to the pending input queue.
func (d *VirtualDriver) Feed(p []byte) {
	d.queue = append(d.queue, p...)
}

// FeedString appends a string to the pending input queue.
func (d *VirtualDriver) FeedString(s string) {
	d.Feed([]byte(s))
}

// FeedLater schedules a chunk that becomes available during the next
// WaitInput call, modeling bytes that arrive mid-sequence.
func (d *VirtualDriver) FeedLater(p []byte) {
	d.arrivals = append(d.arrivals, p)
}

// SetSize changes the reported dimensions.
func (d *VirtualDriver) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// FailSize makes Size return err until called with nil.
func (d *VirtualDriver) FailSize(err error) {
	d.sizeErr = err
}

// SetInteractive controls the IsInteractive report.
func (d *VirtualDriver) SetInteractive(v bool) {
	d.interactive = v
}

// Output returns everything written since the last reset.
func (d *VirtualDriver) Output() string {
	return d.out.String()
}

// ResetOutput discards captured output.
func (d *VirtualDriver) ResetOutput() {
	d.out.Reset()
}

// Init records the call. Like the real driver it refuses
// non-interactive sessions; the virtual terminal has no other modes to
// toggle.
func (d *VirtualDriver) Init() error {
	if !d.interactive {
		return ErrNotInteractive
	}
	d.InitCalls++
	return nil
}

// Cleanup records the call.
func (d *VirtualDriver) Cleanup() error {
	d.CleanupCalls++
	return nil
}

// Size returns the configured dimensions or the injected error.
func (d *VirtualDriver) Size() (int, int, error) {
	if d.sizeErr != nil {
		return 0, 0, d.sizeErr
	}
	return d.width, d.height, nil
}

// ReadByte pops one pending byte.
func (d *VirtualDriver) ReadByte() (byte, bool) {
	if len(d.queue) == 0 {
		return 0, false
	}
	b := d.queue[0]
	d.queue = d.queue[1:]
	return b, true
}

// HasInput reports whether a byte is pending.
func (d *VirtualDriver) HasInput() bool {
	return len(d.queue) > 0
}

// WaitInput reports readiness immediately; scheduled arrivals become
// pending on the first wait, standing in for the real driver's poll.
func (d *VirtualDriver) WaitInput(timeout time.Duration) bool {
	if len(d.queue) > 0 {
		return true
	}
	if len(d.arrivals) > 0 {
		d.queue = append(d.queue, d.arrivals[0]...)
		d.arrivals = d.arrivals[1:]
		return true
	}
	return false
}

// Write captures p.
func (d *VirtualDriver) Write(p []byte) (int, error) {
	return d.out.Write(p)
}

// Flush is a no-op; virtual output is unbuffered.
func (d *VirtualDriver) Flush() error {
	return nil
}

// IsInteractive reports the configured flag.
func (d *VirtualDriver) IsInteractive() bool {
	return d.interactive
}
