package app

import (
	"time"

	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/keymap"
)

// Fallback dimensions used when the driver cannot report a size.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// DefaultFrameRate is the paced render rate in frames per second.
const DefaultFrameRate = 30

// Config holds the engine tunables. The zero value selects defaults.
type Config struct {
	// FrameRate is the paced render rate in frames per second,
	// clamped to [1, 120]. Defaults to 30.
	FrameRate int

	// DecodeTimeout is how long the decoder waits for the remainder of
	// an escape sequence. Defaults to decode.DefaultTimeout.
	DecodeTimeout time.Duration

	// Table overrides the key sequence table. Defaults to the standard
	// table.
	Table *decode.Table
}

// normalize fills defaults and clamps out-of-range values.
func (c Config) normalize() Config {
	if c.FrameRate <= 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.FrameRate < keymap.MinFrameRate {
		c.FrameRate = keymap.MinFrameRate
	}
	if c.FrameRate > keymap.MaxFrameRate {
		c.FrameRate = keymap.MaxFrameRate
	}
	if c.DecodeTimeout <= 0 {
		c.DecodeTimeout = decode.DefaultTimeout
	}
	if c.Table == nil {
		c.Table = decode.Default()
	}
	return c
}

// interval returns the frame duration for the configured rate.
func (c Config) interval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
