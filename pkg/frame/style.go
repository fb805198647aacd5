// Package frame holds the double-buffered cell grid and the diffing
// renderer that reconciles it against the terminal with minimal writes.
package frame

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects how a Color is encoded on the wire.
type ColorMode uint8

const (
	// ColorModeDefault uses the terminal's default color.
	ColorModeDefault ColorMode = iota
	// ColorMode256 uses the 256-color palette.
	ColorMode256
	// ColorModeRGB uses 24-bit truecolor.
	ColorModeRGB
)

// Color is a terminal color: the default, a palette index, or RGB.
// The zero value is the terminal default.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

// RGB returns a truecolor Color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorModeRGB, R: r, G: g, B: b}
}

// Indexed returns a 256-palette Color.
func Indexed(i uint8) Color {
	return Color{Mode: ColorMode256, Index: i}
}

// ParseColor parses a color definition: "default" (or empty) for the
// terminal default, "#rgb"/"#rrggbb" hex, or a 0-255 palette index.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "default":
		return Color{}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return Color{}, fmt.Errorf("invalid color %q: want \"default\", \"#rrggbb\", or 0-255", s)
	}
	return Indexed(uint8(n)), nil
}

// String renders the color in the form ParseColor accepts: "default",
// "#rrggbb", or a palette index.
func (c Color) String() string {
	switch c.Mode {
	case ColorMode256:
		return strconv.Itoa(int(c.Index))
	case ColorModeRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// sgr appends the color's SGR parameters. fg selects the
// foreground/background parameter space.
func (c Color) sgr(parts []string, fg bool) []string {
	base := "48"
	if fg {
		base = "38"
	}
	switch c.Mode {
	case ColorMode256:
		return append(parts, base+";5;"+strconv.Itoa(int(c.Index)))
	case ColorModeRGB:
		return append(parts, base+";2;"+strconv.Itoa(int(c.R))+";"+strconv.Itoa(int(c.G))+";"+strconv.Itoa(int(c.B)))
	default:
		return parts
	}
}

// Attr is a set of text attributes.
type Attr uint8

const (
	// AttrBold renders bold/bright text.
	AttrBold Attr = 1 << iota
	// AttrDim renders faint text.
	AttrDim
	// AttrItalic renders italic text.
	AttrItalic
	// AttrUnderline underlines text.
	AttrUnderline
	// AttrBlink renders blinking text.
	AttrBlink
	// AttrReverse swaps foreground and background.
	AttrReverse
)

// Has returns true if a contains attr.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// Style is the full visual state of a cell. The zero value is the
// terminal's default rendition.
type Style struct {
	Fg   Color
	Bg   Color
	Attr Attr
}

// StyleDefault is the terminal's default rendition.
var StyleDefault = Style{}

// Bold returns the style with bold added.
func (s Style) Bold() Style { s.Attr |= AttrBold; return s }

// Dim returns the style with dim added.
func (s Style) Dim() Style { s.Attr |= AttrDim; return s }

// Italic returns the style with italic added.
func (s Style) Italic() Style { s.Attr |= AttrItalic; return s }

// Underline returns the style with underline added.
func (s Style) Underline() Style { s.Attr |= AttrUnderline; return s }

// Reverse returns the style with reverse video added.
func (s Style) Reverse() Style { s.Attr |= AttrReverse; return s }

// Foreground returns the style with fg as foreground.
func (s Style) Foreground(c Color) Style { s.Fg = c; return s }

// Background returns the style with c as background.
func (s Style) Background(c Color) Style { s.Bg = c; return s }

// sgrParams in attribute declaration order.
var attrParams = []struct {
	attr  Attr
	param string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
}

// Sequence renders the style as one combined SGR sequence. The
// sequence opens with a reset so it fully replaces the previous
// rendition.
func (s Style) Sequence() string {
	parts := make([]string, 0, 4)
	parts = append(parts, "0")
	for _, ap := range attrParams {
		if s.Attr.Has(ap.attr) {
			parts = append(parts, ap.param)
		}
	}
	parts = s.Fg.sgr(parts, true)
	parts = s.Bg.sgr(parts, false)
	return "\x1b[" + strings.Join(parts, ";") + "m"
}
