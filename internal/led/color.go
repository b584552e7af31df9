// Package led contains the color and pixel buffer types shared by the
// animator, the drivers and the firmware.
package led

import (
	"encoding"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// RGBColor is a single pixel color, one byte per channel in R, G, B order.
type RGBColor [3]uint8

// RGB creates a new RGBColor.
func RGB(r, g, b uint8) RGBColor {
	return RGBColor{r, g, b}
}

// R returns the red channel.
func (c RGBColor) R() uint8 { return c[0] }

// G returns the green channel.
func (c RGBColor) G() uint8 { return c[1] }

// B returns the blue channel.
func (c RGBColor) B() uint8 { return c[2] }

// IsOff returns true if every channel is zero.
func (c RGBColor) IsOff() bool { return c == Off }

// Hex returns the color as a #rrggbb string.
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// String implements fmt.Stringer.
func (c RGBColor) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c[0], c[1], c[2])
}

// Palette colors.
var (
	Off     = RGBColor{0, 0, 0}
	Red     = RGBColor{255, 0, 0}
	Green   = RGBColor{0, 255, 0}
	Blue    = RGBColor{0, 0, 255}
	White   = RGBColor{255, 255, 255}
	Orange  = RGBColor{255, 120, 0}
	Cyan    = RGBColor{0, 255, 200}
	Magenta = RGBColor{255, 0, 180}
)

var namedColors = map[string]RGBColor{
	"off":     Off,
	"black":   Off,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"white":   White,
	"orange":  Orange,
	"cyan":    Cyan,
	"magenta": Magenta,
}

var (
	_ encoding.TextUnmarshaler = (*RGBColor)(nil)
	_ encoding.TextMarshaler   = RGBColor{}
)

// ParseColor parses either a palette name or a #rrggbb (or #rgb) hex string.
func ParseColor(s string) (RGBColor, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Off, errors.Wrapf(err, "invalid color %q", s)
	}

	r, g, b := c.RGB255()
	return RGBColor{r, g, b}, nil
}

func (c *RGBColor) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c RGBColor) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}
