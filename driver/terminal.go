package driver

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/internal/led"
)

// Terminal is a Driver that renders the strip as a single line of 24-bit
// colored blocks, redrawn in place on every Show.
type Terminal struct {
	w     io.Writer
	frame frame
}

var _ animator.Driver = (*Terminal)(nil)

// NewTerminal creates a new Terminal driver writing to w.
func NewTerminal(w io.Writer, numLEDs int) *Terminal {
	return &Terminal{
		w:     w,
		frame: newFrame(numLEDs),
	}
}

// SetPixel implements animator.Driver.
func (t *Terminal) SetPixel(i int, c led.RGBColor) { t.frame.SetPixel(i, c) }

// Fill implements animator.Driver.
func (t *Terminal) Fill(c led.RGBColor) { t.frame.Fill(c) }

// SetBrightness implements animator.Driver.
func (t *Terminal) SetBrightness(level uint8) error {
	t.frame.brightness = level
	return nil
}

// Show implements animator.Driver.
func (t *Terminal) Show() error {
	bw := bufio.NewWriter(t.w)
	bw.WriteByte('\r')
	for _, c := range t.frame.dimmed() {
		fmt.Fprintf(bw, "\x1b[48;2;%d;%d;%dm  ", c.R(), c.G(), c.B())
	}
	bw.WriteString("\x1b[0m")

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write frame to terminal")
	}
	return nil
}
