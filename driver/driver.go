// Package driver contains the animator.Driver implementations: a serial
// driver talking to a strip controller, a terminal renderer and an in-memory
// recorder.
package driver

import "libdb.so/neoglow/internal/led"

// frame is the pixel buffer shared by all drivers. Pixels are kept at full
// brightness and dimmed only when shown.
type frame struct {
	leds       led.LEDs
	brightness uint8
}

func newFrame(numLEDs int) frame {
	return frame{
		leds:       led.NewLEDs(numLEDs),
		brightness: 255,
	}
}

// SetPixel implements animator.Driver.
func (f *frame) SetPixel(i int, c led.RGBColor) {
	f.leds.Set(i, c)
}

// Fill implements animator.Driver.
func (f *frame) Fill(c led.RGBColor) {
	f.leds.Fill(c)
}

// dimmed returns a copy of the buffer with the brightness applied.
func (f *frame) dimmed() led.LEDs {
	out := led.NewLEDs(len(f.leds))
	led.DimAll(out, f.leds, f.brightness)
	return out
}
