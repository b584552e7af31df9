// Package animator implements the stepwise LED strip animation engine.
//
// An Animator owns a fixed size pixel buffer and one cursor per effect. Each
// effect exposes a run method that advances its own cursor by a bounded number
// of ticks, where a tick computes a frame, writes it into the buffer, pushes it
// to the Driver and then sleeps on the Clock. Nothing runs in the background:
// the caller decides which effect to advance next.
package animator

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"libdb.so/neoglow/internal/led"
)

// Driver is the hardware sink an Animator pushes frames into. The animator
// never inspects what a Driver does with the pixels.
type Driver interface {
	// SetPixel sets the color of a single pixel. Out of range indices must be
	// ignored.
	SetPixel(i int, c led.RGBColor)
	// Fill sets every pixel to the given color.
	Fill(c led.RGBColor)
	// Show pushes the current pixels to the hardware.
	Show() error
	// SetBrightness sets the global brightness level, 0 being off and 255
	// being full brightness.
	SetBrightness(level uint8) error
}

// Animator drives a single LED strip.
type Animator struct {
	leds   led.LEDs
	driver Driver
	clock  Clock
	rand   *rand.Rand
	logger *slog.Logger
	state  State
}

// Option configures an Animator.
type Option func(*Animator)

// WithClock sets the clock used to wait between frames. The default is
// SystemClock.
func WithClock(clock Clock) Option {
	return func(a *Animator) { a.clock = clock }
}

// WithRand sets the random source used by the sparkle effect.
func WithRand(r *rand.Rand) Option {
	return func(a *Animator) { a.rand = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Animator) { a.logger = logger }
}

// WithState restores previously saved effect cursors.
func WithState(state State) Option {
	return func(a *Animator) { a.state = state }
}

// New creates a new Animator for a strip of numLEDs pixels. It panics if
// numLEDs is not positive.
func New(numLEDs int, driver Driver, opts ...Option) *Animator {
	if numLEDs < 1 {
		panic("animator: numLEDs must be positive")
	}

	a := &Animator{
		leds:   led.NewLEDs(numLEDs),
		driver: driver,
		clock:  SystemClock{},
		logger: slog.Default(),
		state:  NewState(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rand == nil {
		a.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

// Len returns the number of pixels in the strip.
func (a *Animator) Len() int {
	return len(a.leds)
}

// Pixels returns a copy of the current pixel buffer.
func (a *Animator) Pixels() led.LEDs {
	return a.leds.Clone()
}

// State returns a copy of the effect cursors.
func (a *Animator) State() State {
	return a.state
}

// SetPixel sets a single pixel in both the buffer and the driver. Out of range
// indices are ignored.
func (a *Animator) SetPixel(i int, c led.RGBColor) {
	if i < 0 || i >= len(a.leds) {
		return
	}
	a.leds[i] = c
	a.driver.SetPixel(i, c)
}

// Fill sets every pixel to c without showing it.
func (a *Animator) Fill(c led.RGBColor) {
	a.leds.Fill(c)
	a.driver.Fill(c)
}

// Show pushes the buffer to the driver.
func (a *Animator) Show() error {
	if err := a.driver.Show(); err != nil {
		return errors.Wrap(err, "failed to show frame")
	}
	return nil
}

// SetBrightness sets the global brightness of the strip.
func (a *Animator) SetBrightness(level uint8) error {
	a.logger.Debug("setting brightness", "level", level)
	if err := a.driver.SetBrightness(level); err != nil {
		return errors.Wrap(err, "failed to set brightness")
	}
	return nil
}

// SetAll fills the strip with c and shows it immediately. It is safe to call
// at any time, whichever effect ran last, and is what callers use to turn the
// strip off on exit.
func (a *Animator) SetAll(c led.RGBColor) error {
	a.Fill(c)
	return a.Show()
}

// Wait sleeps for d on the animator's clock.
func (a *Animator) Wait(d time.Duration) {
	a.clock.Sleep(d)
}

// frame shows the buffer and waits for the tick's interval.
func (a *Animator) frame(wait time.Duration) error {
	if err := a.Show(); err != nil {
		return err
	}
	a.clock.Sleep(wait)
	return nil
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
