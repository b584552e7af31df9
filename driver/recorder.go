package driver

import (
	"sync"

	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/internal/led"
)

// Recorder is a Driver that keeps every shown frame in memory.
type Recorder struct {
	mu     sync.Mutex
	frame  frame
	frames []led.LEDs
	err    error
}

var _ animator.Driver = (*Recorder)(nil)

// NewRecorder creates a new Recorder for numLEDs pixels.
func NewRecorder(numLEDs int) *Recorder {
	return &Recorder{frame: newFrame(numLEDs)}
}

// FailWith makes every following Show and SetBrightness call return err. A nil
// err makes them succeed again.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// SetPixel implements animator.Driver.
func (r *Recorder) SetPixel(i int, c led.RGBColor) {
	r.mu.Lock()
	r.frame.SetPixel(i, c)
	r.mu.Unlock()
}

// Fill implements animator.Driver.
func (r *Recorder) Fill(c led.RGBColor) {
	r.mu.Lock()
	r.frame.Fill(c)
	r.mu.Unlock()
}

// Show records the current pixels with the brightness applied.
func (r *Recorder) Show() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, r.frame.dimmed())
	return nil
}

// SetBrightness implements animator.Driver.
func (r *Recorder) SetBrightness(level uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.frame.brightness = level
	return nil
}

// Brightness returns the current brightness level.
func (r *Recorder) Brightness() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame.brightness
}

// Frames returns all frames shown so far.
func (r *Recorder) Frames() []led.LEDs {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := make([]led.LEDs, len(r.frames))
	copy(frames, r.frames)
	return frames
}

// LastFrame returns the last shown frame, or nil if nothing was shown yet.
func (r *Recorder) LastFrame() led.LEDs {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// Reset forgets all recorded frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.frames = nil
	r.mu.Unlock()
}
