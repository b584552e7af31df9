package animator

// State holds the cursor of every stepwise effect. Each effect only ever
// touches its own fields, so switching between effects resumes each one where
// it left off.
type State struct {
	// RainbowStep is the base hue offset, 0 to 254.
	RainbowStep int
	// TheaterPhase is the chase phase, 0 to 2.
	TheaterPhase int
	// CometHead is the position of the comet's head.
	CometHead int
	// CometDir is the direction the head moves in, +1 or -1. Zero is
	// treated as +1.
	CometDir int
	// BreatheStep is the step within the current breathing period.
	BreatheStep int
}

// NewState returns the cursors as they are at startup.
func NewState() State {
	return State{CometDir: 1}
}

// wrap returns v modulo n in [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
