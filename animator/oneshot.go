package animator

import (
	"time"

	"libdb.so/neoglow/internal/led"
)

// The one-shot effects below run to completion and block for their whole
// length. They use local cursors and leave State untouched.

// RainbowCycle runs a smooth rainbow across the strip for the given number of
// full wheel rotations.
func (a *Animator) RainbowCycle(wait time.Duration, cycles int) error {
	for step := 0; step < led.WheelPeriod*cycles; step++ {
		a.drawRainbow(step)
		if err := a.frame(wait); err != nil {
			return err
		}
	}
	return nil
}

// TheaterChase runs the marquee chase through all three phases cycles times.
func (a *Animator) TheaterChase(c led.RGBColor, wait time.Duration, cycles int) error {
	for i := 0; i < cycles; i++ {
		for phase := 0; phase < 3; phase++ {
			a.drawTheater(phase, c)
			if err := a.frame(wait); err != nil {
				return err
			}
		}
	}
	return nil
}

// CometSequence returns the head positions of one comet cycle on a strip of n
// pixels: up from 0 to n-1 and, when bounce is set, back down to 1.
func CometSequence(n int, bounce bool) []int {
	top := n - 1
	seq := make([]int, 0, 2*n)
	for head := 0; head <= top; head++ {
		seq = append(seq, head)
	}
	if bounce {
		for head := top - 1; head > 0; head-- {
			seq = append(seq, head)
		}
	}
	return seq
}

// Comet sweeps a comet across the strip. Unlike CometRun, it only travels
// back down when o.Bounce is set.
func (a *Animator) Comet(o CometOptions) error {
	seq := CometSequence(len(a.leds), o.Bounce)
	for i := 0; i < o.Cycles; i++ {
		for _, head := range seq {
			a.drawComet(head, o.Color, o.TailLength)
			if err := a.frame(o.Wait); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sparkle runs sparkles for the whole of p.Duration, or p.Steps ticks if set.
// ShowcaseSparkleParams holds the demo's settings.
func (a *Animator) Sparkle(p SparkleParams) error {
	return a.SparkleRun(p)
}

// Breathe runs cycles full breaths of the given color.
func (a *Animator) Breathe(c led.RGBColor, cycles int, period, stepInterval time.Duration) error {
	total := breatheTotal(period, stepInterval)
	for i := 0; i < cycles; i++ {
		for step := 0; step < total; step++ {
			a.Fill(led.Scale(c, BreatheFactor(step, total)))
			if err := a.frame(stepInterval); err != nil {
				return err
			}
		}
	}
	return nil
}
