package animator

import (
	"math"

	"libdb.so/neoglow/internal/led"
)

// RainbowRun advances the moving rainbow by p.Steps ticks.
func (a *Animator) RainbowRun(p RainbowParams) error {
	for i := 0; i < atLeastOne(p.Steps); i++ {
		a.state.RainbowStep = wrap(a.state.RainbowStep, led.WheelPeriod)
		a.drawRainbow(a.state.RainbowStep)
		if err := a.frame(p.Wait); err != nil {
			return err
		}
		a.state.RainbowStep = (a.state.RainbowStep + 1) % led.WheelPeriod
	}
	return nil
}

func (a *Animator) drawRainbow(base int) {
	n := len(a.leds)
	for i := 0; i < n; i++ {
		a.SetPixel(i, led.Wheel(base+i*led.WheelPeriod/n))
	}
}

// TheaterRun advances the marquee chase by p.Steps ticks.
func (a *Animator) TheaterRun(p TheaterParams) error {
	for i := 0; i < atLeastOne(p.Steps); i++ {
		a.state.TheaterPhase = wrap(a.state.TheaterPhase, 3)
		a.drawTheater(a.state.TheaterPhase, p.Color)
		if err := a.frame(p.Wait); err != nil {
			return err
		}
		a.state.TheaterPhase = (a.state.TheaterPhase + 1) % 3
	}
	return nil
}

func (a *Animator) drawTheater(phase int, c led.RGBColor) {
	for i := range a.leds {
		if (i+phase)%3 == 0 {
			a.SetPixel(i, c)
		} else {
			a.SetPixel(i, led.Off)
		}
	}
}

// CometRun advances the comet by p.Steps ticks. The head always bounces
// between both ends of the strip.
func (a *Animator) CometRun(p CometParams) error {
	top := len(a.leds) - 1

	for i := 0; i < atLeastOne(p.Steps); i++ {
		head, dir := a.state.CometHead, a.state.CometDir
		if head < 0 {
			head = 0
		}
		if head > top {
			head = top
		}
		if dir >= 0 {
			dir = 1
		} else {
			dir = -1
		}

		a.drawComet(head, p.Color, p.TailLength)
		if err := a.frame(p.Wait); err != nil {
			return err
		}

		head += dir
		if head >= top {
			head = top
			dir = -1
		} else if head <= 0 {
			head = 0
			dir = 1
		}
		a.state.CometHead, a.state.CometDir = head, dir
	}
	return nil
}

func (a *Animator) drawComet(head int, c led.RGBColor, tail int) {
	tail = atLeastOne(tail)

	a.Fill(led.Off)
	for offset := 0; offset < tail; offset++ {
		idx := head - offset
		if idx < 0 || idx >= len(a.leds) {
			continue
		}
		factor := math.Max(0, 1-float64(offset)/float64(tail))
		a.SetPixel(idx, led.Scale(c, factor))
	}
}

// SparkleRun lights random pixels on top of a fading background. It keeps no
// cursor: the fading buffer itself is its state.
func (a *Animator) SparkleRun(p SparkleParams) error {
	for i := 0; i < p.ticks(); i++ {
		a.sparkle(p.Density, p.FadeFactor)
		if err := a.frame(p.Wait); err != nil {
			return err
		}
	}
	return nil
}

// SparkleCount returns the number of sparkles added per tick to a strip of n
// pixels.
func SparkleCount(n int, density float64) int {
	return atLeastOne(int(float64(n) * density * 0.5))
}

func (a *Animator) sparkle(density, fade float64) {
	for i, c := range a.leds {
		a.SetPixel(i, led.Scale(c, fade))
	}

	n := len(a.leds)
	for i := 0; i < SparkleCount(n, density); i++ {
		idx := a.rand.Intn(n)
		hue := a.rand.Intn(led.WheelPeriod)
		a.SetPixel(idx, led.Scale(led.Wheel(hue), 0.9))
	}
}

// BreatheRun advances the breathing fade by p.Steps frames.
func (a *Animator) BreatheRun(p BreatheParams) error {
	total := p.TotalSteps()

	for i := 0; i < atLeastOne(p.Steps); i++ {
		step := wrap(a.state.BreatheStep, total)
		a.Fill(led.Scale(p.Color, BreatheFactor(step, total)))
		if err := a.frame(p.StepInterval); err != nil {
			return err
		}
		a.state.BreatheStep = (step + 1) % total
	}
	return nil
}

// BreatheFactor returns the brightness factor for the given step of a breath
// lasting total steps. It is a raised cosine easing from 0.15 up to 1.0 at the
// half period and back, so the strip is never fully off.
func BreatheFactor(step, total int) float64 {
	total = atLeastOne(total)
	phase := 2 * math.Pi * float64(step) / float64(total)
	return 0.15 + 0.85*(0.5-0.5*math.Cos(phase))
}
