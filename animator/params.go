package animator

import (
	"time"

	"libdb.so/neoglow/internal/led"
)

// RainbowParams configures RainbowRun.
type RainbowParams struct {
	Steps int
	Wait  time.Duration
}

// DefaultRainbowParams returns the menu's rainbow settings.
func DefaultRainbowParams() RainbowParams {
	return RainbowParams{Steps: 8, Wait: 10 * time.Millisecond}
}

// TheaterParams configures TheaterRun.
type TheaterParams struct {
	Color led.RGBColor
	Steps int
	Wait  time.Duration
}

// DefaultTheaterParams returns the menu's theater chase settings.
func DefaultTheaterParams() TheaterParams {
	return TheaterParams{Color: led.Cyan, Steps: 6, Wait: 60 * time.Millisecond}
}

// CometParams configures CometRun.
type CometParams struct {
	Color      led.RGBColor
	TailLength int
	Steps      int
	Wait       time.Duration
}

// DefaultCometParams returns the menu's comet settings.
func DefaultCometParams() CometParams {
	return CometParams{Color: led.Orange, TailLength: 6, Steps: 1, Wait: 35 * time.Millisecond}
}

// SparkleParams configures SparkleRun.
type SparkleParams struct {
	// Steps is the number of ticks to run. If zero, the tick count is derived
	// from Duration and Wait instead.
	Steps    int
	Duration time.Duration
	Wait     time.Duration
	// Density controls how many pixels light up per tick: max(1, N*Density/2).
	Density float64
	// FadeFactor is what every channel is multiplied by on each tick.
	FadeFactor float64
}

// DefaultSparkleParams returns the menu's sparkle settings.
func DefaultSparkleParams() SparkleParams {
	return SparkleParams{
		Duration:   180 * time.Millisecond,
		Wait:       25 * time.Millisecond,
		Density:    0.35,
		FadeFactor: 0.78,
	}
}

// ShowcaseSparkleParams returns the longer sparkle used by the demo.
func ShowcaseSparkleParams() SparkleParams {
	return SparkleParams{
		Duration:   4 * time.Second,
		Wait:       30 * time.Millisecond,
		Density:    0.25,
		FadeFactor: 0.75,
	}
}

// ticks returns the number of ticks a sparkle run lasts.
func (p SparkleParams) ticks() int {
	if p.Steps > 0 {
		return p.Steps
	}
	wait := p.Wait
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	return atLeastOne(int((p.Duration + wait - 1) / wait))
}

// BreatheParams configures BreatheRun.
type BreatheParams struct {
	Color led.RGBColor
	// Period is the length of one full breath.
	Period time.Duration
	// StepInterval is the wait between frames.
	StepInterval time.Duration
	// Steps is the number of frames per call.
	Steps int
}

// DefaultBreatheParams returns the menu's breathe settings.
func DefaultBreatheParams() BreatheParams {
	return BreatheParams{
		Color:        led.Magenta,
		Period:       1400 * time.Millisecond,
		StepInterval: 16 * time.Millisecond,
		Steps:        6,
	}
}

// TotalSteps returns the number of frames in one period.
func (p BreatheParams) TotalSteps() int {
	return breatheTotal(p.Period, p.StepInterval)
}

func breatheTotal(period, interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	return atLeastOne(int(period / interval))
}

// CometOptions configures the one-shot Comet.
type CometOptions struct {
	Color      led.RGBColor
	TailLength int
	Wait       time.Duration
	// Bounce makes the head travel back down after reaching the top.
	Bounce bool
	Cycles int
}

// DefaultCometOptions returns the one-shot comet settings.
func DefaultCometOptions() CometOptions {
	return CometOptions{
		Color:      led.Orange,
		TailLength: 5,
		Wait:       40 * time.Millisecond,
		Bounce:     true,
		Cycles:     2,
	}
}
