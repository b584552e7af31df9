package neoglow

import (
	"encoding"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/internal/led"
)

// DriverKind is the kind of driver frames are pushed to.
type DriverKind string

const (
	// TerminalDriver renders the strip on the terminal.
	TerminalDriver DriverKind = "terminal"
	// SerialDriver sends the strip to a controller over a serial port.
	SerialDriver DriverKind = "serial"
)

// Config is the configuration for neoglow.
type Config struct {
	// Driver is the driver to use. It is either "terminal" or "serial".
	Driver DriverKind `toml:"driver"`
	// Device is the path to the serial device of the controller.
	// This is usually /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
	// AckTimeout is how long to wait for the controller to acknowledge a
	// frame.
	AckTimeout TOMLDuration `toml:"ack_timeout"`

	// LEDs is the number of LEDs in the strip.
	LEDs int `toml:"leds"`
	// Brightness is the global brightness, from 0 to 255.
	Brightness int `toml:"brightness"`
	// Effect is the effect that runs on startup.
	Effect Effect `toml:"effect"`

	Rainbow RainbowConfig `toml:"rainbow"`
	Comet   CometConfig   `toml:"comet"`
	Theater TheaterConfig `toml:"theater"`
	Sparkle SparkleConfig `toml:"sparkle"`
	Breathe BreatheConfig `toml:"breathe"`
}

// RainbowConfig is the configuration for the rainbow effect.
type RainbowConfig struct {
	Steps int          `toml:"steps"`
	Wait  TOMLDuration `toml:"wait"`
}

// Params converts the configuration to animator parameters.
func (c RainbowConfig) Params() animator.RainbowParams {
	return animator.RainbowParams{
		Steps: c.Steps,
		Wait:  time.Duration(c.Wait),
	}
}

// CometConfig is the configuration for the comet effect.
type CometConfig struct {
	Color      led.RGBColor `toml:"color"`
	TailLength int          `toml:"tail_length"`
	Steps      int          `toml:"steps"`
	Wait       TOMLDuration `toml:"wait"`
}

// Params converts the configuration to animator parameters.
func (c CometConfig) Params() animator.CometParams {
	return animator.CometParams{
		Color:      c.Color,
		TailLength: c.TailLength,
		Steps:      c.Steps,
		Wait:       time.Duration(c.Wait),
	}
}

// TheaterConfig is the configuration for the theater chase effect.
type TheaterConfig struct {
	Color led.RGBColor `toml:"color"`
	Steps int          `toml:"steps"`
	Wait  TOMLDuration `toml:"wait"`
}

// Params converts the configuration to animator parameters.
func (c TheaterConfig) Params() animator.TheaterParams {
	return animator.TheaterParams{
		Color: c.Color,
		Steps: c.Steps,
		Wait:  time.Duration(c.Wait),
	}
}

// SparkleConfig is the configuration for the sparkle effect.
type SparkleConfig struct {
	// Duration is how long each menu tick sparkles for.
	Duration TOMLDuration `toml:"duration"`
	Wait     TOMLDuration `toml:"wait"`
	// Density is the fraction of the strip that can light up per frame,
	// halved.
	Density float64 `toml:"density"`
	// Fade is what each channel is multiplied by on every frame.
	Fade float64 `toml:"fade"`
}

// Params converts the configuration to animator parameters.
func (c SparkleConfig) Params() animator.SparkleParams {
	return animator.SparkleParams{
		Duration:   time.Duration(c.Duration),
		Wait:       time.Duration(c.Wait),
		Density:    c.Density,
		FadeFactor: c.Fade,
	}
}

// BreatheConfig is the configuration for the breathe effect.
type BreatheConfig struct {
	Color  led.RGBColor `toml:"color"`
	Period TOMLDuration `toml:"period"`
	// Interval is the time between two frames.
	Interval TOMLDuration `toml:"interval"`
	Steps    int          `toml:"steps"`
}

// Params converts the configuration to animator parameters.
func (c BreatheConfig) Params() animator.BreatheParams {
	return animator.BreatheParams{
		Color:        c.Color,
		Period:       time.Duration(c.Period),
		StepInterval: time.Duration(c.Interval),
		Steps:        c.Steps,
	}
}

// DefaultConfig returns the default configuration: an 8 LED strip at
// brightness 18 running the rainbow, drawn on the terminal.
func DefaultConfig() *Config {
	rainbow := animator.DefaultRainbowParams()
	comet := animator.DefaultCometParams()
	theater := animator.DefaultTheaterParams()
	sparkle := animator.DefaultSparkleParams()
	breathe := animator.DefaultBreatheParams()

	return &Config{
		Driver:     TerminalDriver,
		Baud:       115200,
		AckTimeout: TOMLDuration(250 * time.Millisecond),
		LEDs:       8,
		Brightness: 18,
		Effect:     Rainbow,
		Rainbow: RainbowConfig{
			Steps: rainbow.Steps,
			Wait:  TOMLDuration(rainbow.Wait),
		},
		Comet: CometConfig{
			Color:      comet.Color,
			TailLength: comet.TailLength,
			Steps:      comet.Steps,
			Wait:       TOMLDuration(comet.Wait),
		},
		Theater: TheaterConfig{
			Color: theater.Color,
			Steps: theater.Steps,
			Wait:  TOMLDuration(theater.Wait),
		},
		Sparkle: SparkleConfig{
			Duration: TOMLDuration(sparkle.Duration),
			Wait:     TOMLDuration(sparkle.Wait),
			Density:  sparkle.Density,
			Fade:     sparkle.FadeFactor,
		},
		Breathe: BreatheConfig{
			Color:    breathe.Color,
			Period:   TOMLDuration(breathe.Period),
			Interval: TOMLDuration(breathe.StepInterval),
			Steps:    breathe.Steps,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LEDs < 1 || c.LEDs > 0xFFFF {
		return fmt.Errorf("invalid number of LEDs %d, must be within [1, 65535]", c.LEDs)
	}

	if c.Brightness < 0 || c.Brightness > 255 {
		return fmt.Errorf("invalid brightness %d, must be within [0, 255]", c.Brightness)
	}

	switch c.Driver {
	case TerminalDriver:
	case SerialDriver:
		if c.Device == "" {
			return errors.New("serial driver requires a device")
		}
		if c.Baud <= 0 {
			return fmt.Errorf("invalid baud rate %d", c.Baud)
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}

	if c.Effect > Breathe {
		return fmt.Errorf("unknown effect %v", c.Effect)
	}

	if c.Sparkle.Density < 0 || c.Sparkle.Density > 1 {
		return fmt.Errorf("invalid sparkle density %v, must be within [0, 1]", c.Sparkle.Density)
	}
	if c.Sparkle.Fade < 0 || c.Sparkle.Fade > 1 {
		return fmt.Errorf("invalid sparkle fade %v, must be within [0, 1]", c.Sparkle.Fade)
	}

	durations := map[string]TOMLDuration{
		"ack_timeout":      c.AckTimeout,
		"rainbow.wait":     c.Rainbow.Wait,
		"comet.wait":       c.Comet.Wait,
		"theater.wait":     c.Theater.Wait,
		"sparkle.duration": c.Sparkle.Duration,
		"sparkle.wait":     c.Sparkle.Wait,
		"breathe.period":   c.Breathe.Period,
		"breathe.interval": c.Breathe.Interval,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	return nil
}

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ParseConfig parses a configuration from a reader. Keys missing from the
// file keep their default values.
func ParseConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if err := toml.NewDecoder(r).Decode(config); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return config, nil
}

// envConfig is the part of Config that can be overridden from the
// environment.
type envConfig struct {
	Driver     string `env:"NEOGLOW_DRIVER"`
	Device     string `env:"NEOGLOW_DEVICE"`
	Baud       int    `env:"NEOGLOW_BAUD"`
	LEDs       int    `env:"NEOGLOW_LEDS"`
	Brightness int    `env:"NEOGLOW_BRIGHTNESS"`
	Effect     string `env:"NEOGLOW_EFFECT"`
}

// ApplyEnv overrides the configuration with the NEOGLOW_* environment
// variables that are set.
func (c *Config) ApplyEnv() error {
	e := envConfig{
		Driver:     string(c.Driver),
		Device:     c.Device,
		Baud:       c.Baud,
		LEDs:       c.LEDs,
		Brightness: c.Brightness,
		Effect:     c.Effect.Key(),
	}

	if err := env.Parse(&e); err != nil {
		return errors.Wrap(err, "failed to parse environment")
	}

	effect, err := ParseEffect(e.Effect)
	if err != nil {
		return errors.Wrap(err, "invalid NEOGLOW_EFFECT")
	}

	c.Driver = DriverKind(e.Driver)
	c.Device = e.Device
	c.Baud = e.Baud
	c.LEDs = e.LEDs
	c.Brightness = e.Brightness
	c.Effect = effect
	return nil
}
