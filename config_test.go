package neoglow

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/internal/led"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8, cfg.LEDs)
	assert.Equal(t, 18, cfg.Brightness)
	assert.Equal(t, Rainbow, cfg.Effect)
	assert.Equal(t, TerminalDriver, cfg.Driver)

	assert.Equal(t, animator.DefaultRainbowParams(), cfg.Rainbow.Params())
	assert.Equal(t, animator.DefaultCometParams(), cfg.Comet.Params())
	assert.Equal(t, animator.DefaultTheaterParams(), cfg.Theater.Params())
	assert.Equal(t, animator.DefaultSparkleParams(), cfg.Sparkle.Params())
	assert.Equal(t, animator.DefaultBreatheParams(), cfg.Breathe.Params())
}

const testConfig = `
driver = "serial"
device = "/dev/ttyACM0"
leds = 30
effect = "comet"
ack_timeout = "100ms"

[comet]
color = "#ff0000"
tail_length = 10

[breathe]
color = "cyan"

[sparkle]
density = 0.5
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(testConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, SerialDriver, cfg.Driver)
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 30, cfg.LEDs)
	assert.Equal(t, Comet, cfg.Effect)
	assert.Equal(t, TOMLDuration(100*time.Millisecond), cfg.AckTimeout)
	assert.Equal(t, led.Red, cfg.Comet.Color)
	assert.Equal(t, 10, cfg.Comet.TailLength)
	assert.Equal(t, led.Cyan, cfg.Breathe.Color)
	assert.Equal(t, 0.5, cfg.Sparkle.Density)

	// Missing keys keep their defaults.
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Baud, cfg.Baud)
	assert.Equal(t, defaults.Brightness, cfg.Brightness)
	assert.Equal(t, defaults.Comet.Wait, cfg.Comet.Wait)
	assert.Equal(t, defaults.Sparkle.Fade, cfg.Sparkle.Fade)
	assert.Equal(t, defaults.Rainbow, cfg.Rainbow)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"bad color", `[comet]
color = "not a color"`},
		{"bad duration", `[rainbow]
wait = "soon"`},
		{"bad effect", `effect = "disco"`},
		{"bad syntax", `leds = `},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(test.config))
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"no leds", func(c *Config) { c.LEDs = 0 }, "invalid number of LEDs 0"},
		{"too many leds", func(c *Config) { c.LEDs = 70000 }, "invalid number of LEDs 70000"},
		{"brightness", func(c *Config) { c.Brightness = 300 }, "invalid brightness 300"},
		{"unknown driver", func(c *Config) { c.Driver = "opc" }, `unknown driver "opc"`},
		{"serial without device", func(c *Config) { c.Driver = SerialDriver }, "serial driver requires a device"},
		{"serial without baud", func(c *Config) {
			c.Driver = SerialDriver
			c.Device = "/dev/ttyUSB0"
			c.Baud = 0
		}, "invalid baud rate 0"},
		{"unknown effect", func(c *Config) { c.Effect = 42 }, "unknown effect"},
		{"density", func(c *Config) { c.Sparkle.Density = 2 }, "invalid sparkle density"},
		{"fade", func(c *Config) { c.Sparkle.Fade = -1 }, "invalid sparkle fade"},
		{"negative wait", func(c *Config) { c.Rainbow.Wait = -1 }, "rainbow.wait must not be negative"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), test.err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NEOGLOW_DRIVER", "serial")
	t.Setenv("NEOGLOW_DEVICE", "/dev/ttyUSB1")
	t.Setenv("NEOGLOW_LEDS", "60")
	t.Setenv("NEOGLOW_EFFECT", "sparkle")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, SerialDriver, cfg.Driver)
	assert.Equal(t, "/dev/ttyUSB1", cfg.Device)
	assert.Equal(t, 60, cfg.LEDs)
	assert.Equal(t, Sparkle, cfg.Effect)

	// Unset variables leave the configuration alone.
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 18, cfg.Brightness)
}

func TestApplyEnvErrors(t *testing.T) {
	t.Run("effect", func(t *testing.T) {
		t.Setenv("NEOGLOW_EFFECT", "disco")
		assert.Error(t, DefaultConfig().ApplyEnv())
	})

	t.Run("number", func(t *testing.T) {
		t.Setenv("NEOGLOW_LEDS", "eight")
		assert.Error(t, DefaultConfig().ApplyEnv())
	})
}

func TestEffects(t *testing.T) {
	for _, e := range Effects {
		key, ok := EffectForKey(e.Key())
		require.True(t, ok)
		assert.Equal(t, e, key)

		text, err := e.MarshalText()
		require.NoError(t, err)

		var parsed Effect
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, e, parsed)
	}

	assert.Equal(t, "Theater chase", Theater.String())
	assert.Equal(t, "Effect(9)", Effect(9).String())

	_, ok := EffectForKey("6")
	assert.False(t, ok)

	e, err := ParseEffect("Theater Chase")
	require.NoError(t, err)
	assert.Equal(t, Theater, e)
}
