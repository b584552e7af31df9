// Package neoglow is the effect menu for a NeoPixel strip. It ties the
// configuration, the command reader and an animator.Animator together into
// the cooperative select-and-step loop.
package neoglow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/internal/led"
)

// offInterval is how long the Off effect waits per tick.
const offInterval = 40 * time.Millisecond

// Menu is the effect selector. It owns which effect is running and advances
// it one runner call at a time, between commands.
type Menu struct {
	cfg    *Config
	anim   *animator.Animator
	out    io.Writer
	logger *slog.Logger
	effect Effect
}

// NewMenu creates a new Menu that starts with the configured effect. Menu text
// is written to out.
func NewMenu(cfg *Config, anim *animator.Animator, out io.Writer, logger *slog.Logger) *Menu {
	return &Menu{
		cfg:    cfg,
		anim:   anim,
		out:    out,
		logger: logger,
		effect: cfg.Effect,
	}
}

// Effect returns the current effect.
func (m *Menu) Effect() Effect {
	return m.effect
}

// PrintMenu writes the menu to the menu output.
func (m *Menu) PrintMenu() {
	fmt.Fprintln(m.out, "\nChoose an effect:")
	for _, e := range Effects {
		name := e.String()
		if e == Off {
			name = "All off"
		}
		fmt.Fprintf(m.out, "[%s] %s\n", e.Key(), name)
	}
	fmt.Fprint(m.out, "[q] Quit\n\n")
}

func (m *Menu) printSelected() {
	fmt.Fprintln(m.out, "Selected:", m.effect)
}

// Step applies cmd, if not nil, and then advances the current effect by one
// runner call. It reports whether the menu should quit, in which case nothing
// is advanced.
func (m *Menu) Step(cmd *Command) (quit bool, err error) {
	if cmd != nil {
		switch cmd.Kind {
		case QuitCommand:
			return true, nil

		case HelpCommand:
			m.PrintMenu()

		case SelectCommand:
			m.logger.Debug(
				"switching effect",
				"from", m.effect,
				"to", cmd.Effect)
			m.effect = cmd.Effect
			m.printSelected()

		case BrightnessCommand:
			if err := m.anim.SetBrightness(cmd.Level); err != nil {
				return false, err
			}
			fmt.Fprintln(m.out, "Brightness:", cmd.Level)
		}
	}

	if err := m.tick(); err != nil {
		return false, errors.Wrapf(err, "failed to run %s", m.effect)
	}
	return false, nil
}

func (m *Menu) tick() error {
	switch m.effect {
	case Off:
		if err := m.anim.SetAll(led.Off); err != nil {
			return err
		}
		m.anim.Wait(offInterval)
		return nil
	case Rainbow:
		return m.anim.RainbowRun(m.cfg.Rainbow.Params())
	case Comet:
		return m.anim.CometRun(m.cfg.Comet.Params())
	case Theater:
		return m.anim.TheaterRun(m.cfg.Theater.Params())
	case Sparkle:
		return m.anim.SparkleRun(m.cfg.Sparkle.Params())
	case Breathe:
		return m.anim.BreatheRun(m.cfg.Breathe.Params())
	default:
		return fmt.Errorf("unknown effect %v", m.effect)
	}
}

// Run applies the configured brightness, prints the menu and then steps the
// current effect until a quit command arrives, ctx is canceled or the driver
// fails. The strip is always turned off before Run returns.
func (m *Menu) Run(ctx context.Context, commands <-chan Command) (err error) {
	defer func() {
		if offErr := m.off(); offErr != nil && err == nil {
			err = offErr
		}
	}()

	if err := m.anim.SetBrightness(uint8(m.cfg.Brightness)); err != nil {
		return err
	}

	m.PrintMenu()
	m.printSelected()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var cmd *Command
		if c, ok := PollCommand(commands); ok {
			cmd = &c
		}

		quit, err := m.Step(cmd)
		if err != nil {
			return err
		}
		if quit {
			m.logger.Debug("quitting menu")
			return nil
		}
	}
}

// Demo runs every one-shot effect once, in menu order, and then turns the
// strip off. It stops early if ctx is canceled between effects.
func (m *Menu) Demo(ctx context.Context) (err error) {
	defer func() {
		if offErr := m.off(); offErr != nil && err == nil {
			err = offErr
		}
	}()

	if err := m.anim.SetBrightness(uint8(m.cfg.Brightness)); err != nil {
		return err
	}

	demos := []struct {
		effect Effect
		run    func() error
	}{
		{Rainbow, func() error {
			return m.anim.RainbowCycle(15*time.Millisecond, 2)
		}},
		{Comet, func() error {
			return m.anim.Comet(animator.DefaultCometOptions())
		}},
		{Theater, func() error {
			return m.anim.TheaterChase(led.Cyan, 80*time.Millisecond, 24)
		}},
		{Sparkle, func() error {
			return m.anim.Sparkle(animator.ShowcaseSparkleParams())
		}},
		{Breathe, func() error {
			return m.anim.Breathe(led.Magenta, 2, 1800*time.Millisecond, 20*time.Millisecond)
		}},
	}

	for _, demo := range demos {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.logger.Info("running demo", "effect", demo.effect)
		if err := demo.run(); err != nil {
			return errors.Wrapf(err, "failed to run %s demo", demo.effect)
		}
	}

	return nil
}

func (m *Menu) off() error {
	if err := m.anim.SetAll(led.Off); err != nil {
		m.logger.Warn(
			"failed to turn off strip",
			"err", err)
		return errors.Wrap(err, "failed to turn off strip")
	}
	return nil
}
