package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"libdb.so/neoglow"
	"libdb.so/neoglow/animator"
	"libdb.so/neoglow/driver"
)

const defaultConfig = "neoglow.toml"

var (
	config     = defaultConfig
	verbose    = false
	driverKind = ""
	device     = ""
	effect     = ""
	demo       = false
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
	pflag.StringVarP(&driverKind, "driver", "d", driverKind, "driver to use (terminal or serial)")
	pflag.StringVar(&device, "device", device, "serial device of the controller")
	pflag.StringVarP(&effect, "effect", "e", effect, "effect to start with")
	pflag.BoolVar(&demo, "demo", demo, "run every effect once and exit")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger := slog.Default()

	switch cfg.Driver {
	case neoglow.SerialDriver:
		return runSerial(ctx, cfg, logger)
	default:
		d := driver.NewTerminal(os.Stdout, cfg.LEDs)
		anim := animator.New(cfg.LEDs, d, animator.WithLogger(logger))
		return runMenu(ctx, cfg, anim, logger)
	}
}

func runSerial(ctx context.Context, cfg *neoglow.Config, logger *slog.Logger) error {
	s, err := driver.OpenSerial(driver.SerialConfig{
		Device:     cfg.Device,
		Baud:       cfg.Baud,
		NumLEDs:    cfg.LEDs,
		AckTimeout: time.Duration(cfg.AckTimeout),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to open controller: %w", err)
	}
	defer s.Close()

	// The reader outlives the menu so that the strip can still be turned off
	// after an interrupt.
	serialCtx, stopSerial := context.WithCancel(context.Background())
	defer stopSerial()

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		if err := s.Run(serialCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("controller failed: %w", err)
		}
		return nil
	})
	errg.Go(func() error {
		defer stopSerial()

		if err := s.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize controller: %w", err)
		}

		anim := animator.New(cfg.LEDs, s, animator.WithLogger(logger))
		return runMenu(ctx, cfg, anim, logger)
	})

	return errg.Wait()
}

func runMenu(ctx context.Context, cfg *neoglow.Config, anim *animator.Animator, logger *slog.Logger) error {
	menu := neoglow.NewMenu(cfg, anim, os.Stderr, logger)

	if demo {
		if err := menu.Demo(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("demo failed: %w", err)
		}
		return nil
	}

	// A blocking read on stdin cannot be interrupted, so the reader is left
	// behind when the menu quits.
	commands := make(chan neoglow.Command, 1)
	go func() {
		if err := neoglow.ReadCommands(ctx, os.Stdin, commands, logger); err != nil {
			logger.Debug("stopped reading commands", "err", err)
		}
	}()

	if err := menu.Run(ctx, commands); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("menu failed: %w", err)
	}

	return nil
}

// readConfig reads the configuration file, then applies the environment and
// the command line flags on top of it, in that order.
func readConfig() (*neoglow.Config, error) {
	cfg, err := readConfigFile()
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if driverKind != "" {
		cfg.Driver = neoglow.DriverKind(driverKind)
	}
	if device != "" {
		cfg.Device = device
	}
	if effect != "" {
		e, err := neoglow.ParseEffect(effect)
		if err != nil {
			return nil, fmt.Errorf("invalid --effect: %w", err)
		}
		cfg.Effect = e
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func readConfigFile() (*neoglow.Config, error) {
	f, err := os.Open(config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !pflag.CommandLine.Changed("config") {
			return neoglow.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return neoglow.ParseConfig(f)
}
