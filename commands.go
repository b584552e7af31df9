package neoglow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// CommandKind is the kind of a menu command.
type CommandKind uint8

const (
	// SelectCommand switches to Command.Effect.
	SelectCommand CommandKind = iota
	// BrightnessCommand sets the global brightness to Command.Level.
	BrightnessCommand
	// HelpCommand prints the menu.
	HelpCommand
	// QuitCommand stops the menu.
	QuitCommand
)

// Command is a single command given to the menu.
type Command struct {
	Kind   CommandKind
	Effect Effect
	Level  uint8
}

// ParseCommand parses a command line. It returns nil if the line is blank.
//
// Accepted commands are the menu keys 0 to 5, effect names, "q" to quit,
// "?", "h" or "help" for the menu and "b <level>" or "brightness <level>" to
// set the brightness.
func ParseCommand(line string) (*Command, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, errors.Wrap(err, "failed to split command")
	}
	if len(words) == 0 {
		return nil, nil
	}

	switch strings.ToLower(words[0]) {
	case "q", "quit", "exit":
		return &Command{Kind: QuitCommand}, nil

	case "?", "h", "help":
		return &Command{Kind: HelpCommand}, nil

	case "b", "brightness":
		if len(words) != 2 {
			return nil, fmt.Errorf("usage: %s <0-255>", words[0])
		}
		level, err := strconv.ParseUint(words[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid brightness %q, must be within [0, 255]", words[1])
		}
		return &Command{Kind: BrightnessCommand, Level: uint8(level)}, nil

	default:
		effect, err := ParseEffect(strings.Join(words, " "))
		if err != nil {
			return nil, err
		}
		return &Command{Kind: SelectCommand, Effect: effect}, nil
	}
}

// ReadCommands reads one command per line from r and sends them to dst. Lines
// that fail to parse are logged and skipped. It returns nil once r is
// exhausted.
func ReadCommands(ctx context.Context, r io.Reader, dst chan<- Command, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			logger.Warn(
				"ignoring invalid command",
				"line", scanner.Text(),
				"err", err)
			continue
		}
		if cmd == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case dst <- *cmd:
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read commands")
	}
	return nil
}

// PollCommand returns the next pending command, if any. It never blocks.
func PollCommand(ch <-chan Command) (Command, bool) {
	select {
	case cmd, ok := <-ch:
		return cmd, ok
	default:
		return Command{}, false
	}
}
