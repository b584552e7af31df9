package neoglow

import (
	"fmt"
	"strings"
)

// Effect is an effect that the menu can run.
type Effect uint8

const (
	Off Effect = iota
	Rainbow
	Comet
	Theater
	Sparkle
	Breathe
)

// Effects lists all effects in menu order.
var Effects = []Effect{Rainbow, Comet, Theater, Sparkle, Breathe, Off}

var effectNames = map[Effect]string{
	Off:     "Off",
	Rainbow: "Rainbow",
	Comet:   "Comet",
	Theater: "Theater chase",
	Sparkle: "Sparkle",
	Breathe: "Breathe",
}

// String returns the effect's menu name.
func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Effect(%d)", e)
}

// Key returns the menu key that selects the effect.
func (e Effect) Key() string {
	return fmt.Sprint(uint8(e))
}

// EffectForKey returns the effect selected by the given menu key.
func EffectForKey(key string) (Effect, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '5' {
		return 0, false
	}
	return Effect(key[0] - '0'), true
}

// ParseEffect parses an effect from its menu key or its name. Names are
// matched case-insensitively, and "theater" and "off" short forms are
// accepted.
func ParseEffect(s string) (Effect, error) {
	if e, ok := EffectForKey(s); ok {
		return e, nil
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "all off":
		return Off, nil
	case "rainbow":
		return Rainbow, nil
	case "comet":
		return Comet, nil
	case "theater", "theater chase", "theater-chase", "chase":
		return Theater, nil
	case "sparkle":
		return Sparkle, nil
	case "breathe":
		return Breathe, nil
	default:
		return 0, fmt.Errorf("unknown effect %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(strings.Fields(e.String())[0])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(text []byte) error {
	v, err := ParseEffect(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
