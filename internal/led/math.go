package led

import "math"

// WheelPeriod is the number of distinct positions on the color wheel.
const WheelPeriod = 255

// Scale multiplies every channel of c by factor, truncating toward zero and
// clamping the result to [0, 255]. A fresh color is always returned.
func Scale(c RGBColor, factor float64) RGBColor {
	return RGBColor{
		scaleChannel(c[0], factor),
		scaleChannel(c[1], factor),
		scaleChannel(c[2], factor),
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	f := float64(v) * factor
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f) // truncates toward zero
	}
}

// Wheel maps pos, taken modulo 255, to a fully saturated hue. The wheel is
// made of three 85 wide segments fading red to green, green to blue and blue
// back to red, so Wheel(0) == Wheel(255).
func Wheel(pos int) RGBColor {
	pos %= WheelPeriod
	if pos < 0 {
		pos += WheelPeriod
	}

	switch {
	case pos < 85:
		return RGBColor{uint8(255 - pos*3), uint8(pos * 3), 0}
	case pos < 170:
		pos -= 85
		return RGBColor{0, uint8(255 - pos*3), uint8(pos * 3)}
	default:
		pos -= 170
		return RGBColor{uint8(pos * 3), 0, uint8(255 - pos*3)}
	}
}

// Dim applies a global 0-255 brightness level to c. Level 255 leaves the color
// unchanged and level 0 turns it off.
func Dim(c RGBColor, level uint8) RGBColor {
	if level == 255 {
		return c
	}
	l := uint16(level)
	return RGBColor{
		uint8(uint16(c[0]) * l / 255),
		uint8(uint16(c[1]) * l / 255),
		uint8(uint16(c[2]) * l / 255),
	}
}

// DimAll writes the dimmed version of src into dst, which must be at least as
// long as src.
func DimAll(dst, src LEDs, level uint8) {
	for i, c := range src {
		dst[i] = Dim(c, level)
	}
}
