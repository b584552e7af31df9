package led

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheel(t *testing.T) {
	assert.Equal(t, Wheel(0), Wheel(255), "wheel must be cyclic")
	assert.Equal(t, Wheel(-1), Wheel(254), "negative positions wrap")

	boundaries := map[int]RGBColor{
		0:   {255, 0, 0},
		85:  {0, 255, 0},
		170: {0, 0, 255},
	}
	for pos, want := range boundaries {
		for _, p := range []int{pos, pos + 255, pos - 255} {
			got := Wheel(p)
			assert.Equal(t, want, got, "Wheel(%d)", p)

			var full int
			for _, ch := range got {
				if ch == 255 {
					full++
				}
			}
			assert.Equal(t, 1, full, "Wheel(%d) must have exactly one saturated channel", p)
		}
	}

	// Every step moves each channel by at most 3, including across segment
	// boundaries and the wrap-around.
	for p := 0; p < 2*WheelPeriod; p++ {
		a, b := Wheel(p), Wheel(p+1)
		for ch := range a {
			d := int(a[ch]) - int(b[ch])
			if d < 0 {
				d = -d
			}
			assert.LessOrEqual(t, d, 3, "discontinuity between %d and %d", p, p+1)
		}
	}
}

func TestScale(t *testing.T) {
	colors := []RGBColor{Off, Red, Orange, Cyan, Magenta, White, {1, 2, 3}, {128, 64, 200}}

	for _, c := range colors {
		assert.Equal(t, c, Scale(c, 1.0), "identity for %v", c)
		assert.Equal(t, Off, Scale(c, 0.0), "zero for %v", c)
		assert.Equal(t, Off, Scale(c, -2.5), "negative clamps for %v", c)

		for f := 0.0; f <= 10.0; f += 0.25 {
			got := Scale(c, f)
			for ch := range got {
				want := int(float64(c[ch]) * f)
				if want > 255 {
					want = 255
				}
				assert.Equal(t, uint8(want), got[ch], "Scale(%v, %v)[%d]", c, f, ch)
			}
		}
	}

	assert.Equal(t, RGBColor{229, 108, 0}, Scale(Orange, 0.9))
	assert.Equal(t, RGBColor{255, 255, 255}, Scale(RGBColor{200, 130, 128}, 2))
}

func TestDim(t *testing.T) {
	assert.Equal(t, White, Dim(White, 255))
	assert.Equal(t, Off, Dim(White, 0))
	assert.Equal(t, RGBColor{18, 8, 0}, Dim(Orange, 18))

	src := LEDs{Red, Cyan}
	dst := NewLEDs(2)
	DimAll(dst, src, 128)
	assert.Equal(t, LEDs{{128, 0, 0}, {0, 128, 100}}, dst)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBColor
	}{
		{"#ff7800", Orange},
		{"FF7800", Orange},
		{"cyan", Cyan},
		{"  Magenta ", Magenta},
		{"off", Off},
	}
	for _, test := range tests {
		got, err := ParseColor(test.in)
		require.NoError(t, err, "ParseColor(%q)", test.in)
		assert.Equal(t, test.want, got, "ParseColor(%q)", test.in)
	}

	_, err := ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestColorText(t *testing.T) {
	text, err := Magenta.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#ff00b4", string(text))

	var c RGBColor
	require.NoError(t, c.UnmarshalText(text))
	assert.Equal(t, Magenta, c)
}

func TestLEDs(t *testing.T) {
	leds := NewLEDs(4)
	leds.Set(1, Red)
	leds.Set(-1, Blue)
	leds.Set(4, Blue)
	assert.Equal(t, LEDs{Off, Red, Off, Off}, leds)
	assert.Equal(t, Off, leds.At(10))

	leds.SetRange(2, 10, Green)
	assert.Equal(t, LEDs{Off, Red, Green, Green}, leds)

	assert.Equal(t, []uint8{0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 255, 0}, leds.AsPixels())
	assert.Nil(t, NewLEDs(0).AsPixels())

	var buf bytes.Buffer
	n, err := leds.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)
	assert.Equal(t, leds.AsPixels(), buf.Bytes())

	cp := leds.Clone()
	cp.Fill(White)
	assert.Equal(t, Red, leds.At(1), "clone must not alias")

	assert.Equal(t, 1, leds.Draw(3, LEDs{Blue, Blue}))
	assert.Equal(t, Blue, leds.At(3))
}
