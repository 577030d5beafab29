package item

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour is an RGB triple with 8-bit channels. Colour values are never changed in place: every derived
// operation returns a new Colour.
type Colour struct {
	R, G, B uint8
}

// DefaultColour is the colour of a backpack that was never dyed. It shares its bit pattern with the firework
// colour of white dye, which is how undyed backpacks were historically written to item data.
var DefaultColour = Colour{R: 0xf0, G: 0xf0, B: 0xf0}

// ColourFromInt unpacks a colour stored as 0xRRGGBB. Bits above the lower 24 are ignored.
func ColourFromInt(v int32) Colour {
	return Colour{R: uint8(v >> 16 & 0xff), G: uint8(v >> 8 & 0xff), B: uint8(v & 0xff)}
}

// Int packs the colour as 0xRRGGBB.
func (c Colour) Int() int32 {
	return int32(c.R)<<16 | int32(c.G)<<8 | int32(c.B)
}

// Max returns the largest of the three channels, used as the brightness of the colour.
func (c Colour) Max() uint8 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// IsDefault reports if c is the DefaultColour sentinel.
func (c Colour) IsDefault() bool {
	return c == DefaultColour
}

// Scale multiplies every channel by f, rounding half away from zero and clamping to [0, 255]. Non-finite
// factors produce black.
func (c Colour) Scale(f float64) Colour {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Colour{}
	}
	return Colour{R: ClampChannel(float64(c.R) * f), G: ClampChannel(float64(c.G) * f), B: ClampChannel(float64(c.B) * f)}
}

// Hex returns the colour formatted as #rrggbb.
func (c Colour) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts the colour to a colorful.Color with channels in [0, 1].
func (c Colour) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ColourFromHex parses a colour written as #rrggbb.
func ColourFromHex(s string) (Colour, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return Colour{}, err
	}
	r, g, b := col.RGB255()
	return Colour{R: r, G: g, B: b}, nil
}

// ClampChannel rounds v half away from zero and clamps the result into [0, 255].
func ClampChannel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
