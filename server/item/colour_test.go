package item

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColourIntRoundTrip(t *testing.T) {
	c := Colour{R: 0x12, G: 0xab, B: 0xff}
	assert.Equal(t, int32(0x12abff), c.Int())
	assert.Equal(t, c, ColourFromInt(c.Int()))
	// Only the lower 24 bits carry the colour.
	assert.Equal(t, c, ColourFromInt(0x7f12abff))
}

func TestColourMax(t *testing.T) {
	assert.Equal(t, uint8(200), Colour{R: 10, G: 200, B: 30}.Max())
	assert.Equal(t, uint8(0), Colour{}.Max())
}

func TestColourScale(t *testing.T) {
	c := Colour{R: 100, G: 50, B: 3}
	assert.Equal(t, Colour{R: 150, G: 75, B: 5}, c.Scale(1.5))
	assert.Equal(t, Colour{R: 255, G: 255, B: 30}, c.Scale(10))
	assert.Equal(t, Colour{}, c.Scale(-1))
	assert.Equal(t, Colour{}, c.Scale(math.NaN()))
	assert.Equal(t, Colour{}, c.Scale(math.Inf(1)))
}

func TestClampChannel(t *testing.T) {
	assert.Equal(t, uint8(3), ClampChannel(2.5))
	assert.Equal(t, uint8(2), ClampChannel(2.49))
	assert.Equal(t, uint8(0), ClampChannel(-4))
	assert.Equal(t, uint8(255), ClampChannel(255.5))
	assert.Equal(t, uint8(0), ClampChannel(math.NaN()))
}

func TestColourHex(t *testing.T) {
	c := Colour{R: 0xb0, G: 0x2e, B: 0x26}
	assert.Equal(t, "#b02e26", c.Hex())

	parsed, err := ColourFromHex("#b02e26")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ColourFromHex("red")
	assert.Error(t, err)
}

func TestDefaultColour(t *testing.T) {
	assert.True(t, DefaultColour.IsDefault())
	assert.Equal(t, ColourWhite().FireworkColour(), DefaultColour)
	assert.False(t, Colour{R: 0xf0, G: 0xf0, B: 0xef}.IsDefault())
}
