package recipe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"tutorialmod/server/item"
)

func randomColours(r *rand.Rand, n int) []item.Colour {
	colours := make([]item.Colour, n)
	for i := range colours {
		colours[i] = item.Colour{R: uint8(r.Intn(256)), G: uint8(r.Intn(256)), B: uint8(r.Intn(256))}
		if colours[i].Max() == 0 {
			colours[i].G = 1
		}
	}
	return colours
}

func colourPtr(c item.Colour) *item.Colour {
	return &c
}

func TestBlendNothing(t *testing.T) {
	_, ok := BlendColours(nil, nil)
	assert.False(t, ok)

	// An undyed existing colour does not count as an input.
	_, ok = BlendColours(colourPtr(item.DefaultColour), nil)
	assert.False(t, ok)
}

func TestBlendExistingOnly(t *testing.T) {
	c := item.Colour{R: 10, G: 20, B: 30}
	out, ok := BlendColours(&c, nil)
	assert.True(t, ok)
	assert.Equal(t, c, out)
}

func TestBlendSingleInput(t *testing.T) {
	for _, c := range randomColours(rand.New(rand.NewSource(1)), 200) {
		out, ok := BlendColours(nil, []item.Colour{c})
		assert.True(t, ok)
		assert.Equal(t, c, out)
	}
}

func TestBlendDuplicates(t *testing.T) {
	for _, c := range randomColours(rand.New(rand.NewSource(2)), 200) {
		twice, ok := BlendColours(nil, []item.Colour{c, c})
		assert.True(t, ok)
		once, _ := BlendColours(nil, []item.Colour{c})
		assert.Equal(t, once, twice)
		assert.Equal(t, c, twice)
	}
}

func TestBlendCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		in := randomColours(r, 4)
		existing := &in[0]
		if i%2 == 0 {
			existing = nil
		}
		a, okA := BlendColours(existing, []item.Colour{in[1], in[2], in[3]})
		b, okB := BlendColours(existing, []item.Colour{in[3], in[1], in[2]})
		assert.Equal(t, okA, okB)
		assert.Equal(t, a, b)
	}
}

func TestBlendIgnoresDefaultExisting(t *testing.T) {
	for _, c := range randomColours(rand.New(rand.NewSource(4)), 50) {
		withDefault, _ := BlendColours(colourPtr(item.DefaultColour), []item.Colour{c})
		without, _ := BlendColours(nil, []item.Colour{c})
		assert.Equal(t, without, withDefault)
	}
}

func TestBlendExistingAndColourant(t *testing.T) {
	// Averages (100, 50, 152) rescaled by 227.5/152.
	out, ok := BlendColours(colourPtr(item.Colour{R: 200, G: 100, B: 50}), []item.Colour{{B: 255}})
	assert.True(t, ok)
	assert.Equal(t, item.Colour{R: 150, G: 75, B: 228}, out)
}

func TestBlendKeepsSaturation(t *testing.T) {
	out, ok := BlendColours(nil, []item.Colour{{R: 255}, {B: 255}})
	assert.True(t, ok)
	assert.Equal(t, item.Colour{R: 255, B: 255}, out)
}

func TestBlendBlackPeak(t *testing.T) {
	out, ok := BlendColours(nil, []item.Colour{{}})
	assert.True(t, ok)
	assert.Equal(t, item.Colour{}, out)

	// Averages truncate to zero while the inputs are not black.
	out, ok = BlendColours(nil, []item.Colour{{R: 1}, {}, {}})
	assert.True(t, ok)
	assert.Equal(t, item.Colour{}, out)
}

func TestBlendNotIdempotent(t *testing.T) {
	existing := item.Colour{R: 200, G: 100, B: 50}
	blue := item.Colour{B: 255}
	once, _ := BlendColours(&existing, []item.Colour{blue})
	twice, _ := BlendColours(&once, []item.Colour{blue})
	assert.NotEqual(t, once, twice)

	// Re-applying a colour to a backpack already of that colour changes nothing.
	same, _ := BlendColours(&blue, []item.Colour{blue})
	assert.Equal(t, blue, same)
}
