package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackpackDefaults(t *testing.T) {
	var zero Backpack
	assert.Equal(t, DefaultColour, zero.Colour())
	assert.False(t, zero.HasInventory())
	assert.Nil(t, zero.InventoryData())
	assert.Equal(t, BackpackSize, zero.InventorySize())
	assert.True(t, zero.Equal(NewBackpack()))
}

func TestBackpackWithColour(t *testing.T) {
	b := NewBackpack()
	red := Colour{R: 200}
	dyed := b.WithColour(red)
	assert.Equal(t, red, dyed.Colour())
	assert.Equal(t, DefaultColour, b.Colour())
	assert.False(t, dyed.Equal(b))

	// Dyeing with the default colour makes the backpack undyed again.
	assert.True(t, dyed.WithColour(DefaultColour).Equal(b))
}

func TestBackpackInventoryDataIsCopied(t *testing.T) {
	data := []byte{1, 2, 3}
	b := NewBackpack().WithInventoryData(data)
	data[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, b.InventoryData())

	out := b.InventoryData()
	out[1] = 9
	assert.Equal(t, []byte{1, 2, 3}, b.InventoryData())

	c := b.Clone()
	assert.True(t, c.Equal(b))
	assert.True(t, c.HasInventory())
}

func TestBackpackEmptyInventoryDataDiffersFromNone(t *testing.T) {
	withEmpty := NewBackpack().WithInventoryData([]byte{})
	assert.True(t, withEmpty.HasInventory())
	assert.False(t, withEmpty.Equal(NewBackpack()))
}

func TestBackpackTintColour(t *testing.T) {
	b := NewBackpack().WithColour(Colour{R: 1, G: 2, B: 3})
	assert.Equal(t, Colour{R: 1, G: 2, B: 3}, b.TintColour(0))
	assert.Equal(t, Colour{R: 0xff, G: 0xff, B: 0xff}, b.TintColour(1))
	assert.Equal(t, DefaultColour, NewBackpack().TintColour(0))
}

func TestDyeTable(t *testing.T) {
	colours := DyeColours()
	assert.Len(t, colours, 16)
	assert.Equal(t, "white", colours[0].Name())
	assert.Equal(t, "black", colours[15].Name())

	c, ok := DyeColourByName("light_blue")
	assert.True(t, ok)
	assert.Equal(t, ColourLightBlue(), c)
	_, ok = DyeColourByName("teal")
	assert.False(t, ok)

	name, meta := Dye{Colour: ColourLightBlue()}.EncodeItem()
	assert.Equal(t, "minecraft:light_blue_dye", name)
	assert.Equal(t, int16(0), meta)
	assert.Equal(t, ColourLightBlue().Colour(), Dye{Colour: ColourLightBlue()}.Colourant())
	assert.Len(t, Dyes(), 16)
}
