package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackGrow(t *testing.T) {
	s := NewStack(Simple{Name: "tutorial:ruby"}, 10)
	assert.Equal(t, 15, s.Grow(5).Count())
	assert.Equal(t, 0, s.Grow(-20).Count())
	assert.True(t, s.Grow(-10).Empty())
	assert.Nil(t, s.Grow(-10).Item())
	// The original stack is not changed.
	assert.Equal(t, 10, s.Count())
}

func TestStackNewPanics(t *testing.T) {
	assert.Panics(t, func() { NewStack(Simple{Name: "tutorial:ruby"}, -1) })
	assert.Panics(t, func() { NewStack(nil, 1) })
}

func TestStackAddStack(t *testing.T) {
	ruby := Simple{Name: "tutorial:ruby"}
	a, b := NewStack(ruby, 60).AddStack(NewStack(ruby, 10))
	assert.Equal(t, 64, a.Count())
	assert.Equal(t, 6, b.Count())

	a, b = NewStack(ruby, 1).AddStack(NewStack(Simple{Name: "tutorial:sapphire"}, 1))
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 1, b.Count())

	a, b = Stack{}.AddStack(NewStack(ruby, 3))
	assert.Equal(t, 3, a.Count())
	assert.True(t, b.Empty())
}

func TestStackBackpacksNeverStack(t *testing.T) {
	s := NewStack(NewBackpack(), 1)
	assert.Equal(t, 1, s.MaxCount())
	assert.False(t, s.Comparable(NewStack(NewBackpack(), 1)))
	assert.True(t, s.Equal(NewStack(NewBackpack(), 1)))
}

func TestStackEqual(t *testing.T) {
	red := NewStack(Dye{Colour: ColourRed()}, 2)
	assert.True(t, red.Equal(NewStack(Dye{Colour: ColourRed()}, 2)))
	assert.False(t, red.Equal(NewStack(Dye{Colour: ColourRed()}, 3)))
	assert.False(t, red.Equal(NewStack(Dye{Colour: ColourBlue()}, 2)))
	assert.True(t, Stack{}.Equal(NewStack(Dye{}, 0)))
}

func TestStackString(t *testing.T) {
	assert.Equal(t, "Stack<minecraft:red_dye>(x2)", NewStack(Dye{Colour: ColourRed()}, 2).String())
	assert.Equal(t, "Stack<empty>", Stack{}.String())
}
