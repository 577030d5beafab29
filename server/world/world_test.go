package world

import (
	"testing"

	"github.com/Tnze/go-mc/chat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tutorialmod/server/item"
)

func TestPos(t *testing.T) {
	p := Pos{1, 64, -3}
	assert.Equal(t, Pos{2, 65, -2}, p.Add(Pos{1, 1, 1}))
	assert.Equal(t, Pos{0, 63, -4}, p.Subtract(Pos{1, 1, 1}))
	assert.Equal(t, mgl64.Vec3{1.5, 64.5, -2.5}, p.Vec3Centre())
	assert.Equal(t, p, PosFromVec3(p.Vec3Centre()))
	assert.Equal(t, Pos{-1, 0, -2}, PosFromVec3(mgl64.Vec3{-0.5, 0, -1.1}))
}

func TestWorldPlayers(t *testing.T) {
	w := New(nil)
	steve := NewPlayer("Steve", mgl64.Vec3{}, nil)
	alex := NewPlayer("Alex", mgl64.Vec3{}, nil)
	assert.True(t, w.AddPlayer(steve))
	assert.True(t, w.AddPlayer(alex))
	assert.False(t, w.AddPlayer(NewPlayer("Steve", mgl64.Vec3{}, nil)))

	players := w.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Alex", players[0].Name())

	p, ok := w.Player("Steve")
	assert.True(t, ok)
	assert.Same(t, steve, p)

	w.RemovePlayer("Steve")
	_, ok = w.Player("Steve")
	assert.False(t, ok)
}

func TestWorldDropItem(t *testing.T) {
	w := New(nil)
	w.DropItem(ItemEntity{})
	assert.Empty(t, w.Entities())

	w.DropItem(ItemEntity{Stack: item.NewStack(item.Simple{Name: "tutorial:ruby"}, 3)})
	entities := w.Entities()
	require.Len(t, entities, 1)
	assert.Equal(t, 3, entities[0].Stack.Count())
}

func TestWorldPlaySound(t *testing.T) {
	var heard []Sound
	w := New(func(s Sound) { heard = append(heard, s) })
	w.PlaySound(Sound{Name: SoundItemPickup, Volume: 0.2})
	assert.Equal(t, heard, w.Sounds())
	assert.Len(t, heard, 1)
}

func TestPlayer(t *testing.T) {
	var got []string
	p := NewPlayer("Steve", mgl64.Vec3{0, 64, 0}, func(msg chat.Message) {
		got = append(got, msg.ClearString())
	})
	assert.Equal(t, PlayerInventorySize, p.Inventory().Size())
	assert.NotEqual(t, NewPlayer("Steve", mgl64.Vec3{}, nil).UUID(), p.UUID())

	assert.True(t, p.SetHeldSlot(8))
	assert.False(t, p.SetHeldSlot(9))
	assert.Equal(t, 8, p.HeldSlot())
	require.NoError(t, p.Inventory().SetItem(8, item.NewStack(item.NewBackpack(), 1)))
	_, ok := p.HeldItem().Item().(item.Backpack)
	assert.True(t, ok)

	p.Move(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, p.Position())

	p.SetPermissionLevel(2)
	assert.Equal(t, 2, p.PermissionLevel())
	p.SetRemote(true)
	assert.True(t, p.Remote())

	p.Messagef("hello")
	p.Message(chat.Text("world"))
	assert.Equal(t, []string{"hello", "world"}, got)
}
