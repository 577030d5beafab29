package backpack

import (
	"encoding/binary"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tutorialmod/server/item"
	"tutorialmod/server/item/inventory"
)

// resolver resolves the few items used in these tests.
type resolver map[string]item.Item

func (r resolver) ItemByName(name string, meta int16) (item.Item, bool) {
	if meta != 0 {
		return nil, false
	}
	it, ok := r[name]
	return it, ok
}

var items = resolver{
	"tutorial:ruby":     item.Simple{Name: "tutorial:ruby"},
	"tutorial:sapphire": item.Simple{Name: "tutorial:sapphire"},
	"minecraft:red_dye": item.Dye{Colour: item.ColourRed()},
	item.BackpackID:     item.NewBackpack(),
}

// summary maps the non-empty slots of an inventory to a description of their stack.
func summary(slots []item.Stack) map[int]string {
	m := map[int]string{}
	for i, s := range slots {
		if !s.Empty() {
			m[i] = s.String()
		}
	}
	return m
}

func filled(t *testing.T) *inventory.Inventory {
	inv := NewInventory()
	require.NoError(t, inv.SetItem(0, item.NewStack(item.Simple{Name: "tutorial:ruby"}, 12)))
	require.NoError(t, inv.SetItem(13, item.NewStack(item.Dye{Colour: item.ColourRed()}, 1)))
	require.NoError(t, inv.SetItem(26, item.NewStack(item.Simple{Name: "tutorial:sapphire"}, 64)))
	return inv
}

func TestMaterialiseWithoutData(t *testing.T) {
	inv := Materialise(item.NewBackpack(), items)
	assert.Equal(t, item.BackpackSize, inv.Size())
	assert.True(t, inv.Empty())
}

func TestCommitThenMaterialise(t *testing.T) {
	view := filled(t)
	b := Commit(item.NewBackpack(), view)
	require.True(t, b.HasInventory())

	got := Materialise(b, items)
	if diff := cmp.Diff(summary(view.Slots()), summary(got.Slots())); diff != "" {
		t.Errorf("materialised inventory differs (-want +got):\n%v", diff)
	}
}

func TestCommitIsStable(t *testing.T) {
	b := Commit(item.NewBackpack(), filled(t))
	again := Commit(b, Materialise(b, items))
	assert.Equal(t, b.InventoryData(), again.InventoryData())
}

func TestCommitDoesNotChangeInputs(t *testing.T) {
	b := item.NewBackpack().WithColour(item.Colour{R: 10})
	view := filled(t)
	before := summary(view.Slots())

	out := Commit(b, view)
	assert.False(t, b.HasInventory())
	assert.Equal(t, before, summary(view.Slots()))
	assert.Equal(t, b.Colour(), out.Colour())
}

func TestCommitEmptyViewDiffersFromNoData(t *testing.T) {
	b := Commit(item.NewBackpack(), NewInventory())
	assert.True(t, b.HasInventory())
	assert.True(t, Materialise(b, items).Empty())
}

// listHeader returns the start of an inventory compound: its Size followed by the header of an Items list
// that claims n entries of the element type passed, without any of the entries.
func listHeader(size int32, elem byte, n uint32) []byte {
	b := append([]byte{10, 0, 0, 3, 0, 4}, "Size"...)
	b = binary.BigEndian.AppendUint32(b, uint32(size))
	b = append(append(b, 9, 0, 5), "Items"...)
	b = append(b, elem)
	return binary.BigEndian.AppendUint32(b, n)
}

func TestMaterialiseMalformedData(t *testing.T) {
	unknown, err := nbt.Marshal(inventoryData{Size: 27, Items: []slotData{{Slot: 0, ID: "tutorial:nothing", Count: 1}}})
	require.NoError(t, err)
	wrongSize, err := nbt.Marshal(inventoryData{Size: 9, Items: []slotData{}})
	require.NoError(t, err)
	outOfRange, err := nbt.Marshal(inventoryData{Size: 27, Items: []slotData{{Slot: 27, ID: "tutorial:ruby", Count: 1}}})
	require.NoError(t, err)
	duplicate, err := nbt.Marshal(inventoryData{Size: 27, Items: []slotData{
		{Slot: 1, ID: "tutorial:ruby", Count: 1},
		{Slot: 1, ID: "tutorial:ruby", Count: 2},
	}})
	require.NoError(t, err)
	nested, err := nbt.Marshal(inventoryData{Size: 27, Items: []slotData{{Slot: 0, ID: item.BackpackID, Count: 1}}})
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"garbage":       {0xde, 0xad, 0xbe, 0xef},
		"empty":         {},
		"unknown item":  unknown,
		"wrong size":    wrongSize,
		"out of range":  outOfRange,
		"duplicate":     duplicate,
		"nested":        nested,
		"huge list":     listHeader(27, 10, 0x7fffffff),
		"long list":     listHeader(27, 10, 28),
		"negative list": listHeader(27, 10, 0xffffffff),
		"not a list":    append(append([]byte{10, 0, 0, 3, 0, 5}, "Items"...), 0, 0, 0, 1, 0),
		"oversized":     make([]byte, maxItemData+1),
	} {
		t.Run(name, func(t *testing.T) {
			inv := Materialise(item.NewBackpack().WithInventoryData(data), items)
			assert.Equal(t, item.BackpackSize, inv.Size())
			assert.True(t, inv.Empty())
		})
	}
}

func TestBackpacksCannotBeNested(t *testing.T) {
	inv := NewInventory()
	assert.ErrorIs(t, inv.SetItem(0, item.NewStack(item.NewBackpack(), 1)), inventory.ErrRejected)
	assert.False(t, Accepts(item.NewStack(item.NewBackpack(), 1), 0))
	assert.True(t, Accepts(item.NewStack(item.Simple{Name: "tutorial:ruby"}, 1), 0))
}
