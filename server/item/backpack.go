package item

import "bytes"

const (
	// BackpackID is the namespaced identifier of the backpack item.
	BackpackID = "tutorial:backpack"
	// BackpackSize is the number of slots carried by every backpack.
	BackpackSize = 27
)

// Backpack is a portable container: it carries its own inventory in its item data instead of relying on a
// block in the world. The inventory is kept as an opaque serialised blob that only the backpack store in
// package backpack understands.
//
// Backpack is an immutable value. The zero value is an undyed backpack with an empty inventory.
type Backpack struct {
	colour Colour
	dyed   bool
	// inventory is nil until the first time an inventory view is committed to the backpack.
	inventory []byte
}

// NewBackpack returns an undyed backpack without inventory data.
func NewBackpack() Backpack {
	return Backpack{}
}

// Colour returns the colour of the backpack. DefaultColour is returned if the backpack was never dyed.
func (b Backpack) Colour() Colour {
	if !b.dyed {
		return DefaultColour
	}
	return b.colour
}

// WithColour returns a copy of the backpack with its colour set to c.
func (b Backpack) WithColour(c Colour) Backpack {
	b = b.Clone()
	b.colour, b.dyed = c, !c.IsDefault()
	return b
}

// HasInventory reports if the backpack holds inventory data. A backpack without inventory data is
// equivalent to a backpack holding 27 empty slots.
func (b Backpack) HasInventory() bool {
	return b.inventory != nil
}

// InventoryData returns a copy of the serialised inventory of the backpack, or nil if it has none.
func (b Backpack) InventoryData() []byte {
	return cloneBytes(b.inventory)
}

// WithInventoryData returns a copy of the backpack holding a copy of the serialised inventory passed.
func (b Backpack) WithInventoryData(data []byte) Backpack {
	b.inventory = cloneBytes(data)
	return b
}

// Clone returns a copy of the backpack that shares no memory with b.
func (b Backpack) Clone() Backpack {
	b.inventory = cloneBytes(b.inventory)
	return b
}

// InventorySize returns the amount of slots of the backpack's inventory.
func (Backpack) InventorySize() int {
	return BackpackSize
}

// TintColour returns the colour that the texture layer passed is rendered with. Only the first layer is dyed,
// all other layers are drawn as is.
func (b Backpack) TintColour(layer int) Colour {
	if layer == 0 {
		return b.Colour()
	}
	return Colour{R: 0xff, G: 0xff, B: 0xff}
}

// Equal ...
func (b Backpack) Equal(other Item) bool {
	o, ok := other.(Backpack)
	if !ok {
		return false
	}
	return b.Colour() == o.Colour() && bytes.Equal(b.inventory, o.inventory) && b.HasInventory() == o.HasInventory()
}

// MaxCount always returns 1.
func (Backpack) MaxCount() int {
	return 1
}

// EncodeItem ...
func (Backpack) EncodeItem() (name string, meta int16) {
	return BackpackID, 0
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
