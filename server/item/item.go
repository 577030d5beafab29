package item

import "strconv"

// Item represents an item that may be added to an inventory. An Item is a value: two stacks holding equal
// items are interchangeable.
type Item interface {
	// EncodeItem encodes the item into its namespaced identifier and meta value.
	EncodeItem() (name string, meta int16)
}

// MaxCounter represents an item that has a specific max count. By default, each item will be expected to have
// a maximum count of 64. MaxCounter may be implemented to change this behaviour.
type MaxCounter interface {
	// MaxCount returns the maximum number of items that a stack may be composed of.
	MaxCount() int
}

// Colourant represents an item that contributes a fixed colour when mixed into a dyeable item.
type Colourant interface {
	// Colourant returns the colour that the item contributes.
	Colourant() Colour
}

// Equaler is implemented by items carrying per-instance data. Equal reports if the other item is the same
// kind of item carrying the same data.
type Equaler interface {
	Equal(other Item) bool
}

// Simple is an item without any behaviour of its own, identified only by its name. Gems and other crafting
// materials are Simple items.
type Simple struct {
	Name string
}

// EncodeItem ...
func (s Simple) EncodeItem() (name string, meta int16) {
	return s.Name, 0
}

// ID returns the name of an item followed by its meta value if that is not 0, for example
// "minecraft:red_dye" or "tutorial:thing:3".
func ID(it Item) string {
	name, meta := it.EncodeItem()
	if meta == 0 {
		return name
	}
	return name + ":" + strconv.Itoa(int(meta))
}
