package block

import "tutorialmod/server/item"

// Block is a block that may be placed in a world.
type Block interface {
	// EncodeBlock encodes the block into its namespaced identifier and block properties.
	EncodeBlock() (name string, properties map[string]interface{})
}

// Sound is the set of sounds played when a block is walked on, placed or broken.
type Sound string

const (
	SoundStone Sound = "stone"
	SoundMetal Sound = "metal"
)

// Properties holds the material settings of a block.
type Properties struct {
	Material   string
	Hardness   float64
	Resistance float64
	Sound      Sound
	// HarvestLevel is the minimum tool tier needed to obtain drops from the block.
	HarvestLevel int
}

// Rock returns the properties of rock-like blocks with the hardness and resistance passed.
func Rock(hardness, resistance float64) Properties {
	return Properties{Material: "rock", Hardness: hardness, Resistance: resistance, Sound: SoundStone}
}

// Metal returns the properties of metal blocks with the hardness and resistance passed.
func Metal(hardness, resistance float64) Properties {
	return Properties{Material: "iron", Hardness: hardness, Resistance: resistance, Sound: SoundMetal}
}

// Simple is a block without any behaviour beyond dropping itself when broken.
type Simple struct {
	Name  string
	Props Properties
}

// EncodeBlock ...
func (s Simple) EncodeBlock() (string, map[string]interface{}) {
	return s.Name, nil
}

// Properties ...
func (s Simple) Properties() Properties {
	return s.Props
}

// Drops ...
func (s Simple) Drops(bool) []item.Stack {
	return []item.Stack{item.NewStack(Item{Block: s}, 1)}
}

// Item is the item form of a block, which places the block when used.
type Item struct {
	Block Block
}

// EncodeItem ...
func (i Item) EncodeItem() (name string, meta int16) {
	name, _ = i.Block.EncodeBlock()
	return name, 0
}
