package block

import (
	"math/rand"

	"tutorialmod/server/item"
)

// Ore is an ore block that drops an item other than itself when broken, along with some experience.
type Ore struct {
	Name  string
	Props Properties
	// Drop returns the item dropped by the ore. It is a function so that the ore may be constructed before
	// the item it drops.
	Drop func() item.Item
}

// NewOre returns an ore with the default ore properties (hardness and resistance 3, harvest level 2).
func NewOre(name string, drop func() item.Item) Ore {
	props := Rock(3, 3)
	props.HarvestLevel = 2
	return Ore{Name: name, Props: props, Drop: drop}
}

// EncodeBlock ...
func (o Ore) EncodeBlock() (string, map[string]interface{}) {
	return o.Name, nil
}

// Properties ...
func (o Ore) Properties() Properties {
	return o.Props
}

// Drops returns the items dropped when the ore is broken. With silk touch, the ore drops itself.
func (o Ore) Drops(silkTouch bool) []item.Stack {
	if silkTouch || o.Drop == nil {
		return []item.Stack{item.NewStack(Item{Block: o}, 1)}
	}
	return []item.Stack{item.NewStack(o.Drop(), 1)}
}

// ExperienceDrop returns the experience dropped when the ore is broken: 1-5, or nothing if the ore dropped
// itself.
func (o Ore) ExperienceDrop(silkTouch bool, r *rand.Rand) int {
	if silkTouch || o.Drop == nil {
		return 0
	}
	return 1 + r.Intn(5)
}
