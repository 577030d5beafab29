package mod

import (
	"tutorialmod/server/block"
	"tutorialmod/server/item"
	"tutorialmod/server/session"
)

// declare registers the factories of all blocks, items and containers of the mod. Blocks are declared as
// blue_stone, every gem storage block and then every gem ore. Each block gets a block item declared in the
// same order, followed by the gem items, the backpack and the dyes.
func (m *Mod) declare() {
	var blockKeys []string
	declareBlock := func(key string, f func() block.Block) {
		m.mustRegister(m.Blocks.Register(key, f))
		blockKeys = append(blockKeys, key)
	}

	declareBlock(Key("blue_stone"), func() block.Block {
		return block.Simple{Name: Key("blue_stone"), Props: block.Rock(1.5, 6)}
	})
	for _, g := range Gems {
		key := g.StorageBlockKey()
		declareBlock(key, func() block.Block {
			return block.Simple{Name: key, Props: block.Metal(5, 6)}
		})
	}
	for _, g := range Gems {
		key, itemKey := g.OreKey(), g.ItemKey()
		declareBlock(key, func() block.Block {
			return block.NewOre(key, func() item.Item {
				return m.Items.MustGet(itemKey)
			})
		})
	}

	for _, key := range blockKeys {
		key := key
		m.mustRegister(m.Items.Register(key, func() item.Item {
			return block.Item{Block: m.Blocks.MustGet(key)}
		}))
	}
	for _, g := range Gems {
		key := g.ItemKey()
		m.mustRegister(m.Items.Register(key, func() item.Item {
			return item.Simple{Name: key}
		}))
	}
	m.mustRegister(m.Items.Register(item.BackpackID, func() item.Item {
		return item.NewBackpack()
	}))
	for _, d := range item.Dyes() {
		d := d
		name, _ := d.EncodeItem()
		m.mustRegister(m.Items.Register(name, func() item.Item {
			return d
		}))
	}

	m.mustRegister(m.Containers.Register(session.BackpackContainerType, func() ContainerType {
		return ContainerType{Name: session.BackpackContainerType, Size: item.BackpackSize}
	}))
}

func (m *Mod) mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}
