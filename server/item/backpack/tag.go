package backpack

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"
	"tutorialmod/server/item"
)

// colourTag is the item data of a backpack that never had its inventory opened.
type colourTag struct {
	BackpackColor int32 `nbt:"BackpackColor"`
}

// rawTag is the item data of any backpack, with both fields left undecoded. Absent fields have tag type
// TagEnd.
type rawTag struct {
	BackpackColor nbt.RawMessage `nbt:"BackpackColor"`
	Inventory     nbt.RawMessage `nbt:"Inventory"`
}

// fullTag is the item data of a backpack carrying inventory data.
type fullTag struct {
	BackpackColor int32         `nbt:"BackpackColor"`
	Inventory     inventoryData `nbt:"Inventory"`
}

// EncodeTag encodes the backpack into the item data compound the host persists with the item: the colour is
// stored packed as 0xRRGGBB under BackpackColor, the contents under Inventory. Inventory data that can no
// longer be decoded is written as an empty inventory.
func EncodeTag(b item.Backpack, r ItemResolver) ([]byte, error) {
	if !b.HasInventory() {
		return nbt.Marshal(colourTag{BackpackColor: b.Colour().Int()})
	}
	inv, err := decodeInventoryData(b.InventoryData())
	if err != nil || validate(inv, r) != nil {
		inv = inventoryData{Size: item.BackpackSize, Items: []slotData{}}
	}
	data, err := nbt.Marshal(fullTag{BackpackColor: b.Colour().Int(), Inventory: inv})
	if err != nil {
		return nil, fmt.Errorf("encode backpack tag: %w", err)
	}
	return data, nil
}

// DecodeTag decodes item data written by EncodeTag, or by any other writer using the same two fields. A
// missing BackpackColor means the backpack was never dyed. A missing Inventory means the backpack carries no
// inventory data yet.
func DecodeTag(data []byte) (item.Backpack, error) {
	if len(data) > maxItemData {
		return item.Backpack{}, fmt.Errorf("decode backpack tag: %v bytes exceed the limit of %v", len(data), maxItemData)
	}
	var t rawTag
	if err := nbt.Unmarshal(data, &t); err != nil {
		return item.Backpack{}, fmt.Errorf("decode backpack tag: %w", err)
	}
	b := item.NewBackpack()
	if t.BackpackColor.Type != nbt.TagEnd {
		var c int32
		if err := t.BackpackColor.Unmarshal(&c); err != nil {
			return item.Backpack{}, fmt.Errorf("decode backpack colour: %w", err)
		}
		b = b.WithColour(item.ColourFromInt(c))
	}
	if t.Inventory.Type != nbt.TagEnd {
		var raw rawInventoryData
		if err := t.Inventory.Unmarshal(&raw); err != nil {
			return item.Backpack{}, fmt.Errorf("decode backpack inventory: %w", err)
		}
		d, err := raw.decode()
		if err != nil {
			return item.Backpack{}, err
		}
		if d.Items == nil {
			d.Items = []slotData{}
		}
		inv, err := nbt.Marshal(d)
		if err != nil {
			return item.Backpack{}, fmt.Errorf("decode backpack inventory: %w", err)
		}
		b = b.WithInventoryData(inv)
	}
	return b, nil
}

// validate checks that inventory data holds a valid backpack inventory.
func validate(d inventoryData, r ItemResolver) error {
	_, err := stacksOf(d, r)
	return err
}
