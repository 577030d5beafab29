package backpack

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Tnze/go-mc/nbt"
	"tutorialmod/server/item"
)

// storedSlot is a slot of an inventory of any size. Backpacks carry their item data in Tag.
type storedSlot struct {
	Slot   int32  `nbt:"Slot"`
	ID     string `nbt:"id"`
	Damage int16  `nbt:"Damage"`
	Count  int8   `nbt:"Count"`
	Tag    []byte `nbt:"tag"`
}

type storedInventory struct {
	Size  int32        `nbt:"Size"`
	Items []storedSlot `nbt:"Items"`
}

// MaxStoredSlots is the largest inventory EncodeStacks and DecodeStacks handle.
const MaxStoredSlots = 256

// maxStoredData bounds data passed to DecodeStacks: MaxStoredSlots slots, each carrying at most one backpack.
const maxStoredData = MaxStoredSlots * (maxItemData + 64)

// rawStoredSlot is storedSlot with the item data left undecoded, so that its length is checked against the
// data actually present.
type rawStoredSlot struct {
	Slot   int32          `nbt:"Slot"`
	ID     string         `nbt:"id"`
	Damage int16          `nbt:"Damage"`
	Count  int8           `nbt:"Count"`
	Tag    nbt.RawMessage `nbt:"tag"`
}

type rawStoredInventory struct {
	Size  int32          `nbt:"Size"`
	Items nbt.RawMessage `nbt:"Items"`
}

// tagBytes returns the payload of a byte array tag. An absent tag yields no bytes.
func tagBytes(m nbt.RawMessage) ([]byte, error) {
	if m.Type == nbt.TagEnd {
		return nil, nil
	}
	if m.Type != nbt.TagByteArray {
		return nil, fmt.Errorf("expected a byte array, got tag type %v", m.Type)
	}
	if len(m.Data) < 4 || int64(binary.BigEndian.Uint32(m.Data[:4])) != int64(len(m.Data)-4) {
		return nil, errors.New("byte array length does not match its data")
	}
	return m.Data[4:], nil
}

// EncodeStacks encodes the slots of an inventory of any size, such as the inventory of a player. Unlike the
// contents of a backpack, the slots may hold backpacks, which are stored along with their item data.
func EncodeStacks(slots []item.Stack, r ItemResolver) ([]byte, error) {
	if len(slots) > MaxStoredSlots {
		return nil, fmt.Errorf("encode inventory: %v slots exceed the limit of %v", len(slots), MaxStoredSlots)
	}
	d := storedInventory{Size: int32(len(slots)), Items: make([]storedSlot, 0, len(slots))}
	for slot, s := range slots {
		if s.Empty() {
			continue
		}
		if s.Count() > 127 {
			return nil, fmt.Errorf("slot %v holds %v items, more than can be stored", slot, s.Count())
		}
		name, meta := s.Item().EncodeItem()
		stored := storedSlot{Slot: int32(slot), ID: name, Damage: meta, Count: int8(s.Count()), Tag: []byte{}}
		if b, ok := s.Item().(item.Backpack); ok {
			tag, err := EncodeTag(b, r)
			if err != nil {
				return nil, err
			}
			stored.Tag = tag
		}
		d.Items = append(d.Items, stored)
	}
	data, err := nbt.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode inventory: %w", err)
	}
	return data, nil
}

// DecodeStacks decodes data written by EncodeStacks.
func DecodeStacks(data []byte, r ItemResolver) ([]item.Stack, error) {
	if len(data) > maxStoredData {
		return nil, fmt.Errorf("decode inventory: %v bytes exceed the limit of %v", len(data), maxStoredData)
	}
	var raw rawStoredInventory
	if err := nbt.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	if raw.Size < 0 || raw.Size > MaxStoredSlots {
		return nil, fmt.Errorf("decode inventory: invalid size %v", raw.Size)
	}
	var slots []rawStoredSlot
	if err := unmarshalList(raw.Items, int(raw.Size), &slots); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	stacks := make([]item.Stack, raw.Size)
	for _, s := range slots {
		if s.Slot < 0 || s.Slot >= raw.Size {
			return nil, fmt.Errorf("slot %v is out of range", s.Slot)
		}
		if s.Count <= 0 {
			return nil, fmt.Errorf("slot %v has invalid count %v", s.Slot, s.Count)
		}
		it, ok := r.ItemByName(s.ID, s.Damage)
		if !ok {
			return nil, fmt.Errorf("slot %v holds unknown item %v:%v", s.Slot, s.ID, s.Damage)
		}
		tag, err := tagBytes(s.Tag)
		if err != nil {
			return nil, fmt.Errorf("slot %v: %w", s.Slot, err)
		}
		if _, ok := it.(item.Backpack); ok && len(tag) > 0 {
			b, err := DecodeTag(tag)
			if err != nil {
				return nil, fmt.Errorf("slot %v: %w", s.Slot, err)
			}
			it = b
		}
		stacks[s.Slot] = item.NewStack(it, int(s.Count))
	}
	return stacks, nil
}
