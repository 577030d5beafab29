package backpack

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/Tnze/go-mc/nbt"
	"tutorialmod/server/item"
	"tutorialmod/server/item/inventory"
)

// ItemResolver looks up an item by the name and meta value it encodes to.
type ItemResolver interface {
	ItemByName(name string, meta int16) (item.Item, bool)
}

// slotData is a single non-empty slot as stored in the inventory data of a backpack.
type slotData struct {
	Slot   int32  `nbt:"Slot"`
	ID     string `nbt:"id"`
	Damage int16  `nbt:"Damage"`
	Count  int8   `nbt:"Count"`
}

// inventoryData is the compound that holds the contents of a backpack.
type inventoryData struct {
	Size  int32      `nbt:"Size"`
	Items []slotData `nbt:"Items"`
}

// maxItemData bounds the item data of a single backpack. A full backpack encodes to little more than a
// kilobyte.
const maxItemData = 1 << 16

// rawInventoryData is inventoryData with the slot list left undecoded, so that its length can be checked
// before anything is allocated for it.
type rawInventoryData struct {
	Size  int32          `nbt:"Size"`
	Items nbt.RawMessage `nbt:"Items"`
}

func (raw rawInventoryData) decode() (inventoryData, error) {
	d := inventoryData{Size: raw.Size}
	if err := unmarshalList(raw.Items, item.BackpackSize, &d.Items); err != nil {
		return inventoryData{}, fmt.Errorf("decode backpack inventory: %w", err)
	}
	return d, nil
}

// unmarshalList decodes an NBT list into v if it holds at most max entries. An absent list leaves v as is.
func unmarshalList(m nbt.RawMessage, max int, v interface{}) error {
	if m.Type == nbt.TagEnd {
		return nil
	}
	if m.Type != nbt.TagList {
		return fmt.Errorf("expected a list, got tag type %v", m.Type)
	}
	if len(m.Data) < 5 {
		return errors.New("list header truncated")
	}
	n := int32(binary.BigEndian.Uint32(m.Data[1:5]))
	if n < 0 || int(n) > max {
		return fmt.Errorf("list holds %v entries, at most %v allowed", n, max)
	}
	return m.Unmarshal(v)
}

// NewInventory returns an empty inventory with the size of a backpack. Backpacks may not be put into the
// inventory.
func NewInventory() *inventory.Inventory {
	inv := inventory.New(item.BackpackSize, nil)
	inv.Filter(Accepts)
	return inv
}

// Accepts reports if a stack may be stored inside a backpack. Backpacks cannot hold other backpacks.
func Accepts(s item.Stack, _ int) bool {
	_, isBackpack := s.Item().(item.Backpack)
	return !isBackpack
}

// Materialise returns an inventory view of the contents carried by the backpack passed. A backpack without
// inventory data yields an empty inventory. Inventory data that cannot be decoded is discarded and also
// yields an empty inventory: a backpack must remain usable even if its data got corrupted.
// The view returned is not connected to the backpack. Changes must be written back using Commit.
func Materialise(b item.Backpack, r ItemResolver) *inventory.Inventory {
	inv := NewInventory()
	if !b.HasInventory() {
		return inv
	}
	stacks, err := decodeInventory(b.InventoryData(), r)
	if err != nil {
		fmt.Printf("Backpack: discarding unreadable inventory data (%v)\n", err)
		return inv
	}
	for slot, s := range stacks {
		if s.Empty() {
			continue
		}
		if err := inv.SetItem(slot, s); err != nil {
			fmt.Printf("Backpack: discarding unreadable inventory data (slot %v: %v)\n", slot, err)
			return NewInventory()
		}
	}
	return inv
}

// Commit serialises the inventory view passed and returns a copy of the backpack carrying it. Neither the
// backpack nor the inventory passed are changed.
func Commit(b item.Backpack, inv *inventory.Inventory) item.Backpack {
	data, err := encodeInventory(inv.Slots())
	if err != nil {
		// Encoding only fails for stacks that could never have been decoded in the first place.
		fmt.Printf("Backpack: unable to encode inventory, keeping previous contents (%v)\n", err)
		return b.Clone()
	}
	return b.WithInventoryData(data)
}

// encodeInventory encodes the slots passed into the inventory data format of backpacks.
func encodeInventory(slots []item.Stack) ([]byte, error) {
	d, err := inventoryDataOf(slots)
	if err != nil {
		return nil, err
	}
	data, err := nbt.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode backpack inventory: %w", err)
	}
	return data, nil
}

func inventoryDataOf(slots []item.Stack) (inventoryData, error) {
	if len(slots) != item.BackpackSize {
		return inventoryData{}, fmt.Errorf("backpack inventory must have %v slots, got %v", item.BackpackSize, len(slots))
	}
	d := inventoryData{Size: int32(len(slots)), Items: make([]slotData, 0, len(slots))}
	for slot, s := range slots {
		if s.Empty() {
			continue
		}
		if !Accepts(s, slot) {
			return inventoryData{}, fmt.Errorf("slot %v holds %v, which cannot be stored in a backpack", slot, s)
		}
		if s.Count() > 127 {
			return inventoryData{}, fmt.Errorf("slot %v holds %v items, more than can be stored", slot, s.Count())
		}
		name, meta := s.Item().EncodeItem()
		d.Items = append(d.Items, slotData{Slot: int32(slot), ID: name, Damage: meta, Count: int8(s.Count())})
	}
	sort.Slice(d.Items, func(i, j int) bool { return d.Items[i].Slot < d.Items[j].Slot })
	return d, nil
}

// decodeInventory decodes inventory data into exactly BackpackSize slots.
func decodeInventory(data []byte, r ItemResolver) ([]item.Stack, error) {
	d, err := decodeInventoryData(data)
	if err != nil {
		return nil, err
	}
	return stacksOf(d, r)
}

// decodeInventoryData decodes inventory data without checking the slots it holds.
func decodeInventoryData(data []byte) (inventoryData, error) {
	if len(data) > maxItemData {
		return inventoryData{}, fmt.Errorf("decode backpack inventory: %v bytes exceed the limit of %v", len(data), maxItemData)
	}
	var raw rawInventoryData
	if err := nbt.Unmarshal(data, &raw); err != nil {
		return inventoryData{}, fmt.Errorf("decode backpack inventory: %w", err)
	}
	return raw.decode()
}

func stacksOf(d inventoryData, r ItemResolver) ([]item.Stack, error) {
	if d.Size != item.BackpackSize {
		return nil, fmt.Errorf("backpack inventory must have %v slots, got %v", item.BackpackSize, d.Size)
	}
	stacks := make([]item.Stack, item.BackpackSize)
	for _, s := range d.Items {
		if s.Slot < 0 || s.Slot >= item.BackpackSize {
			return nil, fmt.Errorf("slot %v is out of range", s.Slot)
		}
		if !stacks[s.Slot].Empty() {
			return nil, fmt.Errorf("slot %v is present more than once", s.Slot)
		}
		if s.Count <= 0 {
			return nil, fmt.Errorf("slot %v has invalid count %v", s.Slot, s.Count)
		}
		it, ok := r.ItemByName(s.ID, s.Damage)
		if !ok {
			return nil, fmt.Errorf("slot %v holds unknown item %v:%v", s.Slot, s.ID, s.Damage)
		}
		stacks[s.Slot] = item.NewStack(it, int(s.Count))
	}
	return stacks, nil
}
