package inventory

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tutorialmod/server/item"
)

// ErrSlotOutOfRange is returned by any methods on inventory when a slot is passed which is not within the range
// of valid values for the inventory.
var ErrSlotOutOfRange = errors.New("slot is out of range: must be in range 0 <= slot < inventory.Size()")

// ErrRejected is returned when an item is put in a slot of an inventory that does not accept it.
var ErrRejected = errors.New("item stack is not accepted by the inventory")

// Inventory represents an inventory containing items. These inventories may be carried by entities or may be
// held by blocks such as chests, or may be carried inside an item such as a backpack.
// The size of an inventory may be specified upon construction, but cannot be changed after. The zero value
// of an inventory is invalid. Use New() to obtain a new inventory.
// Inventory is safe for concurrent usage: Its values are protected by a mutex.
type Inventory struct {
	mu    sync.RWMutex
	slots []item.Stack

	f      func(slot int, before, after item.Stack)
	canAdd func(s item.Stack, slot int) bool
}

// New creates a new inventory with the size passed. The inventory size cannot be changed after it has been
// constructed.
// A function may be passed which is called every time a slot is changed. The function may also be nil, if
// nothing needs to be done.
func New(size int, f func(slot int, before, after item.Stack)) *Inventory {
	if size <= 0 {
		panic("inventory size must be at least 1")
	}
	if f == nil {
		f = func(slot int, before, after item.Stack) {}
	}
	return &Inventory{slots: make([]item.Stack, size), f: f, canAdd: func(s item.Stack, slot int) bool { return true }}
}

// Item attempts to obtain an item from a specific slot in the inventory. If an item was present in that slot,
// the item is returned and the error is nil. If no item was present in the slot, a Stack with air and a count
// of 0 is returned. Stack.Empty() may be called to check if this is the case.
// Item only returns an error if the slot passed is out of range. (0 <= slot < inventory.Size())
func (inv *Inventory) Item(slot int) (item.Stack, error) {
	inv.check()
	if !inv.validSlot(slot) {
		return item.Stack{}, ErrSlotOutOfRange
	}

	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.slots[slot], nil
}

// SetItem sets a stack of items to a specific slot in the inventory. If an item is already present in the
// slot, that item will be overwritten.
// SetItem will return an error if the slot passed is out of range (0 <= slot < inventory.Size()) or if the
// inventory does not accept the stack in that slot.
func (inv *Inventory) SetItem(slot int, item item.Stack) error {
	inv.check()
	if !inv.validSlot(slot) {
		return ErrSlotOutOfRange
	}
	if !item.Empty() && !inv.canAdd(item, slot) {
		return ErrRejected
	}

	inv.mu.Lock()
	before := inv.setItem(slot, item)
	inv.mu.Unlock()

	inv.f(slot, before, item)
	return nil
}

// Slots returns the all slots in the inventory as a slice. The index in the slice is the slot of the inventory
// that a specific item.Stack is in. Note that this item.Stack might be empty.
func (inv *Inventory) Slots() []item.Stack {
	inv.check()
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return append([]item.Stack(nil), inv.slots...)
}

// Items returns a list of all contents of the inventory. This method excludes air items, so the method only
// ever returns non-empty item stacks.
func (inv *Inventory) Items() []item.Stack {
	inv.check()
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	items := make([]item.Stack, 0, len(inv.slots))
	for _, it := range inv.slots {
		if !it.Empty() {
			items = append(items, it)
		}
	}
	return items
}

// First returns the first slot with an item if found. Second return value describes whether the item was found.
func (inv *Inventory) First(item item.Stack) (int, bool) {
	inv.check()
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	for slot, it := range inv.slots {
		if !it.Empty() && (it.Comparable(item) || it.Equal(item)) {
			return slot, true
		}
	}
	return -1, false
}

// AddItem attempts to add an item to the inventory. It does so in a couple of steps: It first iterates over the
// inventory to make sure no existing stacks of the same type exist. If these stacks do exist, the item added
// is first added on top of those stacks to make sure they are fully filled.
// If no existing stacks with leftover space are left, empty slots will be filled up with the remainder of the
// item added.
// If the item could not be fully added to the inventory, an error is returned along with the count that was
// added to the inventory.
func (inv *Inventory) AddItem(it item.Stack) (n int, err error) {
	if it.Empty() {
		return 0, nil
	}
	first := it.Count()

	inv.mu.Lock()
	changed := make([]int, 0, len(inv.slots))
	befores := make([]item.Stack, 0, len(inv.slots))
	for slot, invIt := range inv.slots {
		if invIt.Empty() || !invIt.Comparable(it) || !inv.canAdd(it, slot) {
			// Empty slots are handled in a second pass, other items cannot be stacked on.
			continue
		}
		a, b := invIt.AddStack(it)
		if it.Count() == b.Count() {
			// Count stayed the same, meaning this slot is either full or not compatible.
			continue
		}
		changed, befores = append(changed, slot), append(befores, inv.setItem(slot, a))
		if b.Empty() {
			inv.mu.Unlock()
			inv.notify(changed, befores)
			return first, nil
		}
		it = b
	}
	for slot, invIt := range inv.slots {
		if !invIt.Empty() || !inv.canAdd(it, slot) {
			continue
		}
		if it.Count() > it.MaxCount() {
			// The stack has a count higher than the max count, so we fill this slot and keep going.
			changed, befores = append(changed, slot), append(befores, inv.setItem(slot, it.Grow(it.MaxCount()-it.Count())))
			it = it.Grow(-it.MaxCount())
			continue
		}
		changed, befores = append(changed, slot), append(befores, inv.setItem(slot, it))
		inv.mu.Unlock()
		inv.notify(changed, befores)
		return first, nil
	}
	inv.mu.Unlock()
	inv.notify(changed, befores)
	return first - it.Count(), fmt.Errorf("could not add full item stack to inventory")
}

// RemoveItemFromSlot removes n items from the slot passed and returns the stack that was removed.
func (inv *Inventory) RemoveItemFromSlot(slot, n int) (item.Stack, error) {
	it, err := inv.Item(slot)
	if err != nil {
		return item.Stack{}, err
	}
	if n > it.Count() {
		n = it.Count()
	}
	if err := inv.SetItem(slot, it.Grow(-n)); err != nil {
		return item.Stack{}, err
	}
	if it.Empty() {
		return item.Stack{}, nil
	}
	return item.NewStack(it.Item(), n), nil
}

// Empty checks if the inventory is fully empty: It iterates over the inventory and makes sure every stack in
// it is empty.
func (inv *Inventory) Empty() bool {
	inv.check()
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	for _, it := range inv.slots {
		if !it.Empty() {
			return false
		}
	}
	return true
}

// Clear clears the entire inventory. All non-zero items are returned.
func (inv *Inventory) Clear() []item.Stack {
	inv.check()

	inv.mu.Lock()
	var items []item.Stack
	var changed []int
	var befores []item.Stack
	for slot, i := range inv.slots {
		if !i.Empty() {
			items = append(items, i)
			changed, befores = append(changed, slot), append(befores, inv.setItem(slot, item.Stack{}))
		}
	}
	inv.mu.Unlock()
	inv.notify(changed, befores)
	return items
}

// Handle assigns a function to the inventory that is called every time a slot changes. Passing nil resets
// the handler.
func (inv *Inventory) Handle(f func(slot int, before, after item.Stack)) {
	inv.check()
	if f == nil {
		f = func(slot int, before, after item.Stack) {}
	}
	inv.mu.Lock()
	inv.f = f
	inv.mu.Unlock()
}

// Filter assigns a function that decides if a stack may be placed in a slot. Stacks already in the inventory
// are not re-checked.
func (inv *Inventory) Filter(canAdd func(s item.Stack, slot int) bool) {
	inv.check()
	if canAdd == nil {
		canAdd = func(s item.Stack, slot int) bool { return true }
	}
	inv.mu.Lock()
	inv.canAdd = canAdd
	inv.mu.Unlock()
}

// Accepts reports if the inventory would accept the stack passed in the slot passed.
func (inv *Inventory) Accepts(s item.Stack, slot int) bool {
	return inv.validSlot(slot) && (s.Empty() || inv.canAdd(s, slot))
}

// Clone returns a new inventory of the same size holding the same stacks. The handler and filter are not
// copied.
func (inv *Inventory) Clone() *Inventory {
	inv.check()
	c := New(inv.Size(), nil)
	inv.mu.RLock()
	copy(c.slots, inv.slots)
	inv.mu.RUnlock()
	return c
}

// Size returns the size of the inventory. It is always the same value as that passed in the call to New() and
// is always at least 1.
func (inv *Inventory) Size() int {
	inv.mu.RLock()
	l := len(inv.slots)
	inv.mu.RUnlock()
	return l
}

// String implements the fmt.Stringer interface.
func (inv *Inventory) String() string {
	s := make([]string, 0, inv.Size())
	for _, it := range inv.Slots() {
		s = append(s, it.String())
	}
	return "(" + strings.Join(s, ", ") + ")"
}

// setItem sets an item to a specific slot and returns the stack that was previously there. It assumes the
// mutex is held.
func (inv *Inventory) setItem(slot int, it item.Stack) item.Stack {
	if it.Count() > it.MaxCount() {
		it = it.Grow(it.MaxCount() - it.Count())
	}
	before := inv.slots[slot]
	inv.slots[slot] = it
	return before
}

func (inv *Inventory) notify(slots []int, befores []item.Stack) {
	for i, slot := range slots {
		after, _ := inv.Item(slot)
		inv.f(slot, befores[i], after)
	}
}

// validSlot checks if the slot passed is valid for the inventory. It returns false if the slot is either
// smaller than 0 or bigger/equal to the size of the inventory's size.
func (inv *Inventory) validSlot(slot int) bool {
	return slot >= 0 && slot < inv.Size()
}

// check panics if the inventory is not valid. This typically happens if the inventory
// was not created using New().
func (inv *Inventory) check() {
	if inv == nil || inv.slots == nil {
		panic("uninitialised inventory: inventory must be constructed using inventory.New()")
	}
}
