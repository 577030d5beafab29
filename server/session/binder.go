package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"tutorialmod/server/item"
	"tutorialmod/server/item/backpack"
	"tutorialmod/server/item/inventory"
)

const (
	// BackpackContainerType is the container type registered for backpack windows.
	BackpackContainerType = "tutorial:backpack"
	// BackpackTitle is the translation key of the backpack window title.
	BackpackTitle = "container.tutorial.backpack"
)

var (
	// ErrAlreadyOpen is returned when a hand that already has an open backpack window is used again.
	ErrAlreadyOpen = errors.New("session: backpack already open")
	// ErrBackpackMoved is returned on close when the hand no longer holds the backpack that was opened.
	ErrBackpackMoved = errors.New("session: backpack no longer held")
)

// Actor is an entity able to hold and use a backpack.
type Actor interface {
	UUID() uuid.UUID
	Inventory() *inventory.Inventory
	// HeldSlot returns the inventory slot of the hand that is used.
	HeldSlot() int
	// Remote reports if the actor is a copy simulated by another side. Remote actors never open windows.
	Remote() bool
}

// UI shows container windows to an actor.
type UI interface {
	OpenContainer(c *Container) error
}

type hand struct {
	actor uuid.UUID
	slot  int
}

// BackpackBinder opens the inventory stored in a held backpack as a container window and writes it back into
// the backpack held in the same hand when the window closes.
type BackpackBinder struct {
	items backpack.ItemResolver

	mu       sync.Mutex
	open     map[hand]*Container
	windowID *atomic.Int32
}

// NewBackpackBinder returns a binder resolving stored item names through r.
func NewBackpackBinder(r backpack.ItemResolver) *BackpackBinder {
	return &BackpackBinder{items: r, open: map[hand]*Container{}, windowID: atomic.NewInt32(0)}
}

// Use activates the item held by the actor. It returns false without doing anything if the actor is remote
// or does not hold a backpack.
func (b *BackpackBinder) Use(a Actor, ui UI) (bool, error) {
	if a.Remote() {
		return false, nil
	}
	h := hand{actor: a.UUID(), slot: a.HeldSlot()}
	held, err := a.Inventory().Item(h.slot)
	if err != nil {
		return false, err
	}
	bp, ok := held.Item().(item.Backpack)
	if !ok {
		return false, nil
	}

	b.mu.Lock()
	if _, ok := b.open[h]; ok {
		b.mu.Unlock()
		return false, ErrAlreadyOpen
	}
	c := &Container{
		id:    b.windowID.Inc(),
		typ:   BackpackContainerType,
		title: BackpackTitle,
		inv:   backpack.Materialise(bp, b.items),
	}
	c.onClose = func() ([]item.Stack, error) {
		b.mu.Lock()
		delete(b.open, h)
		b.mu.Unlock()
		return commit(a.Inventory(), h.slot, bp, c.inv)
	}
	b.open[h] = c
	b.mu.Unlock()

	if err := ui.OpenContainer(c); err != nil {
		b.mu.Lock()
		delete(b.open, h)
		b.mu.Unlock()
		return false, fmt.Errorf("open backpack window: %w", err)
	}
	return true, nil
}

// Open returns the window currently open for the hand of the actor passed.
func (b *BackpackBinder) Open(a Actor) (*Container, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.open[hand{actor: a.UUID(), slot: a.HeldSlot()}]
	return c, ok
}

// OpenCount returns the amount of backpack windows currently open.
func (b *BackpackBinder) OpenCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.open)
}

// commit writes view into the backpack found in slot if it is still the backpack that was opened. Otherwise the
// contents of the view are moved into the inventory itself and whatever does not fit is returned.
func commit(inv *inventory.Inventory, slot int, opened item.Backpack, view *inventory.Inventory) ([]item.Stack, error) {
	held, err := inv.Item(slot)
	if err != nil {
		return view.Items(), err
	}
	if bp, ok := held.Item().(item.Backpack); ok && bp.Equal(opened) {
		return nil, inv.SetItem(slot, item.NewStack(backpack.Commit(bp, view), held.Count()))
	}
	var leftover []item.Stack
	for _, s := range view.Items() {
		n, _ := inv.AddItem(s)
		if n < s.Count() {
			leftover = append(leftover, s.Grow(n-s.Count()))
		}
	}
	return leftover, ErrBackpackMoved
}
