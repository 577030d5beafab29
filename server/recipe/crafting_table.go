package recipe

import (
	"fmt"
	"sync"

	"tutorialmod/server/item"
)

// CraftingTable is the grid of a crafting table or of a player's crafting window. It offers the output of the
// first matching recipe and consumes one item from every input when that output is taken.
type CraftingTable struct {
	mu      sync.Mutex
	grid    Grid
	recipes func() []Recipe
}

// NewCraftingTable returns an empty crafting grid with the dimensions passed, matching against the recipes
// returned by the function passed.
func NewCraftingTable(width, height int, recipes func() []Recipe) *CraftingTable {
	return &CraftingTable{grid: NewGrid(width, height), recipes: recipes}
}

// Set puts a stack in a slot of the grid.
func (t *CraftingTable) Set(slot int, s item.Stack) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot < 0 || slot >= len(t.grid.Slots) {
		return fmt.Errorf("crafting slot %v out of range 0-%v", slot, len(t.grid.Slots)-1)
	}
	t.grid.Slots[slot] = s
	return nil
}

// Snapshot returns a copy of the current grid.
func (t *CraftingTable) Snapshot() Grid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// Result returns the output currently offered by the grid, without consuming anything.
func (t *CraftingTable) Result() (item.Stack, bool) {
	out, _, ok := Match(t.recipes(), t.Snapshot())
	return out, ok
}

// Take returns the output offered by the grid and removes one item from every non-empty input slot.
func (t *CraftingTable) Take() (item.Stack, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out, _, ok := Match(t.recipes(), t.snapshot())
	if !ok {
		return item.Stack{}, false
	}
	for i, s := range t.grid.Slots {
		if !s.Empty() {
			t.grid.Slots[i] = s.Grow(-1)
		}
	}
	return out, true
}

// Clear empties the grid and returns the stacks that were left in it.
func (t *CraftingTable) Clear() []item.Stack {
	t.mu.Lock()
	defer t.mu.Unlock()
	var left []item.Stack
	for i, s := range t.grid.Slots {
		if !s.Empty() {
			left = append(left, s)
		}
		t.grid.Slots[i] = item.Stack{}
	}
	return left
}

func (t *CraftingTable) snapshot() Grid {
	g := Grid{Width: t.grid.Width, Height: t.grid.Height, Slots: make([]item.Stack, len(t.grid.Slots))}
	copy(g.Slots, t.grid.Slots)
	return g
}
