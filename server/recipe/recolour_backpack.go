package recipe

import (
	"encoding/json"
	"fmt"

	"tutorialmod/server/item"
)

// RecolourBackpackID is the identifier of the backpack recolouring recipe and of its serializer.
const RecolourBackpackID = "tutorial:recolor_backpack"

// ColourantResolver resolves the colour an item contributes when used as a colourant.
type ColourantResolver interface {
	// Colourant returns the colour of the item passed, or false if the item is not a colourant.
	Colourant(it item.Item) (item.Colour, bool)
}

// ColourantFunc is a ColourantResolver implemented by a function.
type ColourantFunc func(it item.Item) (item.Colour, bool)

// Colourant ...
func (f ColourantFunc) Colourant(it item.Item) (item.Colour, bool) {
	return f(it)
}

// ItemColourants resolves every item implementing item.Colourant.
var ItemColourants = ColourantFunc(func(it item.Item) (item.Colour, bool) {
	if c, ok := it.(item.Colourant); ok {
		return c.Colourant(), true
	}
	return item.Colour{}, false
})

// RecolourBackpack is the recipe that dyes a backpack. It takes exactly one backpack and at least one
// colourant, and nothing else. The colourants are mixed into the colour of the backpack using BlendColours.
// The backpack keeps its contents.
type RecolourBackpack struct {
	id        string
	colourant ColourantResolver
}

// NewRecolourBackpack returns the recipe with the id passed, resolving colourants using the resolver passed.
// If the resolver is nil, ItemColourants is used.
func NewRecolourBackpack(id string, r ColourantResolver) RecolourBackpack {
	if r == nil {
		r = ItemColourants
	}
	return RecolourBackpack{id: id, colourant: r}
}

// ID ...
func (r RecolourBackpack) ID() string {
	return r.id
}

// Serializer ...
func (RecolourBackpack) Serializer() string {
	return RecolourBackpackID
}

// CanFit reports if the grid can hold both a backpack and a colourant.
func (RecolourBackpack) CanFit(width, height int) bool {
	return width*height >= 2
}

// Matches ...
func (r RecolourBackpack) Matches(g Grid) bool {
	_, _, ok := r.collect(g)
	return ok
}

// TryApply returns a copy of the backpack in the grid, dyed with all colourants in the grid. The inventory data
// of the copy is identical to that of the backpack in the grid.
func (r RecolourBackpack) TryApply(g Grid) (item.Stack, bool) {
	backpack, colours, ok := r.collect(g)
	if !ok {
		return item.Stack{}, false
	}
	result := backpack.Clone()

	var existing *item.Colour
	if c := backpack.Colour(); !c.IsDefault() {
		existing = &c
	}
	if c, ok := BlendColours(existing, colours); ok {
		result = result.WithColour(c)
	}
	return item.NewStack(result, 1), true
}

// collect finds the backpack and the colours of the colourants in the grid. It returns false if the grid does
// not hold exactly one backpack, holds no colourants or holds anything else.
func (r RecolourBackpack) collect(g Grid) (backpack item.Backpack, colours []item.Colour, ok bool) {
	if !g.Valid() || !r.CanFit(g.Width, g.Height) {
		return item.Backpack{}, nil, false
	}
	backpacks := 0
	for _, s := range g.Slots {
		if s.Empty() {
			continue
		}
		if b, isBackpack := s.Item().(item.Backpack); isBackpack {
			backpack = b
			backpacks++
			continue
		}
		c, isColourant := r.colourant.Colourant(s.Item())
		if !isColourant {
			return item.Backpack{}, nil, false
		}
		colours = append(colours, c)
	}
	if backpacks != 1 || len(colours) == 0 {
		return item.Backpack{}, nil, false
	}
	return backpack, colours, true
}

// RecolourBackpackSerializer reads and writes RecolourBackpack recipes. The recipe has no settings, so the
// definition is only checked for being valid JSON.
type RecolourBackpackSerializer struct {
	Colourants ColourantResolver
}

// Read ...
func (s RecolourBackpackSerializer) Read(id string, definition []byte) (Recipe, error) {
	if len(definition) > 0 && !json.Valid(definition) {
		return nil, fmt.Errorf("recipe %v: definition is not valid JSON", id)
	}
	return NewRecolourBackpack(id, s.Colourants), nil
}

// Write ...
func (RecolourBackpackSerializer) Write(r Recipe) ([]byte, error) {
	if _, ok := r.(RecolourBackpack); !ok {
		return nil, fmt.Errorf("recipe %v is not a backpack recolouring recipe", r.ID())
	}
	return json.Marshal(map[string]string{"type": RecolourBackpackID})
}
