package recipe

import (
	"fmt"
	"sort"

	"tutorialmod/server/item"
)

// Recipe is a crafting recipe that computes its output from the whole grid, rather than from a fixed pattern.
type Recipe interface {
	// ID returns the namespaced identifier of the recipe.
	ID() string
	// Matches reports if the grid passed holds a valid set of inputs for the recipe.
	Matches(g Grid) bool
	// TryApply computes the output of the recipe for the grid passed. It returns false if the grid does not
	// match the recipe. TryApply never changes the grid.
	TryApply(g Grid) (item.Stack, bool)
	// CanFit reports if the recipe could ever match in a grid of the dimensions passed.
	CanFit(width, height int) bool
	// Serializer returns the name of the serializer that reads and writes the recipe.
	Serializer() string
}

// Serializer reads recipes of a single type from their definition and writes them back.
type Serializer interface {
	// Read creates a recipe with the identifier passed from its JSON definition.
	Read(id string, definition []byte) (Recipe, error)
	// Write encodes the definition of the recipe passed.
	Write(r Recipe) ([]byte, error)
}

// Serializers holds recipe serializers keyed by a stable name.
type Serializers struct {
	m map[string]Serializer
}

// NewSerializers returns an empty serializer set.
func NewSerializers() *Serializers {
	return &Serializers{m: make(map[string]Serializer)}
}

// Register registers a serializer under the name passed. Register returns an error if the name was already
// taken.
func (s *Serializers) Register(name string, ser Serializer) error {
	if _, ok := s.m[name]; ok {
		return fmt.Errorf("recipe serializer %v registered twice", name)
	}
	s.m[name] = ser
	return nil
}

// Lookup ...
func (s *Serializers) Lookup(name string) (Serializer, bool) {
	ser, ok := s.m[name]
	return ser, ok
}

// Names returns the names of all registered serializers, sorted.
func (s *Serializers) Names() []string {
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the output of the first recipe that matches the grid passed.
func Match(recipes []Recipe, g Grid) (item.Stack, Recipe, bool) {
	for _, r := range recipes {
		if !r.CanFit(g.Width, g.Height) {
			continue
		}
		if out, ok := r.TryApply(g); ok {
			return out, r, true
		}
	}
	return item.Stack{}, nil, false
}
