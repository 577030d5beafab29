package mod

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"tutorialmod/server/block"
	"tutorialmod/server/item"
	"tutorialmod/server/recipe"
	"tutorialmod/server/registry"
	"tutorialmod/server/session"
)

// ID is the namespace of all content added by the mod.
const ID = "tutorial"

// DevVersion is the version reported when the mod was not built from a release.
const DevVersion = "NONE"

//go:embed data/*.json
var recipeData embed.FS

// Key returns the namespaced key of the path passed, such as tutorial:backpack.
func Key(path string) string {
	return ID + ":" + path
}

// ContainerType is a registered container window type.
type ContainerType struct {
	Name string
	Size int
}

// Side is the side a Mod runs on.
type Side int

const (
	SideClient Side = iota
	SideDedicatedServer
)

// Mod holds the content registries of the mod and the collaborators built from them.
type Mod struct {
	version string
	side    Side

	Blocks      *registry.Registry[block.Block]
	Items       registry.Items
	Containers  *registry.Registry[ContainerType]
	Serializers *recipe.Serializers

	dyes    *registry.DyeTable
	recipes []recipe.Recipe
	binder  *session.BackpackBinder

	itemColours map[string]func(it item.Item, layer int) item.Colour
	screens     map[string]ScreenFactory
}

// New creates the mod for the side passed and declares all of its content. Nothing is constructed until
// Register is called. An empty version is treated as DevVersion.
func New(version string, side Side) *Mod {
	if version == "" {
		version = DevVersion
	}
	m := &Mod{
		version:     version,
		side:        side,
		Blocks:      registry.New[block.Block]("blocks"),
		Items:       registry.NewItems(),
		Containers:  registry.New[ContainerType]("containers"),
		Serializers: recipe.NewSerializers(),
		itemColours: map[string]func(it item.Item, layer int) item.Colour{},
		screens:     map[string]ScreenFactory{},
	}
	m.declare()
	return m
}

// Version ...
func (m *Mod) Version() string {
	return m.version
}

// IsDevBuild reports if the mod is running from a development build.
func (m *Mod) IsDevBuild() bool {
	return m.version == DevVersion
}

// Side ...
func (m *Mod) Side() Side {
	return m.side
}

// Register constructs all declared content. Blocks are constructed first, so that block items and ores may
// refer to them. Register may only be called once.
func (m *Mod) Register() error {
	for _, init := range []func() error{m.Blocks.Init, m.Items.Init, m.Containers.Init} {
		if err := init(); err != nil {
			return err
		}
	}
	m.dyes = registry.NewDyeTable(m.Items)
	if err := m.Serializers.Register(recipe.RecolourBackpackID, recipe.RecolourBackpackSerializer{Colourants: m.dyes}); err != nil {
		return err
	}
	m.binder = session.NewBackpackBinder(m.Items)
	return m.loadRecipes()
}

// loadRecipes reads the recipe definitions bundled with the mod. The recipe ID is derived from the file name.
func (m *Mod) loadRecipes() error {
	entries, err := recipeData.ReadDir("data")
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := recipeData.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return err
		}
		id := Key(strings.TrimSuffix(e.Name(), ".json"))
		r, err := m.ReadRecipe(id, data)
		if err != nil {
			return err
		}
		m.recipes = append(m.recipes, r)
	}
	return nil
}

// ReadRecipe decodes a recipe definition using the serializer named by its type field.
func (m *Mod) ReadRecipe(id string, definition []byte) (recipe.Recipe, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(definition, &header); err != nil {
		return nil, fmt.Errorf("recipe %v: %w", id, err)
	}
	ser, ok := m.Serializers.Lookup(header.Type)
	if !ok {
		return nil, fmt.Errorf("recipe %v: unknown serializer %v", id, header.Type)
	}
	return ser.Read(id, definition)
}

// Recipes returns the recipes loaded by Register.
func (m *Mod) Recipes() []recipe.Recipe {
	return append([]recipe.Recipe(nil), m.recipes...)
}

// Colourants returns the colourant table built by Register.
func (m *Mod) Colourants() *registry.DyeTable {
	return m.dyes
}

// Binder returns the backpack session binder built by Register.
func (m *Mod) Binder() *session.BackpackBinder {
	return m.binder
}

// NewCraftingTable returns a crafting grid of the size passed that crafts the recipes of the mod.
func (m *Mod) NewCraftingTable(width, height int) *recipe.CraftingTable {
	return recipe.NewCraftingTable(width, height, m.Recipes)
}

// BackpackVariants returns the backpacks shown in the creative inventory: one for every dye colour, coloured
// with the firework colour of the dye.
func BackpackVariants() []item.Backpack {
	colours := item.DyeColours()
	variants := make([]item.Backpack, len(colours))
	for i, c := range colours {
		variants[i] = item.NewBackpack().WithColour(c.FireworkColour())
	}
	return variants
}
