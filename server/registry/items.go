package registry

import (
	"strconv"
	"strings"

	"github.com/brentp/intintmap"
	"tutorialmod/server/item"
)

// Items is the registry of all items known to the host. It resolves items by the name and meta value they
// encode to.
type Items struct {
	*Registry[item.Item]
}

// NewItems ...
func NewItems() Items {
	return Items{Registry: New[item.Item]("items")}
}

// ItemByName returns the item registered under the name and meta value passed.
func (r Items) ItemByName(name string, meta int16) (item.Item, bool) {
	key := name
	if meta != 0 {
		key = name + ":" + strconv.Itoa(int(meta))
	}
	it, err := r.Get(key)
	return it, err == nil
}

// ItemByID parses an item ID such as "minecraft:red_dye" and returns the item it refers to. IDs without a
// namespace default to the minecraft namespace.
func (r Items) ItemByID(id string) (item.Item, bool) {
	if !strings.Contains(id, ":") {
		id = "minecraft:" + id
	}
	it, err := r.Get(id)
	return it, err == nil
}

// Suggest returns the keys of all items starting with the prefix passed, in registration order. The prefix is
// matched against both the full key and the part after the namespace.
func (r Items) Suggest(prefix string) []string {
	var s []string
	for _, key := range r.Keys() {
		path := key[strings.IndexByte(key, ':')+1:]
		if strings.HasPrefix(key, prefix) || strings.HasPrefix(path, prefix) {
			s = append(s, key)
		}
	}
	return s
}

// DyeTable maps the runtime ID of every colourant item to the colour it contributes.
type DyeTable struct {
	items   Items
	colours *intintmap.Map
}

// NewDyeTable builds the colour table of all colourants in the initialised item registry passed.
func NewDyeTable(items Items) *DyeTable {
	t := &DyeTable{items: items, colours: intintmap.New(32, 0.6)}
	items.Each(func(key string, it item.Item) {
		c, ok := it.(item.Colourant)
		if !ok {
			return
		}
		id, _ := items.RuntimeID(key)
		t.colours.Put(id, int64(c.Colourant().Int()))
	})
	return t
}

// Colourant returns the colour of the item passed if it is a registered colourant.
func (t *DyeTable) Colourant(it item.Item) (item.Colour, bool) {
	id, ok := t.items.RuntimeID(item.ID(it))
	if !ok {
		return item.Colour{}, false
	}
	v, ok := t.colours.Get(id)
	if !ok {
		return item.Colour{}, false
	}
	return item.ColourFromInt(int32(v)), true
}

// Len returns the amount of colourants in the table.
func (t *DyeTable) Len() int {
	return t.colours.Size()
}
