package mod

import (
	"fmt"

	"tutorialmod/server/cmd"
	"tutorialmod/server/item"
	"tutorialmod/server/session"
	"tutorialmod/server/world"
)

// CommonSetup runs on both sides once all content is registered.
func (m *Mod) CommonSetup() {
	if m.IsDevBuild() {
		fmt.Println("Tutorial: commonSetup for Tutorial Mod")
	}
}

// EnqueueIMC sends messages to other mods. The mod has nothing to send.
func (m *Mod) EnqueueIMC() {}

// ProcessIMC handles messages from other mods. The mod accepts none.
func (m *Mod) ProcessIMC() {}

// ServerStarting registers the commands of the mod.
func (m *Mod) ServerStarting(d *cmd.Dispatcher, w *world.World) error {
	return d.Register(cmd.NewGive(w, m.Items).Command())
}

// ClientSetup registers the item colour handler of the backpack and the screen of its container.
func (m *Mod) ClientSetup() {
	if m.side != SideClient {
		return
	}
	m.itemColours[item.BackpackID] = func(it item.Item, layer int) item.Colour {
		return it.(item.Backpack).TintColour(layer)
	}
	m.screens[session.BackpackContainerType] = NewBackpackScreen
}

// DedicatedServerSetup runs on dedicated servers only.
func (m *Mod) DedicatedServerSetup() {}

// ItemColour returns the tint of a layer of the item passed, if a colour handler was registered for it.
func (m *Mod) ItemColour(it item.Item, layer int) (item.Colour, bool) {
	name, _ := it.EncodeItem()
	f, ok := m.itemColours[name]
	if !ok {
		return item.Colour{}, false
	}
	return f(it, layer), true
}
