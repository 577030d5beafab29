package session

import (
	"sync"

	"tutorialmod/server/item"
	"tutorialmod/server/item/inventory"
)

// Container is a container window opened for an actor. The inventory of the container is a view: changes
// made to it only reach their owner once the container is closed.
type Container struct {
	id    int32
	typ   string
	title string
	inv   *inventory.Inventory

	once    sync.Once
	onClose func() ([]item.Stack, error)
}

// ID returns the window ID of the container, unique for the lifetime of the binder that opened it.
func (c *Container) ID() int32 {
	return c.id
}

// Type returns the registered container type, such as tutorial:backpack.
func (c *Container) Type() string {
	return c.typ
}

// Title returns the translation key of the window title.
func (c *Container) Title() string {
	return c.title
}

// Inventory returns the inventory shown in the window.
func (c *Container) Inventory() *inventory.Inventory {
	return c.inv
}

// Close closes the window and writes its inventory back to the owner. Stacks that could not be written back
// are returned so that the caller can drop them. Calling Close more than once is a no-op.
func (c *Container) Close() (leftover []item.Stack, err error) {
	c.once.Do(func() {
		leftover, err = c.onClose()
	})
	return
}
