package world

import (
	"sync"

	"github.com/Tnze/go-mc/chat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"tutorialmod/server/item"
	"tutorialmod/server/item/inventory"
)

// PlayerInventorySize is the amount of slots in the main inventory of a player. The first 9 slots form the
// hotbar.
const PlayerInventorySize = 36

// Player is a player in the world. It holds an inventory, a position and a permission level, and receives
// chat messages through the function it was created with.
type Player struct {
	id   uuid.UUID
	name string
	inv  *inventory.Inventory

	mu         sync.Mutex
	pos        mgl64.Vec3
	heldSlot   int
	permission int
	remote     bool
	messages   func(msg chat.Message)
}

// NewPlayer creates a new player with an empty inventory. The function passed is called for every message
// sent to the player. It may be nil.
func NewPlayer(name string, pos mgl64.Vec3, messages func(msg chat.Message)) *Player {
	if messages == nil {
		messages = func(chat.Message) {}
	}
	return &Player{
		id:       uuid.New(),
		name:     name,
		inv:      inventory.New(PlayerInventorySize, nil),
		pos:      pos,
		messages: messages,
	}
}

// UUID ...
func (p *Player) UUID() uuid.UUID {
	return p.id
}

// Name ...
func (p *Player) Name() string {
	return p.name
}

// Inventory returns the main inventory of the player.
func (p *Player) Inventory() *inventory.Inventory {
	return p.inv
}

// Position ...
func (p *Player) Position() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Move sets the position of the player.
func (p *Player) Move(pos mgl64.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
}

// HeldSlot returns the hotbar slot of the item held in the main hand.
func (p *Player) HeldSlot() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.heldSlot
}

// SetHeldSlot changes the hotbar slot held in the main hand.
func (p *Player) SetHeldSlot(slot int) bool {
	if slot < 0 || slot > 8 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.heldSlot = slot
	return true
}

// HeldItem returns the stack held in the main hand.
func (p *Player) HeldItem() item.Stack {
	s, _ := p.inv.Item(p.HeldSlot())
	return s
}

// PermissionLevel returns the permission level of the player. Operators have level 2 or higher.
func (p *Player) PermissionLevel() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission
}

// SetPermissionLevel ...
func (p *Player) SetPermissionLevel(level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.permission = level
}

// Remote reports if the player is a client-side copy of a player simulated elsewhere.
func (p *Player) Remote() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remote
}

// SetRemote ...
func (p *Player) SetRemote(remote bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remote = remote
}

// Message sends a chat message to the player.
func (p *Player) Message(msg chat.Message) {
	p.messages(msg)
}

// Messagef sends a plain text message to the player.
func (p *Player) Messagef(text string) {
	p.messages(chat.Text(text))
}
