package world

import (
	"sort"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"tutorialmod/server/item"
)

// ItemEntity is an item stack lying in the world.
type ItemEntity struct {
	Stack item.Stack
	Pos   mgl64.Vec3
	// Owner is the player allowed to pick up the item first. It is uuid.Nil if anyone may.
	Owner uuid.UUID
	// PickupDelay is the time that must pass before the item may be picked up.
	PickupDelay time.Duration
}

// Sound is a sound played at a position in the world.
type Sound struct {
	Name   string
	Pos    mgl64.Vec3
	Volume float64
	Pitch  float64
}

// SoundItemPickup is played when an item is added to the inventory of a player.
const SoundItemPickup = "minecraft:entity.item.pickup"

// DefaultPickupDelay is the pickup delay of items dropped without an explicit delay.
const DefaultPickupDelay = time.Second / 2

// World holds the players and item entities of a single dimension.
type World struct {
	mu       sync.Mutex
	players  map[string]*Player
	entities []ItemEntity
	sounds   []Sound
	onSound  func(s Sound)
}

// New creates an empty world. The function passed is called for every sound played. It may be nil.
func New(onSound func(s Sound)) *World {
	if onSound == nil {
		onSound = func(Sound) {}
	}
	return &World{players: map[string]*Player{}, onSound: onSound}
}

// AddPlayer adds a player to the world. It returns false if a player with the same name is already present.
func (w *World) AddPlayer(p *Player) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[p.Name()]; ok {
		return false
	}
	w.players[p.Name()] = p
	return true
}

// RemovePlayer ...
func (w *World) RemovePlayer(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.players, name)
}

// Player looks up a player by name.
func (w *World) Player(name string) (*Player, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[name]
	return p, ok
}

// Players returns all players in the world sorted by name.
func (w *World) Players() []*Player {
	w.mu.Lock()
	players := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		players = append(players, p)
	}
	w.mu.Unlock()
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name() < players[j].Name()
	})
	return players
}

// DropItem spawns an item entity in the world.
func (w *World) DropItem(e ItemEntity) {
	if e.Stack.Empty() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities = append(w.entities, e)
}

// Entities returns a copy of the item entities currently in the world.
func (w *World) Entities() []ItemEntity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ItemEntity(nil), w.entities...)
}

// PlaySound plays a sound in the world.
func (w *World) PlaySound(s Sound) {
	w.mu.Lock()
	w.sounds = append(w.sounds, s)
	w.mu.Unlock()
	w.onSound(s)
}

// Sounds returns the sounds played so far.
func (w *World) Sounds() []Sound {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Sound(nil), w.sounds...)
}
