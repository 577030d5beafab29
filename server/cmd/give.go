package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Tnze/go-mc/chat"
	"tutorialmod/server/item"
	"tutorialmod/server/registry"
	"tutorialmod/server/world"
)

var (
	errNoPlayer  = errors.New("No player was found")
	errNotPlayer = errors.New("A player is required to run this command here")
)

// GivePermission is the permission level required to run sgive.
const GivePermission = 2

// MaxGiveCount is the largest count sgive accepts: a full player inventory of 64-stacks.
const MaxGiveCount = 64 * 36

// Give gives items by ID to players:
//
//	sgive <targets> <itemID> [count]
//
// Targets are @a, @s or a comma separated list of player names.
type Give struct {
	w     *world.World
	items registry.Items

	mu sync.Mutex
	r  *rand.Rand
}

// NewGive returns the sgive command for the players of w, looking up items in items.
func NewGive(w *world.World, items registry.Items) *Give {
	return &Give{w: w, items: items, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Command returns the command to register with a Dispatcher.
func (g *Give) Command() Command {
	return Command{
		Name:       "sgive",
		Usage:      "sgive <targets> <itemID> [count]",
		Permission: GivePermission,
		Run:        g.Run,
		Complete:   g.Complete,
	}
}

// Run ...
func (g *Give) Run(src Source, args []string) int {
	if len(args) < 2 || len(args) > 3 {
		src.Message(errorMessage("Usage: sgive <targets> <itemID> [count]"))
		return 0
	}
	count := 1
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			src.Message(errorMessage(fmt.Sprintf("Invalid count '%v'", args[2])))
			return 0
		}
		if n > MaxGiveCount {
			src.Message(errorMessage(fmt.Sprintf("Count %v is larger than the maximum of %v", n, MaxGiveCount)))
			return 0
		}
		count = n
	}
	targets, err := g.targets(src, args[0])
	if err != nil {
		src.Message(errorMessage(err.Error()))
		return 0
	}
	it, ok := g.items.ItemByID(args[1])
	if !ok {
		src.Message(errorMessage(fmt.Sprintf("Item '%v' does not exist?", args[1])))
		return 0
	}
	for _, p := range targets {
		g.giveItem(p, it, count)
	}

	name := item.ID(it)
	if len(targets) == 1 {
		src.Message(chat.Text(fmt.Sprintf("Gave %d [%v] to %v", count, name, targets[0].Name())))
	} else {
		src.Message(chat.Text(fmt.Sprintf("Gave %d [%v] to %d players", count, name, len(targets))))
	}
	return len(targets)
}

// giveItem adds count of it to the inventory of p in stacks of at most the max count of the item. Whatever
// does not fit is dropped at the player, owned by them and without pickup delay.
func (g *Give) giveItem(p *world.Player, it item.Item, count int) {
	maxCount := item.NewStack(it, 1).MaxCount()
	for remaining := count; remaining > 0; {
		n := maxCount
		if remaining < n {
			n = remaining
		}
		remaining -= n

		stack := item.NewStack(it, n)
		added, _ := p.Inventory().AddItem(stack)
		if added == n {
			g.w.PlaySound(world.Sound{
				Name:   world.SoundItemPickup,
				Pos:    p.Position(),
				Volume: 0.2,
				Pitch:  g.pitch(),
			})
			continue
		}
		g.w.DropItem(world.ItemEntity{
			Stack: stack.Grow(-added),
			Pos:   p.Position(),
			Owner: p.UUID(),
		})
	}
}

func (g *Give) pitch() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ((g.r.Float64()-g.r.Float64())*0.7 + 1) * 2
}

func (g *Give) targets(src Source, selector string) ([]*world.Player, error) {
	switch selector {
	case "@a":
		players := g.w.Players()
		if len(players) == 0 {
			return nil, errNoPlayer
		}
		return players, nil
	case "@s":
		p, ok := g.w.Player(src.Name())
		if !ok {
			return nil, errNotPlayer
		}
		return []*world.Player{p}, nil
	}
	var players []*world.Player
	for _, name := range strings.Split(selector, ",") {
		p, ok := g.w.Player(name)
		if !ok {
			return nil, errNoPlayer
		}
		players = append(players, p)
	}
	return players, nil
}

// Complete suggests selectors and player names for the first argument and item IDs for the second.
func (g *Give) Complete(_ Source, args []string) []string {
	switch len(args) {
	case 1:
		var out []string
		for _, s := range append([]string{"@a", "@s"}, g.playerNames()...) {
			if strings.HasPrefix(s, args[0]) {
				out = append(out, s)
			}
		}
		return out
	case 2:
		return g.items.Suggest(args[1])
	}
	return nil
}

func (g *Give) playerNames() []string {
	players := g.w.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name()
	}
	return names
}
