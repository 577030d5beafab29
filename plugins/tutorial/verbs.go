package tutorial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"tutorialmod/mod"
	"tutorialmod/server/item"
	"tutorialmod/server/item/backpack"
	"tutorialmod/server/recipe"
	"tutorialmod/server/session"
	"tutorialmod/server/world"
)

var errNoWindow = errors.New("no backpack is open")

var verbs = map[string]func(t *Tutorial, p *world.Player, args []string) error{
	"inv":      (*Tutorial).inv,
	"hold":     (*Tutorial).hold,
	"use":      (*Tutorial).use,
	"put":      (*Tutorial).put,
	"get":      (*Tutorial).get,
	"close":    (*Tutorial).close,
	"craft":    (*Tutorial).craft,
	"take":     (*Tutorial).take,
	"tint":     (*Tutorial).tint,
	"variants": (*Tutorial).variants,
	"save":     (*Tutorial).save,
	"load":     (*Tutorial).load,
}

func describe(s item.Stack) string {
	if s.Empty() {
		return "-"
	}
	desc := fmt.Sprintf("%v x%d", mod.DisplayName(item.ID(s.Item())), s.Count())
	if b, ok := s.Item().(item.Backpack); ok {
		desc += " " + b.Colour().Hex()
		if b.HasInventory() {
			desc += " (filled)"
		}
	}
	return desc
}

func parseSlot(s string, size int) (int, error) {
	slot, err := strconv.Atoi(s)
	if err != nil || slot < 0 || slot >= size {
		return 0, fmt.Errorf("invalid slot %q", s)
	}
	return slot, nil
}

func (t *Tutorial) inv(p *world.Player, _ []string) error {
	held := p.HeldSlot()
	for slot, s := range p.Inventory().Slots() {
		if s.Empty() && slot != held {
			continue
		}
		marker := " "
		if slot == held {
			marker = color.GreenString(">")
		}
		t.printf("%v%2d %v", marker, slot, describe(s))
	}
	return nil
}

func (t *Tutorial) hold(p *world.Player, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: hold <hotbar slot>")
	}
	slot, err := parseSlot(args[0], 9)
	if err != nil {
		return err
	}
	p.SetHeldSlot(slot)
	t.printf("holding %v", describe(p.HeldItem()))
	return nil
}

func (t *Tutorial) use(p *world.Player, _ []string) error {
	if t.window() != nil {
		return errors.New("close the open backpack first")
	}
	used, err := t.mod.Binder().Use(p, t)
	if err != nil {
		return err
	}
	if !used {
		t.printf("nothing happens")
	}
	return nil
}

// put moves the stack in an inventory slot of the player into a slot of the open backpack.
func (t *Tutorial) put(p *world.Player, args []string) error {
	c := t.window()
	if c == nil {
		return errNoWindow
	}
	if len(args) != 2 {
		return errors.New("usage: put <slot> <backpack slot>")
	}
	from, err := parseSlot(args[0], p.Inventory().Size())
	if err != nil {
		return err
	}
	if from == p.HeldSlot() {
		return errors.New("cannot move the backpack that is open")
	}
	to, err := parseSlot(args[1], c.Inventory().Size())
	if err != nil {
		return err
	}
	return t.move(p.Inventory().Item, p.Inventory().SetItem, from, c.Inventory().Item, c.Inventory().SetItem, to)
}

// get moves the stack in a slot of the open backpack into an inventory slot of the player.
func (t *Tutorial) get(p *world.Player, args []string) error {
	c := t.window()
	if c == nil {
		return errNoWindow
	}
	if len(args) != 2 {
		return errors.New("usage: get <backpack slot> <slot>")
	}
	from, err := parseSlot(args[0], c.Inventory().Size())
	if err != nil {
		return err
	}
	to, err := parseSlot(args[1], p.Inventory().Size())
	if err != nil {
		return err
	}
	if to == p.HeldSlot() {
		return errors.New("cannot replace the backpack that is open")
	}
	return t.move(c.Inventory().Item, c.Inventory().SetItem, from, p.Inventory().Item, p.Inventory().SetItem, to)
}

func (t *Tutorial) move(getFrom func(int) (item.Stack, error), setFrom func(int, item.Stack) error, from int,
	getTo func(int) (item.Stack, error), setTo func(int, item.Stack) error, to int) error {
	src, err := getFrom(from)
	if err != nil {
		return err
	}
	if src.Empty() {
		return fmt.Errorf("slot %v is empty", from)
	}
	dst, err := getTo(to)
	if err != nil {
		return err
	}
	if !dst.Empty() {
		return fmt.Errorf("slot %v is taken by %v", to, describe(dst))
	}
	if err := setTo(to, src); err != nil {
		return err
	}
	if err := setFrom(from, item.Stack{}); err != nil {
		_ = setTo(to, dst)
		return err
	}
	t.printf("moved %v", describe(src))
	if c := t.window(); c != nil {
		if screen, ok := t.mod.Screen(c); ok {
			t.printf("%v", screen)
		}
	}
	return nil
}

func (t *Tutorial) window() *session.Container {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *Tutorial) close(p *world.Player, _ []string) error {
	if !t.closeContainer() {
		return errNoWindow
	}
	t.printf("holding %v", describe(p.HeldItem()))
	return nil
}

// craft fills a new crafting grid with the stacks taken from the inventory slots passed, row by row. A dash
// leaves a grid slot empty.
func (t *Tutorial) craft(p *world.Player, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: craft <w>x<h> <slot|-> ...")
	}
	var w, h int
	if _, err := fmt.Sscanf(args[0], "%dx%d", &w, &h); err != nil || w < 1 || h < 1 || w > 3 || h > 3 {
		return fmt.Errorf("invalid grid size %q", args[0])
	}
	slots := args[1:]
	if len(slots) > w*h {
		return fmt.Errorf("a %vx%v grid has only %v slots", w, h, w*h)
	}
	t.returnGrid(p)
	table := t.mod.NewCraftingTable(w, h)
	for i, arg := range slots {
		if arg == "-" {
			continue
		}
		from, err := parseSlot(arg, p.Inventory().Size())
		if err != nil {
			t.returnTable(p, table)
			return err
		}
		s, _ := p.Inventory().Item(from)
		if s.Empty() {
			continue
		}
		if err := table.Set(i, s); err != nil {
			t.returnTable(p, table)
			return err
		}
		_ = p.Inventory().SetItem(from, item.Stack{})
	}
	t.mu.Lock()
	t.table = table
	t.mu.Unlock()
	if out, ok := table.Result(); ok {
		t.printf("result: %v", describe(out))
	} else {
		t.printf("no recipe matches")
	}
	return nil
}

// take crafts the result of the grid filled by craft into the inventory and returns what is left in the grid.
func (t *Tutorial) take(p *world.Player, _ []string) error {
	t.mu.Lock()
	table := t.table
	t.table = nil
	t.mu.Unlock()
	if table == nil {
		return errors.New("nothing is being crafted")
	}
	out, ok := table.Take()
	if ok {
		t.give(p, out)
		t.printf("crafted %v", describe(out))
	} else {
		t.printf("no recipe matches")
	}
	t.returnTable(p, table)
	return nil
}

func (t *Tutorial) returnGrid(p *world.Player) {
	t.mu.Lock()
	table := t.table
	t.table = nil
	t.mu.Unlock()
	if table != nil {
		t.returnTable(p, table)
	}
}

func (t *Tutorial) returnTable(p *world.Player, table *recipe.CraftingTable) {
	for _, s := range table.Clear() {
		t.give(p, s)
	}
}

// give adds a stack to the inventory of the player and drops what does not fit.
func (t *Tutorial) give(p *world.Player, s item.Stack) {
	if s.Empty() {
		return
	}
	n, _ := p.Inventory().AddItem(s)
	if n < s.Count() {
		t.taskIO.World.DropItem(world.ItemEntity{Stack: s.Grow(n - s.Count()), Pos: p.Position(), Owner: p.UUID()})
	}
}

// tint shows the tint of the held item. With a colour argument, it previews the colour the held backpack
// would get if dyed with that colour.
func (t *Tutorial) tint(p *world.Player, args []string) error {
	held := p.HeldItem()
	if held.Empty() {
		return errors.New("not holding anything")
	}
	if len(args) == 0 {
		for layer := 0; layer < 2; layer++ {
			c, ok := t.mod.ItemColour(held.Item(), layer)
			if !ok {
				t.printf("%v has no tint", describe(held))
				return nil
			}
			t.printf("layer %v: %v", layer, c.Hex())
		}
		return nil
	}
	b, ok := held.Item().(item.Backpack)
	if !ok {
		return errors.New("only backpacks can be dyed")
	}
	var colours []item.Colour
	for _, arg := range args {
		c, err := item.ColourFromHex(arg)
		if err != nil {
			if d, ok := item.DyeColourByName(strings.ToLower(arg)); ok {
				c = d.Colour()
			} else {
				return fmt.Errorf("invalid colour %q", arg)
			}
		}
		colours = append(colours, c)
	}
	current := b.Colour()
	out, ok := recipe.BlendColours(&current, colours)
	if !ok {
		return errors.New("nothing to blend")
	}
	t.printf("%v -> %v", current.Hex(), out.Hex())
	return nil
}

func (t *Tutorial) variants(_ *world.Player, _ []string) error {
	colours := item.DyeColours()
	for i, b := range mod.BackpackVariants() {
		t.printf("%-10v %v", colours[i].Name(), b.Colour().Hex())
	}
	return nil
}

func (t *Tutorial) save(p *world.Player, _ []string) error {
	if t.storage == nil {
		return errors.New("no storage configured")
	}
	data, err := backpack.EncodeStacks(p.Inventory().Slots(), t.mod.Items)
	if err != nil {
		return err
	}
	if err := t.storage.SaveInventory(p.Name(), data); err != nil {
		return err
	}
	t.printf("saved inventory of %v", p.Name())
	return nil
}

func (t *Tutorial) load(p *world.Player, _ []string) error {
	if t.storage == nil {
		return errors.New("no storage configured")
	}
	if t.window() != nil {
		return errors.New("close the open backpack first")
	}
	data, ok, err := t.storage.LoadInventory(p.Name())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no inventory stored for %v", p.Name())
	}
	stacks, err := backpack.DecodeStacks(data, t.mod.Items)
	if err != nil {
		return err
	}
	p.Inventory().Clear()
	for slot, s := range stacks {
		if slot >= p.Inventory().Size() || s.Empty() {
			continue
		}
		if err := p.Inventory().SetItem(slot, s); err != nil {
			return err
		}
	}
	t.printf("loaded inventory of %v", p.Name())
	return nil
}
