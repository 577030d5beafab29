package mod

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"tutorialmod/server/item"
	"tutorialmod/server/session"
)

var titleCaser = cases.Title(language.English)

// lang holds display names that cannot be derived from their key.
var lang = map[string]string{
	session.BackpackTitle: "Backpack",
}

// DisplayName returns the English display name of a registry key or translation key, such as Ruby Ore for
// tutorial:ruby_ore.
func DisplayName(key string) string {
	if s, ok := lang[key]; ok {
		return s
	}
	if i := strings.LastIndexAny(key, ":."); i >= 0 {
		key = key[i+1:]
	}
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// ScreenFactory creates the screen showing an open container.
type ScreenFactory func(c *session.Container) fmt.Stringer

// Screen returns a screen for the container passed, if a factory was registered for its type.
func (m *Mod) Screen(c *session.Container) (fmt.Stringer, bool) {
	f, ok := m.screens[c.Type()]
	if !ok {
		return nil, false
	}
	return f(c), true
}

// BackpackScreen renders a backpack window as text: the title followed by three rows of nine slots.
type BackpackScreen struct {
	c *session.Container
}

// NewBackpackScreen ...
func NewBackpackScreen(c *session.Container) fmt.Stringer {
	return BackpackScreen{c: c}
}

// String ...
func (s BackpackScreen) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %v", s.c.ID(), DisplayName(s.c.Title()))
	for i, st := range s.c.Inventory().Slots() {
		if i%9 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" | ")
		}
		if st.Empty() {
			b.WriteString("-")
			continue
		}
		fmt.Fprintf(&b, "%v x%d", DisplayName(item.ID(st.Item())), st.Count())
	}
	return b.String()
}
