package tutorial

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/mod"
	"tutorialmod/server/recipe"
	"tutorialmod/server/session"
	"tutorialmod/server/world"
	"tutorialmod/task"
)

type Source struct {
	RegName string `yaml:"reg_name"`
	Plugin  string `yaml:"plugin"`
}

// InventoryStore persists encoded player inventories.
type InventoryStore interface {
	SaveInventory(owner string, data []byte) error
	LoadInventory(owner string) ([]byte, bool, error)
}

// Tutorial hosts the mod: it registers its content at the register stage, wires its lifecycle hooks and
// offers terminal verbs to play with backpacks as the local player.
type Tutorial struct {
	Sources       []Source `yaml:"sources"`
	LogName       string   `yaml:"log_name"`
	LogPlugin     string   `yaml:"log_plugin"`
	StoragePlugin string   `yaml:"storage_plugin"`

	taskIO  *task.TaskIO
	mod     *mod.Mod
	storage InventoryStore
	log     func(isJson bool, data string)
	out     io.Writer

	mu    sync.Mutex
	open  *session.Container
	table *recipe.CraftingTable
}

func (t *Tutorial) New(config []byte) define.Plugin {
	t.Sources = make([]Source, 0)
	t.LogPlugin = "storage"
	t.StoragePlugin = "storage"
	err := yaml.Unmarshal(config, t)
	if err != nil {
		panic(err)
	}
	if t.out == nil {
		t.out = os.Stdout
	}
	return t
}

// Mod returns the mod hosted by the plugin. It is nil before Inject.
func (t *Tutorial) Mod() *mod.Mod {
	return t.mod
}

func (t *Tutorial) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	t.taskIO = taskIO
	side := mod.SideClient
	if taskIO.Settings.Dedicated {
		side = mod.SideDedicatedServer
	}
	t.mod = mod.New(taskIO.Settings.ModVersion, side)

	if t.LogName != "" {
		if w, ok := collaborationContext[t.LogPlugin].(define.StringWriteInterface); ok {
			t.log = w.RegStringSender(t.LogName)
		}
	}
	if s, ok := collaborationContext[t.StoragePlugin].(InventoryStore); ok {
		t.storage = s
	}
	t.addStageCallbacks()
	for _, s := range t.Sources {
		src := collaborationContext[s.Plugin].(define.StringReadInterface)
		src.RegStringInterceptor(s.RegName, func(isJson bool, data string) (bool, string) {
			return t.onNewText(data)
		})
	}
	return t
}

func (t *Tutorial) addStageCallbacks() {
	hooks := map[task.Stage]func() error{
		task.StageRegister: t.mod.Register,
		task.StageCommonSetup: func() error {
			t.mod.CommonSetup()
			return nil
		},
		task.StageEnqueueIMC: func() error {
			t.mod.EnqueueIMC()
			return nil
		},
		task.StageProcessIMC: func() error {
			t.mod.ProcessIMC()
			return nil
		},
		task.StageClientSetup: func() error {
			t.mod.ClientSetup()
			return nil
		},
		task.StageDedicatedServerSetup: func() error {
			t.mod.DedicatedServerSetup()
			return nil
		},
		task.StageServerStarting: func() error {
			return t.mod.ServerStarting(t.taskIO.Commands, t.taskIO.World)
		},
		task.StageServerStopping: func() error {
			t.closeContainer()
			return nil
		},
	}
	for stage, hook := range hooks {
		hook := hook
		if _, err := t.taskIO.AddStageCallback(stage, func(task.Stage, int) error { return hook() }); err != nil {
			panic(fmt.Sprintf("Tutorial: %v", err))
		}
	}
}

// onNewText catches lines starting with one of the verbs of the plugin.
func (t *Tutorial) onNewText(data string) (bool, string) {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return false, data
	}
	verb, ok := verbs[fields[0]]
	if !ok {
		return false, data
	}
	p := t.taskIO.LocalPlayer()
	if p == nil {
		t.printf(color.RedString("no local player"))
		return true, ""
	}
	if t.log != nil {
		t.log(false, data)
	}
	if err := verb(t, p, fields[1:]); err != nil {
		t.printf(color.RedString("%v: %v", fields[0], err))
	}
	return true, ""
}

func (t *Tutorial) printf(format string, a ...interface{}) {
	fmt.Fprintf(t.out, format+"\n", a...)
}

// OpenContainer shows a container window in the terminal.
func (t *Tutorial) OpenContainer(c *session.Container) error {
	screen, ok := t.mod.Screen(c)
	if !ok {
		return fmt.Errorf("no screen registered for %v", c.Type())
	}
	t.mu.Lock()
	t.open = c
	t.mu.Unlock()
	t.printf("%v", screen)
	return nil
}

// closeContainer closes the open window, dropping whatever could not be written back at the local player.
func (t *Tutorial) closeContainer() bool {
	t.mu.Lock()
	c := t.open
	t.open = nil
	t.mu.Unlock()
	if c == nil {
		return false
	}
	leftover, err := c.Close()
	if err != nil {
		t.printf(color.YellowString("Tutorial: %v", err))
	}
	if p := t.taskIO.LocalPlayer(); p != nil {
		for _, s := range leftover {
			t.taskIO.World.DropItem(world.ItemEntity{Stack: s, Pos: p.Position(), Owner: p.UUID()})
		}
	}
	return true
}

func (t *Tutorial) Routine() {

}

func (t *Tutorial) Close() {
	t.closeContainer()
}
