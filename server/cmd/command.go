package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Tnze/go-mc/chat"
)

// Source is the sender of a command.
type Source interface {
	// Name is the display name of the source.
	Name() string
	// PermissionLevel is compared against the level a command requires. The console has level 4.
	PermissionLevel() int
	// Message sends feedback to the source.
	Message(msg chat.Message)
}

// Command is a command registered with a Dispatcher.
type Command struct {
	Name string
	// OwnedKeywords are additional names the command may be invoked with.
	OwnedKeywords []string
	Usage         string
	// Permission is the minimum permission level of a source running the command.
	Permission int
	// Run executes the command with the arguments following the command name. It returns the result of the
	// command, which is 0 if it failed.
	Run func(src Source, args []string) int
	// Complete returns suggestions for the last argument in args. It may be nil.
	Complete func(src Source, args []string) []string
}

var (
	// ErrUnknownCommand is returned when a line names a command that was never registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrPermission is returned when a source lacks the permission level of a command.
	ErrPermission = errors.New("insufficient permission")
)

// Dispatcher maps command names to commands.
type Dispatcher struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewDispatcher ...
func NewDispatcher() *Dispatcher {
	return &Dispatcher{commands: map[string]*Command{}}
}

// Register adds a command to the dispatcher. It fails if the name or one of the keywords is taken.
func (d *Dispatcher) Register(c Command) error {
	if c.Name == "" || c.Run == nil {
		return fmt.Errorf("register command %q: name and run function required", c.Name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	names := append([]string{c.Name}, c.OwnedKeywords...)
	for _, name := range names {
		if _, ok := d.commands[name]; ok {
			return fmt.Errorf("register command %q: %q already registered", c.Name, name)
		}
	}
	for _, name := range names {
		d.commands[name] = &c
	}
	return nil
}

// Commands returns the names of all registered commands, keywords excluded, sorted.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.commands))
	for name, c := range d.commands {
		if name == c.Name {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Execute parses a command line and runs the command it names. A leading slash is optional.
func (d *Dispatcher) Execute(src Source, line string) (int, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(fields) == 0 {
		return 0, ErrUnknownCommand
	}
	c, err := d.lookup(src, fields[0])
	if err != nil {
		src.Message(errorMessage(fmt.Sprintf("%v: %v", err, fields[0])))
		return 0, err
	}
	return c.Run(src, fields[1:]), nil
}

// Complete returns the suggestions for the last word of a partial command line.
func (d *Dispatcher) Complete(src Source, line string) []string {
	line = strings.TrimPrefix(strings.TrimLeft(line, " "), "/")
	fields := strings.Fields(line)
	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(line, " ")) {
		var prefix string
		if len(fields) == 1 {
			prefix = fields[0]
		}
		var out []string
		for _, name := range d.Commands() {
			if c, err := d.lookup(src, name); err == nil && strings.HasPrefix(c.Name, prefix) {
				out = append(out, name)
			}
		}
		return out
	}
	c, err := d.lookup(src, fields[0])
	if err != nil || c.Complete == nil {
		return nil
	}
	args := fields[1:]
	if strings.HasSuffix(line, " ") {
		args = append(args, "")
	}
	return c.Complete(src, args)
}

func (d *Dispatcher) lookup(src Source, name string) (*Command, error) {
	d.mu.RLock()
	c, ok := d.commands[name]
	d.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownCommand
	}
	if src.PermissionLevel() < c.Permission {
		return nil, ErrPermission
	}
	return c, nil
}

func errorMessage(text string) chat.Message {
	msg := chat.Text(text)
	msg.Color = "red"
	return msg
}
