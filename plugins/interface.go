package plugins

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

type stringInterceptor struct {
	name      string
	intercept func(isJson bool, data string) (bool, string)
}

// interceptors is an ordered set of string interceptors. Interceptors run in the order they were added.
type interceptors struct {
	mu    sync.Mutex
	count int
	m     map[int]stringInterceptor
}

func newInterceptors() *interceptors {
	return &interceptors{m: make(map[int]stringInterceptor)}
}

func (is *interceptors) add(name string, intercept func(isJson bool, data string) (bool, string)) int {
	is.mu.Lock()
	defer is.mu.Unlock()
	c := is.count + 1
	if c == 0 {
		panic("RegStringInterceptors Over Limit!")
	}
	is.count = c
	is.m[c] = stringInterceptor{name: name, intercept: intercept}
	return c
}

func (is *interceptors) remove(id int) bool {
	is.mu.Lock()
	defer is.mu.Unlock()
	_, ok := is.m[id]
	if ok {
		delete(is.m, id)
	}
	return ok
}

// run passes data through the interceptors until one of them catches it.
func (is *interceptors) run(isJson bool, data string, echo func(name, data string)) (bool, string) {
	is.mu.Lock()
	ids := make([]int, 0, len(is.m))
	for id := range is.m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	list := make([]stringInterceptor, len(ids))
	for i, id := range ids {
		list[i] = is.m[id]
	}
	is.mu.Unlock()
	var catch bool
	for _, intercept := range list {
		if echo != nil {
			echo(intercept.name, data)
		}
		catch, data = intercept.intercept(isJson, data)
		if catch {
			break
		}
	}
	return catch, data
}

// CliInterface reads lines from the terminal and passes them to the registered interceptors. Lines nobody
// catches are sent as chat by the local player. Strings sent to it are printed.
type CliInterface struct {
	Prefix string `yaml:"chat_prefix"`
	Echo   bool   `yaml:"echo"`
	// Speaker is the name chat lines are sent as. It defaults to the name of the local player.
	Speaker              string `yaml:"speaker"`
	taskIO               *task.TaskIO
	collaborationContext map[string]define.Plugin
	mu                   sync.Mutex
	stringSender         map[string]func(isJson bool, data string)
	stringInterceptors   *interceptors
	in                   io.Reader
	out                  io.Writer
	closed               chan struct{}
}

func (u *CliInterface) New(config []byte) define.Plugin {
	err := yaml.Unmarshal(config, u)
	if err != nil {
		panic(err)
	}
	u.stringSender = make(map[string]func(isJson bool, data string))
	u.stringInterceptors = newInterceptors()
	if u.in == nil {
		u.in = os.Stdin
	}
	if u.out == nil {
		u.out = os.Stdout
	}
	u.closed = make(chan struct{})
	return u
}

func (u *CliInterface) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	u.taskIO = taskIO
	u.collaborationContext = collaborationContext
	if u.Speaker == "" && taskIO.LocalPlayer() != nil {
		u.Speaker = taskIO.LocalPlayer().Name()
	}
	return u
}

func (u *CliInterface) RegStringSender(name string) func(isJson bool, data string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, hasK := u.stringSender[name]
	if hasK {
		return nil
	}
	fn := func(isJson bool, data string) {
		u.NewString(name, isJson, data)
	}
	u.stringSender[name] = fn
	return fn
}

func (u *CliInterface) RegStringInterceptor(name string, intercept func(isJson bool, data string) (bool, string)) int {
	return u.stringInterceptors.add(name, intercept)
}

func (u *CliInterface) RemoveStringInterceptor(interceptID int) {
	u.stringInterceptors.remove(interceptID)
}

func (u *CliInterface) NewString(source string, isJson bool, data string) {
	data = strings.TrimSpace(data)
	if isJson {
		var anyData interface{}
		err := json.Unmarshal([]byte(data), &anyData)
		if err == nil {
			fmt.Fprintf(u.out, "(%v) Json> %v\n", source, anyData)
		} else {
			fmt.Fprintf(u.out, "(%v) BrokenJson(%v)> %v\n", source, err, data)
		}
	} else {
		fmt.Fprintf(u.out, "(%v) Text> %v\n", color.CyanString(source), data)
	}
}

// Feed handles a single line as if it was typed in the terminal.
func (u *CliInterface) Feed(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	var echo func(name, data string)
	if u.Echo {
		echo = func(name, data string) { fmt.Fprintf(u.out, "(%s) < %s\n", name, data) }
	}
	catch, _ := u.stringInterceptors.run(false, s, echo)
	if !catch {
		fmt.Fprintf(u.out, "(%s) < %s\n", "game", u.Prefix+s)
		u.taskIO.Chat(u.Speaker, u.Prefix+s)
	}
}

func (u *CliInterface) Routine() {
	u.taskIO.WaitInit()
	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		select {
		case <-u.closed:
			return
		default:
		}
		u.Feed(scanner.Text())
	}
}

func (u *CliInterface) Close() {
	close(u.closed)
}
