package plugins

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Tnze/go-mc/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tutorialmod/define"
	"tutorialmod/server/cmd"
	"tutorialmod/task"
)

// host wires plugins together the way the loader in main does.
type host struct {
	io  *task.TaskIO
	ctx map[string]define.Plugin
}

func newHost(t *testing.T) *host {
	io := task.NewTaskIO()
	local, err := io.NewPlayer("Steve", 2)
	require.NoError(t, err)
	io.SetLocalPlayer(local)
	require.NoError(t, io.Commands.Register(cmd.Command{
		Name:       "whoami",
		Permission: 1,
		Run: func(src cmd.Source, args []string) int {
			src.Message(chat.Text("you are " + src.Name()))
			return 1
		},
	}))
	return &host{io: io, ctx: map[string]define.Plugin{}}
}

func (h *host) load(name string, p define.Plugin, config string) define.Plugin {
	p = p.New([]byte(config)).Inject(h.io, h.ctx)
	h.ctx[name] = p
	return p
}

func (h *host) cli(out *bytes.Buffer) *CliInterface {
	return h.load("interface", &CliInterface{out: out, in: strings.NewReader("")}, "chat_prefix: \"\"\n").(*CliInterface)
}

func TestCliInterceptorsRunInOrder(t *testing.T) {
	h := newHost(t)
	var out bytes.Buffer
	cli := h.cli(&out)

	var seen []string
	cli.RegStringInterceptor("first", func(_ bool, data string) (bool, string) {
		seen = append(seen, "first:"+data)
		return false, strings.ToUpper(data)
	})
	id := cli.RegStringInterceptor("second", func(_ bool, data string) (bool, string) {
		seen = append(seen, "second:"+data)
		return true, data
	})
	cli.Feed("  hello ")
	assert.Equal(t, []string{"first:hello", "second:HELLO"}, seen)

	cli.RemoveStringInterceptor(id)
	seen = nil
	var chats []task.ChatMessage
	h.io.AddChatCallback(func(msg task.ChatMessage, _ int) { chats = append(chats, msg) })
	cli.Feed("hi all")
	assert.Equal(t, []string{"first:hi all"}, seen)
	require.Len(t, chats, 1)
	assert.Equal(t, "Steve", chats[0].Source)
	assert.Equal(t, "hi all", chats[0].Message.ClearString())
}

func TestCliStringSender(t *testing.T) {
	h := newHost(t)
	var out bytes.Buffer
	cli := h.cli(&out)

	send := cli.RegStringSender("chat")
	require.NotNil(t, send)
	assert.Nil(t, cli.RegStringSender("chat"))
	send(false, "text")
	send(true, `{"a":1}`)
	assert.Contains(t, out.String(), "Text> text")
	assert.Contains(t, out.String(), "Json> map[a:1]")
}

func TestCliRoutineReadsLines(t *testing.T) {
	h := newHost(t)
	var out bytes.Buffer
	cli := h.load("interface", &CliInterface{out: &out, in: strings.NewReader("one\ntwo\n")}, "").(*CliInterface)
	var lines []string
	cli.RegStringInterceptor("all", func(_ bool, data string) (bool, string) {
		lines = append(lines, data)
		return true, data
	})

	done := make(chan struct{})
	go func() {
		cli.Routine()
		close(done)
	}()
	require.NoError(t, h.io.Fire(task.StageServerStarting))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("routine did not finish reading")
	}
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestSendCmdLine(t *testing.T) {
	h := newHost(t)
	var out bytes.Buffer
	cli := h.cli(&out)
	h.load("send_cmd_line", &SendCmdLine{}, `
sources:
  - plugin: interface
    reg_name: cmd
    prefix: /
`)
	var heard []string
	h.io.AddChatCallback(func(msg task.ChatMessage, _ int) { heard = append(heard, msg.Message.ClearString()) })

	cli.Feed("/whoami")
	assert.Equal(t, []string{"you are Steve"}, heard)

	cli.Feed("whoami")
	assert.Equal(t, []string{"you are Steve", "whoami"}, heard)
}

func TestShowChat(t *testing.T) {
	h := newHost(t)
	var out bytes.Buffer
	h.cli(&out)
	show := h.load("show_chat", &ShowChat{}, `
hint: chat
dests:
  - plugin: interface
    format: "[src] -> [dst]: [msg]"
    filter: ["secret"]
`).(*ShowChat)

	h.io.Chat("Alex", "hello")
	h.io.TalkTo("Steve", "psst")
	h.io.Chat("Alex", "a secret")
	assert.Contains(t, out.String(), "Alex -> @a: hello")
	assert.Contains(t, out.String(), "Server -> Steve: psst")
	assert.NotContains(t, out.String(), "secret")

	show.Close()
	out.Reset()
	h.io.Chat("Alex", "gone")
	assert.Empty(t, out.String())
}

func TestShowChatFilters(t *testing.T) {
	h := newHost(t)
	show := &ShowChat{taskIO: h.io}
	steve := task.ChatMessage{Source: "Steve"}
	server := task.ChatMessage{Target: "Steve"}
	broadcast := task.ChatMessage{Source: "Alex"}

	assert.True(t, show.filtered([]string{"not me"}, steve, ""))
	assert.False(t, show.filtered([]string{"not me"}, broadcast, ""))
	assert.True(t, show.filtered([]string{"chat only"}, server, ""))
	assert.True(t, show.filtered([]string{"broadcast only"}, server, ""))
	assert.False(t, show.filtered([]string{"broadcast only"}, broadcast, ""))
}

func TestReadChat(t *testing.T) {
	h := newHost(t)
	rc := h.load("read_chat", &ReadChat{}, "user: Alex\nformat: \"[src]: [msg]\"\n").(*ReadChat)
	var got []string
	rc.RegStringInterceptor("test", func(_ bool, data string) (bool, string) {
		got = append(got, data)
		return true, data
	})
	h.io.Chat("Alex", " hi ")
	h.io.Chat("Steve", "ignored")
	h.io.Say(false, "also ignored")
	assert.Equal(t, []string{"Alex: hi"}, got)
}

func TestSendChat(t *testing.T) {
	h := newHost(t)
	var out bytes.Buffer
	cli := h.cli(&out)
	h.load("send_chat", &SendChat{}, `
sources:
  - plugin: interface
    reg_name: say
    perfix: "[console] "
`)
	var heard []task.ChatMessage
	h.io.AddChatCallback(func(msg task.ChatMessage, _ int) { heard = append(heard, msg) })
	cli.Feed("maintenance soon")
	require.Len(t, heard, 1)
	assert.Equal(t, "", heard[0].Source)
	assert.Equal(t, "[console] maintenance soon", heard[0].Message.ClearString())
}

func TestAskForOP(t *testing.T) {
	h := newHost(t)
	_, err := h.io.NewPlayer("Alex", 0)
	require.NoError(t, err)
	op := h.load("ask_for_op", &AskForOP{}, `
operators:
  - name: Alex
  - name: Steve
    level: 4
  - name: Nobody
`).(*AskForOP)
	go op.Routine()
	require.NoError(t, h.io.Fire(task.StageServerStarting))
	op.WaitOP()

	alex, _ := h.io.World.Player("Alex")
	steve, _ := h.io.World.Player("Steve")
	assert.Equal(t, 2, alex.PermissionLevel())
	assert.Equal(t, 4, steve.PermissionLevel())
}

func TestPoolHoldsEveryPlugin(t *testing.T) {
	for _, name := range []string{"storage", "cli_interface", "ask_for_op", "show_chat", "read_chat", "send_chat", "send_cmd_line", "ws_console", "tutorial"} {
		f, ok := Pool()[name]
		require.True(t, ok, name)
		assert.NotNil(t, f())
	}
}
