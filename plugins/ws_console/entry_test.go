package wsconsole

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tutorialmod/define"
	"tutorialmod/server/cmd"
	"tutorialmod/task"
)

func newConsole(t *testing.T, config string) (*WSConsole, *task.TaskIO) {
	io := task.NewTaskIO()
	for _, name := range []string{"sgive", "say", "stop"} {
		require.NoError(t, io.Commands.Register(cmd.Command{
			Name:       name,
			Permission: 2,
			Run:        func(cmd.Source, []string) int { return 1 },
		}))
	}
	ws := (&WSConsole{}).New([]byte(config)).Inject(io, map[string]define.Plugin{}).(*WSConsole)
	return ws, io
}

func dial(t *testing.T, ws *WSConsole) *websocket.Conn {
	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ws.settings.Path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello Post
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "meta_event", hello.PostType)
	assert.Equal(t, "lifecycle", hello.MetaEventType)
	assert.NotEmpty(t, hello.Message)
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req map[string]interface{}) Post {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(req))
	var resp Post
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestDefaults(t *testing.T) {
	ws, _ := newConsole(t, "")
	assert.Equal(t, "127.0.0.1:8765", ws.settings.Address)
	assert.Equal(t, "/console", ws.settings.Path)

	ws, _ = newConsole(t, "address: 0.0.0.0:9000\npath: /ws\n")
	assert.Equal(t, "0.0.0.0:9000", ws.settings.Address)
	assert.Equal(t, "/ws", ws.settings.Path)
}

func TestLines(t *testing.T) {
	ws, _ := newConsole(t, "")
	var seen []string
	ws.RegStringInterceptor("cmd", func(_ bool, data string) (bool, string) {
		seen = append(seen, data)
		return strings.HasPrefix(data, "/"), data
	})
	conn := dial(t, ws)

	resp := roundTrip(t, conn, map[string]interface{}{"action": "line", "params": map[string]string{"line": " /stop "}, "echo": "1"})
	assert.Equal(t, Post{PostType: "response", Echo: "1", Caught: true, Message: "/stop"}, resp)

	resp = roundTrip(t, conn, map[string]interface{}{"action": "line", "params": map[string]string{"line": "hello"}, "echo": "2"})
	assert.Equal(t, Post{PostType: "response", Echo: "2", Message: "hello"}, resp)
	assert.Equal(t, []string{"/stop", "hello"}, seen)

	resp = roundTrip(t, conn, map[string]interface{}{"action": "jump", "echo": "3"})
	assert.Equal(t, "response", resp.PostType)
	assert.Equal(t, "3", resp.Echo)
	assert.Contains(t, resp.Message, "unknown action")
}

func TestComplete(t *testing.T) {
	ws, _ := newConsole(t, "")
	conn := dial(t, ws)
	resp := roundTrip(t, conn, map[string]interface{}{"action": "complete", "params": map[string]string{"line": "s"}, "echo": "c"})
	assert.Equal(t, "c", resp.Echo)
	assert.ElementsMatch(t, []string{"sgive", "say", "stop"}, resp.Suggest)
}

func TestCompleteAsPlayer(t *testing.T) {
	ws, io := newConsole(t, "as: Steve\n")
	_, err := io.NewPlayer("Steve", 0)
	require.NoError(t, err)
	conn := dial(t, ws)
	resp := roundTrip(t, conn, map[string]interface{}{"action": "complete", "params": map[string]string{"line": "s"}})
	assert.Empty(t, resp.Suggest)
}

func TestBroadcast(t *testing.T) {
	ws, io := newConsole(t, "")
	conn := dial(t, ws)

	send := ws.RegStringSender("chat")
	require.NotNil(t, send)
	assert.Nil(t, ws.RegStringSender("chat"))

	io.AddChatCallback(func(msg task.ChatMessage, _ int) { send(false, msg.Message.ClearString()) })
	io.Say(false, "server restarting")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var post Post
	require.NoError(t, conn.ReadJSON(&post))
	assert.Equal(t, Post{PostType: "message", Source: "chat", Message: "server restarting"}, post)
}

func TestRemoveInterceptor(t *testing.T) {
	ws, _ := newConsole(t, "")
	id := ws.RegStringInterceptor("all", func(_ bool, data string) (bool, string) { return true, "" })
	caught, _ := ws.Feed("x")
	assert.True(t, caught)
	ws.RemoveStringInterceptor(id)
	caught, rest := ws.Feed(" x ")
	assert.False(t, caught)
	assert.Equal(t, "x", rest)
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"action":"line","params":{"line":"/sgive @a tutorial:ruby"},"echo":"e"}`))
	require.NoError(t, err)
	assert.Equal(t, "line", req.Action)
	assert.Equal(t, "/sgive @a tutorial:ruby", req.Params.Line)
	assert.Equal(t, "e", req.Echo)

	_, err = ParseRequest([]byte(`{`))
	assert.Error(t, err)
}
