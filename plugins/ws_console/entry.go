package wsconsole

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

type ConsoleSettings struct {
	Address string `yaml:"address"`
	Path    string `yaml:"path"`
	// As is the player whose permission level applies to completions. The console is used if it is empty.
	As string `yaml:"as"`
}

type stringInterceptor struct {
	name      string
	intercept func(isJson bool, data string) (bool, string)
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(p Post) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(p)
}

// WSConsole serves a console over websocket. Lines sent by clients go through the registered interceptors,
// like lines typed in the terminal, and strings sent to the console are pushed to every client.
type WSConsole struct {
	taskIO   *task.TaskIO
	settings *ConsoleSettings
	upgrader *websocket.Upgrader
	server   *http.Server

	mu                     sync.Mutex
	clients                map[uuid.UUID]*client
	stringSender           map[string]func(isJson bool, data string)
	stringInterceptorCount int
	stringInterceptors     map[int]stringInterceptor
}

func (ws *WSConsole) New(config []byte) define.Plugin {
	ws.settings = &ConsoleSettings{Address: "127.0.0.1:8765", Path: "/console"}
	ws.clients = make(map[uuid.UUID]*client)
	ws.stringSender = make(map[string]func(isJson bool, data string))
	ws.stringInterceptors = make(map[int]stringInterceptor)
	err := yaml.Unmarshal(config, ws.settings)
	if err != nil {
		panic(err)
	}
	ws.upgrader = &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	return ws
}

func (ws *WSConsole) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	ws.taskIO = taskIO
	return ws
}

// Handler returns the HTTP handler upgrading console connections.
func (ws *WSConsole) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ws.settings.Path, ws.serve)
	return mux
}

func (ws *WSConsole) Routine() {
	ws.taskIO.WaitInit()
	ws.mu.Lock()
	ws.server = &http.Server{Addr: ws.settings.Address, Handler: ws.Handler()}
	server := ws.server
	ws.mu.Unlock()
	fmt.Printf("WS-Console: listening on ws://%v%v\n", ws.settings.Address, ws.settings.Path)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Println("WS-Console: ", err)
	}
}

func (ws *WSConsole) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.server != nil {
		ws.server.Close()
	}
	for _, c := range ws.clients {
		c.conn.Close()
	}
}

func (ws *WSConsole) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Println("WS-Console: upgrade failed: ", err)
		return
	}
	c := &client{id: uuid.New(), conn: conn}
	ws.mu.Lock()
	ws.clients[c.id] = c
	ws.mu.Unlock()
	defer func() {
		ws.mu.Lock()
		delete(ws.clients, c.id)
		ws.mu.Unlock()
		conn.Close()
	}()
	if err := c.write(Post{PostType: "meta_event", MetaEventType: "lifecycle", Message: c.id.String()}); err != nil {
		return
	}
	ws.receiveRoutine(c)
}

// receiveRoutine handles the requests of a client until the connection closes.
func (ws *WSConsole) receiveRoutine(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		req, err := ParseRequest(data)
		if err != nil {
			c.write(Post{PostType: "response", Echo: req.Echo, Message: err.Error()})
			continue
		}
		switch req.Action {
		case "line":
			caught, rest := ws.Feed(req.Params.Line)
			c.write(Post{PostType: "response", Echo: req.Echo, Caught: caught, Message: rest})
		case "complete":
			c.write(Post{PostType: "response", Echo: req.Echo, Suggest: ws.complete(req.Params.Line)})
		}
	}
}

// Feed passes a line through the interceptors. It reports if an interceptor caught it.
func (ws *WSConsole) Feed(line string) (bool, string) {
	line = strings.TrimSpace(line)
	ws.mu.Lock()
	ids := make([]int, 0, len(ws.stringInterceptors))
	for id := range ws.stringInterceptors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	list := make([]stringInterceptor, len(ids))
	for i, id := range ids {
		list[i] = ws.stringInterceptors[id]
	}
	ws.mu.Unlock()
	var catch bool
	for _, intercept := range list {
		catch, line = intercept.intercept(false, line)
		if catch {
			break
		}
	}
	return catch, line
}

func (ws *WSConsole) complete(line string) []string {
	if ws.settings.As != "" {
		if p, ok := ws.taskIO.World.Player(ws.settings.As); ok {
			return ws.taskIO.Commands.Complete(p, line)
		}
	}
	return ws.taskIO.CompleteAsConsole(line)
}

// NewString pushes a string to every connected client.
func (ws *WSConsole) NewString(source string, isJson bool, msg string) {
	ws.mu.Lock()
	clients := make([]*client, 0, len(ws.clients))
	for _, c := range ws.clients {
		clients = append(clients, c)
	}
	ws.mu.Unlock()
	for _, c := range clients {
		if err := c.write(Post{PostType: "message", Source: source, Message: msg}); err != nil {
			c.conn.Close()
		}
	}
}

func (ws *WSConsole) RegStringSender(name string) func(isJson bool, data string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	_, hasK := ws.stringSender[name]
	if hasK {
		return nil
	}
	fn := func(isJson bool, data string) {
		ws.NewString(name, isJson, data)
	}
	ws.stringSender[name] = fn
	return fn
}

func (ws *WSConsole) RegStringInterceptor(name string, intercept func(isJson bool, data string) (bool, string)) int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	c := ws.stringInterceptorCount + 1
	ws.stringInterceptorCount = c
	ws.stringInterceptors[c] = stringInterceptor{name: name, intercept: intercept}
	return c
}

func (ws *WSConsole) RemoveStringInterceptor(interceptID int) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.stringInterceptors, interceptID)
}
