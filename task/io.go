package task

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Tnze/go-mc/chat"
	"github.com/google/uuid"
	"tutorialmod/server/cmd"
	"tutorialmod/server/world"
)

// ChatMessage is a chat message seen by the host, either sent to a player or broadcast.
type ChatMessage struct {
	// Source is the name of the sender. It is empty for messages generated by the server.
	Source string
	// Target is the name of the player receiving the message. It is empty for broadcasts.
	Target  string
	Message chat.Message
}

type StageCallBack struct {
	cbs   map[int]func(stage Stage, cbId int) error
	count int
}

type CallBacks struct {
	mu                  sync.Mutex
	stageCBS            map[Stage]*StageCallBack
	onCmdFeedbackTmpCbS map[uuid.UUID]func(output *CommandOutput)
	onChatCbsCount      int
	onChatCbs           map[int]func(msg ChatMessage, cbId int)
}

func newCallbacks() *CallBacks {
	cbs := CallBacks{
		stageCBS:            make(map[Stage]*StageCallBack),
		onCmdFeedbackTmpCbS: make(map[uuid.UUID]func(output *CommandOutput)),
		onChatCbsCount:      0,
		onChatCbs:           make(map[int]func(msg ChatMessage, cbId int)),
	}
	for _, stage := range Stages() {
		cbs.stageCBS[stage] = &StageCallBack{cbs: make(map[int]func(stage Stage, id int) error), count: 0}
	}
	return &cbs
}

// activateStageCallbacks runs the callbacks of a stage in the order they were added and stops at the first
// error.
func (cbs *CallBacks) activateStageCallbacks(stage Stage) error {
	cbs.mu.Lock()
	stageCBS := cbs.stageCBS[stage]
	ids := make([]int, 0, len(stageCBS.cbs))
	for cbID := range stageCBS.cbs {
		ids = append(ids, cbID)
	}
	sort.Ints(ids)
	fns := make([]func(Stage, int) error, len(ids))
	for i, cbID := range ids {
		fns[i] = stageCBS.cbs[cbID]
	}
	cbs.mu.Unlock()
	for i, cb := range fns {
		if err := cb(stage, ids[i]); err != nil {
			return err
		}
	}
	return nil
}

func (cbs *CallBacks) activateChatCallbacks(msg ChatMessage) {
	cbs.mu.Lock()
	fns := make(map[int]func(ChatMessage, int), len(cbs.onChatCbs))
	for cbID, cb := range cbs.onChatCbs {
		fns[cbID] = cb
	}
	cbs.mu.Unlock()
	for cbID, cb := range fns {
		cb(msg, cbID)
	}
}

// Settings holds the start settings plugins may need.
type Settings struct {
	ModVersion string
	Dedicated  bool
}

// TaskIO connects the plugins of the host: it fires the lifecycle stages, routes command lines to the command
// dispatcher and chat messages to whoever listens for them.
type TaskIO struct {
	World    *world.World
	Commands *cmd.Dispatcher
	Status   *HoldedStatus
	Settings Settings
	cbs      *CallBacks

	console  *consoleSource
	local    *world.Player
	initLock chan int
	initOnce sync.Once
}

func NewTaskIO() *TaskIO {
	taskIO := &TaskIO{
		Commands: cmd.NewDispatcher(),
		Status:   newHolder(),
		cbs:      newCallbacks(),
		initLock: make(chan int),
	}
	taskIO.World = world.New(taskIO.onSound)
	taskIO.console = &consoleSource{}
	return taskIO
}

// WaitInit blocks until the server has started, that is, until StageServerStarting was fired.
func (io *TaskIO) WaitInit() {
	<-io.initLock
}

// NewPlayer creates a player whose chat messages are routed through the chat callbacks and adds it to the
// world.
func (io *TaskIO) NewPlayer(name string, permissionLevel int) (*world.Player, error) {
	p := world.NewPlayer(name, world.Pos{0, 64, 0}.Vec3Centre(), func(msg chat.Message) {
		io.cbs.activateChatCallbacks(ChatMessage{Target: name, Message: msg})
	})
	p.SetPermissionLevel(permissionLevel)
	if !io.World.AddPlayer(p) {
		return nil, fmt.Errorf("player %v already exists", name)
	}
	return p, nil
}

// SetLocalPlayer marks the player driven by the terminal of the host.
func (io *TaskIO) SetLocalPlayer(p *world.Player) {
	io.local = p
}

// LocalPlayer returns the player driven by the terminal, or nil if there is none.
func (io *TaskIO) LocalPlayer() *world.Player {
	return io.local
}

// handle callbacks
func (io *TaskIO) AddStageCallback(stage Stage, cb func(Stage, int) error) (int, error) {
	io.cbs.mu.Lock()
	defer io.cbs.mu.Unlock()
	stageCBS, ok := io.cbs.stageCBS[stage]
	if !ok {
		return 0, fmt.Errorf("do not have such stage (%v) for call back ", stage)
	}
	c := stageCBS.count + 1
	_, hasK := stageCBS.cbs[c]
	for hasK {
		c += 1
		_, hasK = stageCBS.cbs[c]
	}
	stageCBS.count = c
	stageCBS.cbs[c] = cb
	return c, nil
}

func (io *TaskIO) RemoveStageCallback(stage Stage, callBackID int) bool {
	io.cbs.mu.Lock()
	defer io.cbs.mu.Unlock()
	stageCBS, ok := io.cbs.stageCBS[stage]
	if ok {
		delete(stageCBS.cbs, callBackID)
	}
	return ok
}

func (io *TaskIO) AddChatCallback(cb func(ChatMessage, int)) int {
	io.cbs.mu.Lock()
	defer io.cbs.mu.Unlock()
	c := io.cbs.onChatCbsCount + 1
	_, hasK := io.cbs.onChatCbs[c]
	for hasK {
		c += 1
		_, hasK = io.cbs.onChatCbs[c]
	}
	io.cbs.onChatCbsCount = c
	io.cbs.onChatCbs[c] = cb
	return c
}

func (io *TaskIO) RemoveChatCallback(cbID int) bool {
	io.cbs.mu.Lock()
	defer io.cbs.mu.Unlock()
	_, ok := io.cbs.onChatCbs[cbID]
	if ok {
		delete(io.cbs.onChatCbs, cbID)
	}
	return ok
}

// schedule
func (io *TaskIO) DelayExec(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
