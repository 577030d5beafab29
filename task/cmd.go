package task

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Tnze/go-mc/chat"
	"github.com/google/uuid"
	"tutorialmod/server/cmd"
)

// ConsolePermissionLevel is the permission level of commands sent by plugins.
const ConsolePermissionLevel = 4

// CommandRequest is a command line waiting to be executed.
type CommandRequest struct {
	CommandLine string
	// Origin is the name of the player the command runs as. The console is used if it is empty.
	Origin string
	UUID   uuid.UUID
}

// CommandOutput holds the result of an executed command and the messages it sent to its source.
type CommandOutput struct {
	UUID           uuid.UUID
	SuccessCount   int
	OutputMessages []chat.Message
	Err            error
}

// consoleSource is the source of commands that do not run as a player.
type consoleSource struct{}

func (*consoleSource) Name() string {
	return "Server"
}

func (*consoleSource) PermissionLevel() int {
	return ConsolePermissionLevel
}

func (*consoleSource) Message(msg chat.Message) {
	fmt.Println("Console: " + msg.ClearString())
}

// capturingSource wraps a source and records the messages sent to it.
type capturingSource struct {
	cmd.Source
	mu       sync.Mutex
	messages []chat.Message
}

func (s *capturingSource) Message(msg chat.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	s.Source.Message(msg)
}

func (io *TaskIO) GenCMD(command string) (*CommandRequest, uuid.UUID) {
	UUID, _ := uuid.NewUUID()
	return &CommandRequest{CommandLine: command, UUID: UUID}, UUID
}

func (io *TaskIO) AddOnCMDFeedBackCallback(UUID uuid.UUID, cb func(output *CommandOutput)) {
	io.cbs.mu.Lock()
	defer io.cbs.mu.Unlock()
	io.cbs.onCmdFeedbackTmpCbS[UUID] = cb
}

// Execute runs a command request and delivers its output to the feedback callback registered for its UUID,
// if any.
func (io *TaskIO) Execute(req *CommandRequest) *CommandOutput {
	var src cmd.Source = io.console
	if req.Origin != "" {
		p, ok := io.World.Player(req.Origin)
		if !ok {
			out := &CommandOutput{UUID: req.UUID, Err: fmt.Errorf("no player named %v", req.Origin)}
			io.onCommandOutput(out)
			return out
		}
		src = p
	}
	capture := &capturingSource{Source: src}
	n, err := io.Commands.Execute(capture, req.CommandLine)
	out := &CommandOutput{UUID: req.UUID, SuccessCount: n, OutputMessages: capture.messages, Err: err}
	io.onCommandOutput(out)
	return out
}

func (io *TaskIO) SendCmd(cmd string) *TaskIO {
	pk, _ := io.GenCMD(cmd)
	io.Execute(pk)
	return io
}

func (io *TaskIO) SendCmdWithFeedBack(cmd string, cb func(respPk *CommandOutput)) *TaskIO {
	pk, reqUUID := io.GenCMD(cmd)
	io.AddOnCMDFeedBackCallback(reqUUID, cb)
	io.Execute(pk)
	return io
}

// SendCmdAs runs a command as the player passed.
func (io *TaskIO) SendCmdAs(player string, cmd string, cb func(respPk *CommandOutput)) *TaskIO {
	pk, reqUUID := io.GenCMD(cmd)
	pk.Origin = player
	if cb != nil {
		io.AddOnCMDFeedBackCallback(reqUUID, cb)
	}
	io.Execute(pk)
	return io
}

// TalkTo sends a plain text message to a single player.
func (io *TaskIO) TalkTo(player string, content string) *TaskIO {
	if p, ok := io.World.Player(player); ok {
		p.Message(chat.Text(content))
	}
	return io
}

// Say broadcasts a message to every player. A JSON message is decoded as a chat component first.
func (io *TaskIO) Say(isJson bool, content string) *TaskIO {
	msg := chat.Text(content)
	if isJson {
		if err := json.Unmarshal([]byte(content), &msg); err != nil {
			fmt.Printf("Reactor: broken json chat message (%v)\n", err)
			return io
		}
	}
	io.cbs.activateChatCallbacks(ChatMessage{Message: msg})
	return io
}

// Chat sends a chat message from a player to everyone.
func (io *TaskIO) Chat(source string, content string) *TaskIO {
	io.cbs.activateChatCallbacks(ChatMessage{Source: source, Message: chat.Text(content)})
	return io
}

// CompleteAsConsole returns completions for a partial command line typed on the console.
func (io *TaskIO) CompleteAsConsole(line string) []string {
	return io.Commands.Complete(io.console, line)
}
