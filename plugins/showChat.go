package plugins

import (
	"strings"

	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

type Dst struct {
	Interface string   `yaml:"plugin"`
	Format    string   `yaml:"format"`
	Filter    []string `yaml:"filter"`
}

// ShowChat forwards chat messages to string writers such as the terminal or a log file.
type ShowChat struct {
	taskIO        *task.TaskIO
	DstInterfaces []Dst  `yaml:"dests"`
	Hint          string `yaml:"hint"`
	sends         []func(isJson bool, data string)
	cbID          int
}

func (o *ShowChat) New(config []byte) define.Plugin {
	o.DstInterfaces = make([]Dst, 0)
	o.Hint = "chat"
	err := yaml.Unmarshal(config, o)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *ShowChat) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	o.sends = make([]func(isJson bool, data string), 0)
	for _, dst := range o.DstInterfaces {
		dstInterface := collaborationContext[dst.Interface].(define.StringWriteInterface)
		send := dstInterface.RegStringSender(o.Hint)
		if send == nil {
			// another plugin registered the same hint; messages are still shown through it
			send = func(bool, string) {}
		}
		o.sends = append(o.sends, send)
	}
	o.taskIO = taskIO
	o.cbID = taskIO.AddChatCallback(o.onNewChat)
	return o
}

// filtered reports if a message is dropped by one of the filters passed.
func (o *ShowChat) filtered(filter []string, msg task.ChatMessage, text string) bool {
	for _, f := range filter {
		switch f {
		case "not me":
			if local := o.taskIO.LocalPlayer(); local != nil && msg.Source == local.Name() {
				return true
			}
		case "chat only":
			if msg.Source == "" {
				return true
			}
		case "broadcast only":
			if msg.Target != "" {
				return true
			}
		default:
			if strings.Contains(text, f) {
				return true
			}
		}
	}
	return false
}

func (o *ShowChat) onNewChat(msg task.ChatMessage, _ int) {
	text := msg.Message.ClearString()
	src, dst := msg.Source, msg.Target
	if src == "" {
		src = "Server"
	}
	if dst == "" {
		dst = "@a"
	}
	r := strings.NewReplacer("[src]", src, "[dst]", dst, "[msg]", strings.TrimSpace(text))
	for i, send := range o.sends {
		if o.filtered(o.DstInterfaces[i].Filter, msg, text) {
			continue
		}
		format := o.DstInterfaces[i].Format
		if format == "" {
			format = "[src]: [msg]"
		}
		send(false, r.Replace(format))
	}
}

func (o *ShowChat) Routine() {

}

func (o *ShowChat) Close() {
	o.taskIO.RemoveChatCallback(o.cbID)
}
