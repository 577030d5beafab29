package plugins

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

// ReadChat passes chat messages sent by a player through its interceptors, so that chat can drive other
// plugins.
type ReadChat struct {
	taskIO             *task.TaskIO
	Format             string `yaml:"format"`
	User               string `yaml:"user"`
	stringInterceptors *interceptors
	cbID               int
}

func (o *ReadChat) New(config []byte) define.Plugin {
	o.Format = "[msg]"
	err := yaml.Unmarshal(config, o)
	o.stringInterceptors = newInterceptors()
	if err != nil {
		panic(err)
	}
	return o
}

func (o *ReadChat) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	o.taskIO = taskIO
	o.cbID = taskIO.AddChatCallback(o.onNewChat)
	return o
}

func (o *ReadChat) RegStringInterceptor(name string, intercept func(isJson bool, data string) (bool, string)) int {
	return o.stringInterceptors.add(name, intercept)
}

func (o *ReadChat) RemoveStringInterceptor(interceptID int) {
	o.stringInterceptors.remove(interceptID)
}

func (o *ReadChat) onNewChat(msg task.ChatMessage, _ int) {
	if msg.Source == "" || (o.User != "" && msg.Source != o.User) {
		return
	}
	r := strings.NewReplacer("[src]", strings.TrimSpace(msg.Source), "[msg]", strings.TrimSpace(msg.Message.ClearString()))
	outStr := r.Replace(o.Format)
	fmt.Println("Chat Interface: ", outStr)
	o.stringInterceptors.run(false, outStr, nil)
}

func (o *ReadChat) Routine() {

}

func (o *ReadChat) Close() {
	o.taskIO.RemoveChatCallback(o.cbID)
}
