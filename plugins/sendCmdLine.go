package plugins

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

type CmdSource struct {
	RegName string `yaml:"reg_name"`
	Plugin  string `yaml:"plugin"`
	Prefix  string `yaml:"prefix"`
}

// SendCmdLine catches lines starting with a prefix and runs them as commands. Commands run as the player
// named by As, or as the local player if As is empty.
type SendCmdLine struct {
	Sources   []CmdSource `yaml:"sources"`
	LogName   string      `yaml:"log_name"`
	LogPlugin string      `yaml:"log_plugin"`
	As        string      `yaml:"as"`
	taskIO    *task.TaskIO
	log       func(isJson bool, data string)
}

func (o *SendCmdLine) New(config []byte) define.Plugin {
	o.Sources = make([]CmdSource, 0)
	o.LogName = ""
	o.LogPlugin = "storage"
	err := yaml.Unmarshal(config, o)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *SendCmdLine) onNewText(fromPlugin string, prefix string, data string) (bool, string) {
	data = strings.TrimSpace(data)
	if prefix == "" || !strings.HasPrefix(data, prefix) {
		// fall through
		return false, data
	}
	line := strings.TrimPrefix(data, prefix)
	fmt.Println("cmd [" + fromPlugin + "]: " + line)
	o.taskIO.SendCmdAs(o.As, line, func(respPk *task.CommandOutput) {
		if o.log != nil {
			o.log(false, fromPlugin+": "+line+" -> "+formatOutput(respPk))
		}
	})
	return true, ""
}

func formatOutput(out *task.CommandOutput) string {
	msgs := make([]string, len(out.OutputMessages))
	for i, msg := range out.OutputMessages {
		msgs[i] = msg.ClearString()
	}
	s := fmt.Sprintf("%d %v", out.SuccessCount, msgs)
	if out.Err != nil {
		s += fmt.Sprintf(" (%v)", out.Err)
	}
	return s
}

func (o *SendCmdLine) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	o.taskIO = taskIO
	if o.As == "" && taskIO.LocalPlayer() != nil {
		o.As = taskIO.LocalPlayer().Name()
	}
	if o.LogName != "" {
		o.log = collaborationContext[o.LogPlugin].(define.StringWriteInterface).RegStringSender(o.LogName)
	}
	for _, s := range o.Sources {
		s := s
		src := collaborationContext[s.Plugin].(define.StringReadInterface)
		src.RegStringInterceptor(s.RegName, func(isJson bool, data string) (bool, string) {
			return o.onNewText(s.Plugin, s.Prefix, data)
		})
	}
	return o
}

func (o *SendCmdLine) Routine() {

}

func (o *SendCmdLine) Close() {

}
