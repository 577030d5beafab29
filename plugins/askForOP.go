package plugins

import (
	"fmt"

	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

type Operator struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// AskForOP grants permission levels to the configured players once the server started.
type AskForOP struct {
	Operators []Operator `yaml:"operators"`
	taskIO    *task.TaskIO
	initLock  chan int
}

func (a *AskForOP) New(config []byte) define.Plugin {
	a.initLock = make(chan int)
	err := yaml.Unmarshal(config, a)
	if err != nil {
		panic(err)
	}
	return a
}

// WaitOP blocks until all operators were granted their level.
func (a *AskForOP) WaitOP() {
	<-a.initLock
}

func (a *AskForOP) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	a.taskIO = taskIO
	return a
}

func (a *AskForOP) AskForOP() {
	for _, op := range a.Operators {
		level := op.Level
		if level == 0 {
			level = 2
		}
		p, ok := a.taskIO.World.Player(op.Name)
		if !ok {
			fmt.Printf("AskForOP: player %v not found\n", op.Name)
			continue
		}
		p.SetPermissionLevel(level)
		fmt.Printf("AskForOP: %v is now level %v\n", op.Name, level)
	}
	close(a.initLock)
}

func (a *AskForOP) Routine() {
	a.taskIO.Status.Started()
	a.AskForOP()
}

func (a *AskForOP) Close() {

}
