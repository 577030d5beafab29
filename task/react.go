package task

import (
	"fmt"

	"tutorialmod/server/world"
)

// Stage is a lifecycle stage of the host. Stages are fired in the order they are declared in.
type Stage int

const (
	StageRegister Stage = iota
	StageCommonSetup
	StageEnqueueIMC
	StageProcessIMC
	StageClientSetup
	StageDedicatedServerSetup
	StageServerStarting
	StageServerStopping
)

var stageNames = map[Stage]string{
	StageRegister:             "register",
	StageCommonSetup:          "common_setup",
	StageEnqueueIMC:           "enqueue_imc",
	StageProcessIMC:           "process_imc",
	StageClientSetup:          "client_setup",
	StageDedicatedServerSetup: "dedicated_server_setup",
	StageServerStarting:       "server_starting",
	StageServerStopping:       "server_stopping",
}

// Stages returns all stages in firing order.
func Stages() []Stage {
	return []Stage{
		StageRegister, StageCommonSetup, StageEnqueueIMC, StageProcessIMC,
		StageClientSetup, StageDedicatedServerSetup, StageServerStarting, StageServerStopping,
	}
}

// String ...
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Fire runs the callbacks of a stage. Firing StageRegister marks the content as registered and firing
// StageServerStarting releases WaitInit.
func (io *TaskIO) Fire(stage Stage) error {
	fmt.Printf("Reactor: Start %v Tasks\n", stage)
	if err := io.cbs.activateStageCallbacks(stage); err != nil {
		return fmt.Errorf("stage %v: %w", stage, err)
	}
	switch stage {
	case StageRegister:
		io.Status.setRegistered(true)
	case StageServerStarting:
		io.Status.setStarted(true)
		io.initOnce.Do(func() { close(io.initLock) })
	}
	return nil
}

// FireStartup fires every stage up to and including StageServerStarting. Client stages are skipped for
// dedicated servers and the other way around.
func (io *TaskIO) FireStartup(dedicated bool) error {
	for _, stage := range Stages() {
		if stage == StageServerStopping {
			break
		}
		if (stage == StageClientSetup && dedicated) || (stage == StageDedicatedServerSetup && !dedicated) {
			continue
		}
		if err := io.Fire(stage); err != nil {
			return err
		}
	}
	return nil
}

func (io *TaskIO) onSound(s world.Sound) {
	fmt.Printf("Reactor: sound %v at (%.1f, %.1f, %.1f) volume %.1f\n", s.Name, s.Pos[0], s.Pos[1], s.Pos[2], s.Volume)
}

// onCommandOutput hands the output of a command to the feedback callback waiting for it. Every callback
// fires at most once.
func (io *TaskIO) onCommandOutput(out *CommandOutput) {
	io.cbs.mu.Lock()
	cb, ok := io.cbs.onCmdFeedbackTmpCbS[out.UUID]
	if ok {
		delete(io.cbs.onCmdFeedbackTmpCbS, out.UUID)
	}
	io.cbs.mu.Unlock()
	if ok {
		cb(out)
	}
}
