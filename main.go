package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
	"tutorialmod/config"
	"tutorialmod/define"
	"tutorialmod/plugins"
	"tutorialmod/task"
)

func main() {
	color.Blue("Collecting Infomation...")
	cfg := config.CollectInfo()
	config.WriteBackConfig(cfg)
	color.Green("Information Collected!")

	taskIO := task.NewTaskIO()
	taskIO.Settings = task.Settings{ModVersion: cfg.Mod.Version, Dedicated: cfg.Mod.Dedicated}
	local, err := taskIO.NewPlayer(cfg.Actor.Name, cfg.Actor.PermissionLevel)
	if err != nil {
		panic(fmt.Sprintf("Main: %v", err))
	}
	taskIO.SetLocalPlayer(local)

	closeFn := loadPlugins(taskIO, cfg.GetPluginConfig())

	color.Blue("Starting Server...")
	if err := taskIO.FireStartup(cfg.Mod.Dedicated); err != nil {
		closeFn()
		panic(color.New(color.FgRed).Sprintf("Main: %v", err))
	}
	color.Green("Server Started! %v joined the game", local.Name())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	s := <-c
	fmt.Println("Got signal:", s)
	if err := taskIO.Fire(task.StageServerStopping); err != nil {
		fmt.Println("Main: ", err)
	}
	closeFn()
	fmt.Println("Close Functions done")
}

func loadPlugins(taskIO *task.TaskIO, config *config.PluginSystemConfig) func() {
	if config.Version != "0.0.0" {
		panic("Main-loadPlugins: Version Not Support!")
	}
	closeFns := make([]func(), 0)
	collaborationContext := make(map[string]define.Plugin)
	for i, plugin := range config.Plugins {
		if plugin.As == "" {
			plugin.As = plugin.Name
		}
		color.Blue("loading Plugin: %v. %v As %v from %v", i, plugin.Name, plugin.As, plugin.File)
		for _, r := range plugin.Require {
			_, hasK := collaborationContext[r]
			if !hasK {
				panic(fmt.Sprintf(`plugin: %v require plugin: "%v", but "%v" has not injected!`, plugin.Name, r, r))
			}
		}
		pluginConfigBytes, _ := yaml.Marshal(plugin.Configs)
		if plugin.File != "internal" {
			panic(color.New(color.FgRed).Sprintf("Only internal plugins are supported, got (%v) for (%v)", plugin.File, plugin.Name))
		}
		p, ok := plugins.Pool()[plugin.Name]
		if !ok {
			panic(color.New(color.FgRed).Sprintf("No Such file Plugin: (%v)", plugin.Name))
		}
		pi := p().New(pluginConfigBytes)
		collaborationContext[plugin.As] = pi
		go pi.Inject(taskIO, collaborationContext).Routine()
		closeFns = append(closeFns, pi.Close)
	}
	return func() {
		for i := len(closeFns) - 1; i >= 0; i-- {
			closeFns[i]()
		}
	}
}
