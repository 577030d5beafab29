package config

import (
	"flag"
)

var argConfigFile = flag.String("c", "", "config file path")

type PluginConfig struct {
	Name    string      `yaml:"name"`
	As      string      `yaml:"as"`
	File    string      `yaml:"file"`
	Require []string    `yaml:"require"`
	Configs interface{} `yaml:"configs"`
}

type PluginSystemConfig struct {
	Version string         `yaml:"version"`
	Plugins []PluginConfig `yaml:"plugins"`
}

type ModConfig struct {
	// Version is the version of the mod. NONE marks a development build.
	Version string `json:"version"`
	// Dedicated skips the client setup stage.
	Dedicated bool `json:"dedicated"`
}

type ActorConfig struct {
	// Name of the local player driven by the terminal.
	Name            string `json:"name"`
	PermissionLevel int    `json:"permission_level"`
}

type StartConfig struct {
	Mod   ModConfig   `json:"mod"`
	Actor ActorConfig `json:"actor"`
	// Plugin Config
	pluginsConfig    PluginSystemConfig
	PluginConfigPath string `json:"plugin_config_path"`
	// Aux
	writeBackPath string
}

func (s *StartConfig) GetPluginConfig() *PluginSystemConfig {
	return &s.pluginsConfig
}
