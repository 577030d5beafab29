package config

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muhammadmuzzammil1998/jsonc"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// defaultPlugins is written to the plugin config path when no plugin list exists yet.
const defaultPlugins = `version: 0.0.0
plugins:
  - name: storage
    file: internal
    configs:
      root: data
      codec: zstd
  - name: cli_interface
    as: interface
    file: internal
    configs:
      chat_prefix: ""
  - name: tutorial
    file: internal
    require: [storage, interface]
    configs:
      log_name: tutorial
      sources:
        - plugin: interface
          reg_name: tutorial
  - name: send_cmd_line
    file: internal
    require: [interface]
    configs:
      log_name: cmd
      sources:
        - plugin: interface
          reg_name: cmd
          prefix: /
  - name: show_chat
    file: internal
    require: [interface]
    configs:
      hint: chat
      dests:
        - plugin: interface
          format: "[src] -> [dst]: [msg]"
  - name: ask_for_op
    file: internal
    configs:
      operators: []
`

func CollectInfo() *StartConfig {
	flag.Parse()
	args := flag.Args()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	config := StartConfig{
		Mod: ModConfig{
			Version: "NONE",
		},
		Actor: ActorConfig{
			PermissionLevel: 2,
		},
		PluginConfigPath: "plugins_config.yaml",
	}
	configFile := *argConfigFile
	config.writeBackPath = configFile
	if configFile == "" && len(args) > 0 {
		configFile = args[0]
		config.writeBackPath = configFile
	} else if configFile == "" {
		_, err := os.Lstat("config.json")
		config.writeBackPath = "config.json"
		if os.IsNotExist(err) {
			fmt.Println("Main: No config provided, will create a config file automatically")
		} else {
			fmt.Println("Main: Config file not specific, we will use the default: 'config.json'")
			configFile = "config.json"
		}
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			panic(fmt.Sprintf("Main: Error at reading config file (%v) (%v)", configFile, err))
		}
		if err := DecodeStartConfig(data, &config); err != nil {
			panic(fmt.Sprintf("Main: Error at Unmarshal config file (%v) (%v)", configFile, err))
		}
	}
	if config.Actor.Name == "" {
		config.Actor.Name = askActorName(os.Stdin)
	}

	if _, err := os.Lstat(config.PluginConfigPath); os.IsNotExist(err) {
		fmt.Printf("Main: No plugin config found, writing the default one to %v\n", config.PluginConfigPath)
		if err := os.WriteFile(config.PluginConfigPath, []byte(defaultPlugins), 0o644); err != nil {
			panic(fmt.Sprintf("Main: Fail to write default plugin config (%v)", err))
		}
	}
	data, err := os.ReadFile(config.PluginConfigPath)
	if err != nil {
		panic(fmt.Sprintf("Main: Error at reading plugin config file (%v) (%v)", config.PluginConfigPath, err))
	}
	if err := yaml.Unmarshal(data, &config.pluginsConfig); err != nil {
		panic(fmt.Sprintf("Main: Error at Unmarshal plugin config file (%v) (%v)", config.PluginConfigPath, err))
	}
	return &config
}

// DecodeStartConfig decodes a start config that may contain comments into config. Fields missing from data
// keep their current value.
func DecodeStartConfig(data []byte, config *StartConfig) error {
	return json.Unmarshal(jsonc.ToJSON(data), config)
}

// askActorName asks for the name of the local player if stdin is a terminal and falls back to Dev otherwise.
func askActorName(in *os.File) string {
	if !term.IsTerminal(int(in.Fd())) {
		return "Dev"
	}
	return readName(in)
}

func readName(in io.Reader) string {
	reader := bufio.NewReader(in)
	name := ""
	for name == "" {
		fmt.Printf("Player Name: ")
		s, err := reader.ReadString('\n')
		name = strings.TrimSpace(s)
		if err != nil && name == "" {
			return "Dev"
		}
	}
	return name
}

func WriteBackConfig(config *StartConfig) {
	fp, err := os.Create(config.writeBackPath)
	if err != nil {
		panic(fmt.Sprintf("Main: Fail to create updated config (%v)", err))
	}
	defer fp.Close()
	if err := EncodeStartConfig(fp, config); err != nil {
		panic(fmt.Sprintf("Main: fail to marshal updated config (%v)", err))
	}
}

// EncodeStartConfig writes config as indented JSON.
func EncodeStartConfig(w io.Writer, config *StartConfig) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "\t")
	return encoder.Encode(config)
}
