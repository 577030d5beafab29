package plugins

import (
	"tutorialmod/define"
	"tutorialmod/plugins/tutorial"
	wsconsole "tutorialmod/plugins/ws_console"
)

var pool map[string]func() define.Plugin
var isInit bool

func Pool() map[string]func() define.Plugin {
	if !isInit {
		pool = make(map[string]func() define.Plugin)

		// Registry
		pool["storage"] = func() define.Plugin { return &Storage{} }
		pool["cli_interface"] = func() define.Plugin { return &CliInterface{} }
		pool["ask_for_op"] = func() define.Plugin { return &AskForOP{} }
		pool["show_chat"] = func() define.Plugin { return &ShowChat{} }
		pool["read_chat"] = func() define.Plugin { return &ReadChat{} }
		pool["send_chat"] = func() define.Plugin { return &SendChat{} }
		pool["send_cmd_line"] = func() define.Plugin { return &SendCmdLine{} }
		pool["ws_console"] = func() define.Plugin { return &wsconsole.WSConsole{} }
		pool["tutorial"] = func() define.Plugin { return &tutorial.Tutorial{} }

		isInit = true
	}
	return pool
}
