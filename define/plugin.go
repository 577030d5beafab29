package define

import "tutorialmod/task"

// Plugin is a component loaded by the host from the plugin list. New decodes the configs block of the plugin,
// Inject hands it the bus and every plugin loaded before it, Routine runs in its own goroutine and Close is
// called on shutdown.
type Plugin interface {
	New(config []byte) Plugin
	Inject(taskIO *task.TaskIO, collaborationContext map[string]Plugin) Plugin
	Routine()
	Close()
}

type StringWriteInterface interface {
	RegStringSender(name string) func(isJson bool, data string)
}

type StringReadInterface interface {
	RegStringInterceptor(name string, intercept func(isJson bool, data string) (bool, string)) int
	RemoveStringInterceptor(interceptID int)
}

type InterceptFn func(isJson bool, data string) (bool, string)
