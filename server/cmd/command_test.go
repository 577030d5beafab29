package cmd

import (
	"testing"

	"github.com/Tnze/go-mc/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type source struct {
	name     string
	level    int
	messages []chat.Message
}

func (s *source) Name() string             { return s.name }
func (s *source) PermissionLevel() int     { return s.level }
func (s *source) Message(msg chat.Message) { s.messages = append(s.messages, msg) }

func (s *source) texts() []string {
	texts := make([]string, len(s.messages))
	for i, msg := range s.messages {
		texts[i] = msg.ClearString()
	}
	return texts
}

func echo(args *[]string) Command {
	return Command{
		Name:          "echo",
		OwnedKeywords: []string{"say"},
		Permission:    1,
		Run: func(src Source, a []string) int {
			*args = a
			return len(a)
		},
		Complete: func(src Source, a []string) []string {
			return []string{"completing " + a[len(a)-1]}
		},
	}
}

func TestDispatcherExecute(t *testing.T) {
	var args []string
	d := NewDispatcher()
	require.NoError(t, d.Register(echo(&args)))

	src := &source{name: "Steve", level: 1}
	n, err := d.Execute(src, "/echo a b")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, args)

	n, err = d.Execute(src, "say c")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"c"}, args)
	assert.Equal(t, []string{"echo"}, d.Commands())
}

func TestDispatcherErrors(t *testing.T) {
	var args []string
	d := NewDispatcher()
	require.NoError(t, d.Register(echo(&args)))

	src := &source{name: "Steve"}
	_, err := d.Execute(src, "echo a")
	assert.ErrorIs(t, err, ErrPermission)
	_, err = d.Execute(src, "/nothing")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, err = d.Execute(src, "   ")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	require.Len(t, src.messages, 2)
	assert.Equal(t, "red", src.messages[0].Color)
	assert.Nil(t, args)
}

func TestDispatcherRegisterConflicts(t *testing.T) {
	var args []string
	d := NewDispatcher()
	require.NoError(t, d.Register(echo(&args)))
	assert.Error(t, d.Register(echo(&args)))
	assert.Error(t, d.Register(Command{Name: "other", OwnedKeywords: []string{"say"}, Run: func(Source, []string) int { return 0 }}))
	assert.Error(t, d.Register(Command{Name: "norun"}))
	assert.Error(t, d.Register(Command{Run: func(Source, []string) int { return 0 }}))
}

func TestDispatcherComplete(t *testing.T) {
	var args []string
	d := NewDispatcher()
	require.NoError(t, d.Register(echo(&args)))
	require.NoError(t, d.Register(Command{Name: "edit", Permission: 4, Run: func(Source, []string) int { return 0 }}))

	src := &source{level: 1}
	assert.Equal(t, []string{"echo"}, d.Complete(src, "/e"))
	assert.Equal(t, []string{"echo", "edit"}, d.Complete(&source{level: 4}, "e"))
	assert.Equal(t, []string{"completing x"}, d.Complete(src, "echo x"))
	assert.Equal(t, []string{"completing "}, d.Complete(src, "echo x "))
	assert.Nil(t, d.Complete(src, "edit x"))
}
