package plugins

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T, codec string) *Storage {
	root := t.TempDir()
	p := (&Storage{}).New([]byte(fmt.Sprintf("root: %v\ncodec: %v\n", root, codec)))
	s, ok := p.(*Storage)
	require.True(t, ok)
	t.Cleanup(s.Close)
	return s
}

func TestCodecs(t *testing.T) {
	data := bytes.Repeat([]byte("tutorial:ruby "), 100)
	for _, name := range []string{"zstd", "brotli", "none"} {
		t.Run(name, func(t *testing.T) {
			c, err := CodecByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			encoded, err := c.Encode(data)
			require.NoError(t, err)
			if name != "none" {
				assert.Less(t, len(encoded), len(data))
			}
			decoded, err := c.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
	_, err := CodecByName("lz4")
	assert.Error(t, err)
}

func TestStorageInventories(t *testing.T) {
	s := newStorage(t, "zstd")

	_, ok, err := s.LoadInventory("Steve")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveInventory("Steve", []byte{1, 2, 3}))
	require.NoError(t, s.SaveInventory("Alex", []byte{4}))
	require.NoError(t, s.SaveInventory("Steve", []byte{5, 6}))

	data, ok, err := s.LoadInventory("Steve")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{5, 6}, data)

	owners, err := s.Owners()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex", "Steve"}, owners)
}

func TestStorageReadsOtherCodecs(t *testing.T) {
	s := newStorage(t, "brotli")
	require.NoError(t, s.SaveInventory("Steve", []byte("backpack")))

	// Switching codecs keeps data written with the previous one readable.
	zstd, err := CodecByName("zstd")
	require.NoError(t, err)
	s.codec = zstd
	data, ok, err := s.LoadInventory("Steve")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("backpack"), data)
}

func TestStorageLogs(t *testing.T) {
	s := newStorage(t, "none")
	log := s.RegStringSender("tutorial")
	log(false, "use")
	log(true, `{"slot": 3}`)
	log(true, `{broken`)

	content, err := os.ReadFile(filepath.Join(s.logRoot, "tutorial.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "(tutorial) > use")
	assert.Contains(t, string(content), "(tutorial) Json> map[slot:3]")
	assert.Contains(t, string(content), "(tutorial) BrokenJson(")
}
