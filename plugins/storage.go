package plugins

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
	"tutorialmod/define"
	"tutorialmod/task"
)

type StorageConfig struct {
	Root string `yaml:"root"`
	Logs string `yaml:"logs"`
	DB   string `yaml:"db"`
	// Codec compresses stored inventories. It is zstd, brotli or none.
	Codec string `yaml:"codec"`
}

// Storage writes per-source log files and keeps player inventories in a sqlite database.
type Storage struct {
	logRoot string
	dbRoot  string
	codec   Codec
	db      *inventoryDB
	mu      sync.Mutex
	closeFn []func()
}

func (s *Storage) New(config []byte) define.Plugin {
	storageConfig := &StorageConfig{}
	err := yaml.Unmarshal(config, storageConfig)
	if err != nil {
		panic(err)
	}
	if storageConfig.Root == "" {
		storageConfig.Root = "data"
	}
	if storageConfig.Logs == "" {
		storageConfig.Logs = path.Join(storageConfig.Root, "logs")
	}
	if storageConfig.DB == "" {
		storageConfig.DB = path.Join(storageConfig.Root, "db")
	}
	if storageConfig.Codec == "" {
		storageConfig.Codec = "zstd"
	}
	st, err := s.initStorage(storageConfig)
	if err != nil {
		panic(fmt.Sprintf("Storage: %v", err))
	}
	return st
}

func (s *Storage) Routine() {

}

func (s *Storage) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	return s
}

func (s *Storage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fn := range s.closeFn {
		fn()
	}
	s.closeFn = nil
}

func (s *Storage) RegStringSender(source string) func(isJson bool, data string) {
	fileName := path.Join(s.logRoot, source) + ".log"
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(fmt.Sprintf("Storage-Create: cannot create %v (%v)", fileName, err))
	}
	s.mu.Lock()
	s.closeFn = append(s.closeFn, func() {
		logFile.Close()
	})
	s.mu.Unlock()
	log_ := log.New(logFile, "", log.Ldate|log.Ltime)
	return func(isJson bool, data string) {
		if isJson {
			var anyData interface{}
			err := json.Unmarshal([]byte(data), &anyData)
			if err == nil {
				log_.Printf("(%v) Json> %v", source, anyData)
			} else {
				log_.Printf("(%v) BrokenJson(%v)> %v", source, err, data)
			}
		} else {
			log_.Printf("(%v) > %v", source, data)
		}
	}
}

func (s *Storage) initStorage(config *StorageConfig) (*Storage, error) {
	for _, dir := range []string{config.Logs, config.DB} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create %v (%w)", dir, err)
		}
	}
	codec, err := CodecByName(config.Codec)
	if err != nil {
		return nil, err
	}
	db, err := openInventoryDB(path.Join(config.DB, "inventories.db"))
	if err != nil {
		return nil, err
	}
	ret := &Storage{logRoot: config.Logs, dbRoot: config.DB, codec: codec, db: db}
	ret.closeFn = append(ret.closeFn, func() {
		db.Close()
	})
	return ret, nil
}

// SaveInventory stores encoded inventory data of a player, compressed with the configured codec.
func (s *Storage) SaveInventory(owner string, data []byte) error {
	compressed, err := s.codec.Encode(data)
	if err != nil {
		return fmt.Errorf("save inventory of %v: %w", owner, err)
	}
	return s.db.put(owner, s.codec.Name(), compressed)
}

// LoadInventory returns the inventory data stored for a player. It returns false if nothing was stored.
func (s *Storage) LoadInventory(owner string) ([]byte, bool, error) {
	codecName, compressed, ok, err := s.db.get(owner)
	if err != nil || !ok {
		return nil, ok, err
	}
	codec, err := CodecByName(codecName)
	if err != nil {
		return nil, false, fmt.Errorf("load inventory of %v: %w", owner, err)
	}
	data, err := codec.Decode(compressed)
	if err != nil {
		return nil, false, fmt.Errorf("load inventory of %v: %w", owner, err)
	}
	return data, true, nil
}

// Owners returns the names of all players with a stored inventory.
func (s *Storage) Owners() ([]string, error) {
	return s.db.owners()
}
