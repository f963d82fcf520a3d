package rendernode

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config controls how a Scene draws. The zero value is not useful; start
// from DefaultConfig.
//
// Example config.toml:
//
//	debug = true
//	deferred = true
//	reorder = true
//	op_log_size = 4096
//	arena_chunk_size = 128
type Config struct {
	// Debug enables per-frame stats logging and tree depth checks.
	Debug bool `toml:"debug"`
	// Deferred selects the defer pass and batched flush for Scene.Draw;
	// otherwise Draw replays immediately.
	Deferred bool `toml:"deferred"`
	// Reorder lets the deferred list merge non-overlapping draws into
	// batches. Ignored in replay mode.
	Reorder bool `toml:"reorder"`
	// OpLogSize is the number of recent ops kept for diagnostics.
	OpLogSize int `toml:"op_log_size"`
	// ArenaChunkSize is the number of ops per arena chunk.
	ArenaChunkSize int `toml:"arena_chunk_size"`
}

// DefaultConfig returns the configuration NewScene uses.
func DefaultConfig() Config {
	return Config{
		Deferred:       true,
		Reorder:        true,
		OpLogSize:      defaultOpLogSize,
		ArenaChunkSize: defaultArenaChunk,
	}
}

var errNegativeSize = errors.New("must not be negative")

// Load decodes TOML data over c. Keys absent from data keep their current
// values.
func (c *Config) Load(data string) error {
	if _, err := toml.Decode(data, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.OpLogSize < 0 {
		return fmt.Errorf("op_log_size %d: %w", c.OpLogSize, errNegativeSize)
	}
	if c.ArenaChunkSize < 0 {
		return fmt.Errorf("arena_chunk_size %d: %w", c.ArenaChunkSize, errNegativeSize)
	}
	return nil
}

// LoadConfig decodes data over DefaultConfig.
func LoadConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Load(data); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a TOML config file over DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := LoadConfig(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	logger().Info("config loaded", "path", path)
	return cfg, nil
}
