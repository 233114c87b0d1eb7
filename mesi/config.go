package mesi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/kal667/mesisim/cmn"
	"gopkg.in/yaml.v2"
)

// Config is the fixed geometry shared by every core's cache, plus the
// size of the fleet. It must be set before NewSimulator and is
// immutable for the lifetime of the Simulator it produces.
type Config struct {
	NumCores       int `json:"num_cores" yaml:"num_cores"`
	CacheSizeBytes int `json:"cache_size_bytes" yaml:"cache_size_bytes"`
	BlockSizeBytes int `json:"block_size_bytes" yaml:"block_size_bytes"`
	Associativity  int `json:"associativity" yaml:"associativity"`
}

// DefaultConfig mirrors the original source's DEFAULT_* build-time
// constants: a single core, 32KB cache, 16-byte blocks, 2-way set
// associative.
func DefaultConfig() Config {
	return Config{
		NumCores:       1,
		CacheSizeBytes: 32 * 1024,
		BlockSizeBytes: 16,
		Associativity:  2,
	}
}

// LoadConfig reads a Config from a JSON or YAML file, chosen by file
// extension (".yaml"/".yml" for YAML, anything else for JSON), then
// validates it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, newConfigError("reading %s: %v", path, err)
	}

	cfg := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, newConfigError("parsing YAML config %s: %v", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Config{}, newConfigError("parsing JSON config %s: %v", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// wordsPerBlock returns the block-size-to-word-count ratio used for
// every word-denominated traffic counter.
func (c Config) wordsPerBlock() int { return c.BlockSizeBytes / WordSize }

// nSets returns the derived number of sets per core.
func (c Config) nSets() int { return c.CacheSizeBytes / c.BlockSizeBytes / c.Associativity }

// Validate enforces the divisibility/bounds requirements a valid
// geometry must satisfy: NumCores in [1, MaxCores], BlockSizeBytes a
// power of two >= WordSize,
// Associativity a positive power of two, and CacheSizeBytes/BlockSizeBytes
// evenly divisible by Associativity into a power-of-two set count.
func (c Config) Validate() error {
	if c.NumCores < 1 || c.NumCores > MaxCores {
		return newConfigError("num_cores must be in [1, %d], got %d", MaxCores, c.NumCores)
	}
	if c.BlockSizeBytes < WordSize || !cmn.IsPowerOfTwo(c.BlockSizeBytes) {
		return newConfigError("block_size_bytes must be a power of two >= %d, got %d", WordSize, c.BlockSizeBytes)
	}
	if c.Associativity < 1 || !cmn.IsPowerOfTwo(c.Associativity) {
		return newConfigError("associativity must be a positive power of two, got %d", c.Associativity)
	}
	if c.CacheSizeBytes < 1 {
		return newConfigError("cache_size_bytes must be positive, got %d", c.CacheSizeBytes)
	}
	blocksPerCache := c.CacheSizeBytes / c.BlockSizeBytes
	if blocksPerCache*c.BlockSizeBytes != c.CacheSizeBytes {
		return newConfigError("cache_size_bytes (%d) must be a multiple of block_size_bytes (%d)", c.CacheSizeBytes, c.BlockSizeBytes)
	}
	if blocksPerCache%c.Associativity != 0 {
		return newConfigError("associativity (%d) must divide cache_size_bytes/block_size_bytes (%d)", c.Associativity, blocksPerCache)
	}
	nSets := blocksPerCache / c.Associativity
	if !cmn.IsPowerOfTwo(nSets) {
		return newConfigError("derived n_sets (%d) must be a power of two", nSets)
	}
	return nil
}
