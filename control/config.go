// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Pool configuration with YAML loading, validation, and reload listeners.

package control

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/momentics/memsentry/api"
)

// PoolConfig describes how to build a ring pool.
type PoolConfig struct {
	// Requested usable capacity; rounded up internally to a power-of-two
	// slot count minus one.
	Capacity int `yaml:"capacity"`

	// Payload byte alignment; must be a power of two.
	Alignment uint64 `yaml:"alignment"`

	// Dynamic selects mapping-facility storage instead of inline storage.
	Dynamic bool `yaml:"dynamic"`

	// CallerOwned starts the pool empty; cells are constructed and
	// destroyed by the caller.
	CallerOwned bool `yaml:"caller_owned"`
}

// DefaultPoolConfig returns the baseline configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Capacity:  1024,
		Alignment: 64,
	}
}

// Validate checks the configuration for construction-time errors.
func (c *PoolConfig) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("pool config: capacity %d: %w", c.Capacity, api.ErrInvalidArgument)
	}
	if c.Alignment == 0 || c.Alignment&(c.Alignment-1) != 0 {
		return fmt.Errorf("pool config: alignment %d: %w", c.Alignment, api.ErrInvalidAlignment)
	}
	return nil
}

// LoadPoolConfig reads and validates a YAML pool configuration file.
// Missing keys keep their defaults.
func LoadPoolConfig(path string) (*PoolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultPoolConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigStore holds the live configuration with atomic snapshot and
// listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	cfg       PoolConfig
	listeners []func(PoolConfig)
}

// NewConfigStore initializes a store seeded with cfg.
func NewConfigStore(cfg PoolConfig) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

// Snapshot returns a copy of the current configuration.
func (cs *ConfigStore) Snapshot() PoolConfig {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.cfg
}

// Set replaces the configuration and dispatches reload listeners.
func (cs *ConfigStore) Set(cfg PoolConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.mu.Lock()
	cs.cfg = cfg
	listeners := cs.listeners
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
	return nil
}

// OnReload registers a listener invoked synchronously after Set.
func (cs *ConfigStore) OnReload(fn func(PoolConfig)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
