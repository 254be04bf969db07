// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config handles wordstack.toml configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/wordstack/memory"
	"github.com/ezrec/wordstack/stack"
)

const (
	DEFAULT_STACK_CAPACITY = 256    // Words in the evaluator stack.
	DEFAULT_POOL_WORDS     = 4096   // Words in the memory pool.
	DEFAULT_LOG_LEVEL      = "info" // zap level name.
)

// Config represents a wordstack.toml file.
type Config struct {
	Stack StackConfig `toml:"stack"`
	Pool  PoolConfig  `toml:"pool"`
	Log   LogConfig   `toml:"log"`
}

// StackConfig sizes the evaluator stack.
type StackConfig struct {
	Capacity int  `toml:"capacity"`
	Static   bool `toml:"static"` // Attach to a fixed buffer instead of the pool.
}

// PoolConfig sizes the memory pool.
type PoolConfig struct {
	Words int `toml:"words"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Stack: StackConfig{Capacity: DEFAULT_STACK_CAPACITY},
		Pool:  PoolConfig{Words: DEFAULT_POOL_WORDS},
		Log:   LogConfig{Level: DEFAULT_LOG_LEVEL},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes TOML text. Keys absent from the text keep their defaults.
func Parse(text string) (*Config, error) {
	c := Default()

	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKey, undecoded[0])
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the sizes against each other.
func (c *Config) Validate() error {
	switch {
	case c.Stack.Capacity < 0:
		return fmt.Errorf("%w: stack.capacity %v", ErrInvalid, c.Stack.Capacity)
	case c.Pool.Words < 0:
		return fmt.Errorf("%w: pool.words %v", ErrInvalid, c.Pool.Words)
	case !c.Stack.Static && c.Stack.Capacity > c.Pool.Words:
		return fmt.Errorf("%w: %v", ErrInvalid, f("stack.capacity %d exceeds pool.words %d", c.Stack.Capacity, c.Pool.Words))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}

	return nil
}

// Logger builds a development logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true

	return zc.Build()
}

// Open creates the memory pool and the stack. With stack.static set, the
// stack is attached to its own buffer and pool is still returned for other
// allocations.
func (c *Config) Open(logger *zap.Logger) (s *stack.Stack, pool *memory.Pool, err error) {
	pool = memory.NewPool(c.Pool.Words)
	pool.Logger = logger

	if c.Stack.Static {
		s = stack.Attach(make([]stack.Word, c.Stack.Capacity))
		return
	}

	s, err = stack.Allocate(pool, c.Stack.Capacity)
	return
}
