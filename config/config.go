// Package config loads rinha.toml, the optional per-project configuration
// file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"rinha/eval"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const FileName = "rinha.toml"

// Config represents a rinha.toml file.
type Config struct {
	Eval EvalConfig `toml:"eval"`
	REPL REPLConfig `toml:"repl"`
	Log  LogConfig  `toml:"log"`
}

type EvalConfig struct {
	// MaxDepth is the maximum number of nested evaluation frames.
	MaxDepth int `toml:"max_depth"`
	// MaxStack is the goroutine stack limit in bytes.
	MaxStack int `toml:"max_stack"`
	// StrictArity rejects calls whose argument count differs from the
	// parameter count.
	StrictArity bool `toml:"strict_arity"`
}

type REPLConfig struct {
	Prompt string `toml:"prompt"`
	// HistoryFile keeps readline history across sessions when set.
	// A leading ~/ is expanded to the home directory.
	HistoryFile string `toml:"history_file,omitempty"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Eval: EvalConfig{
			MaxDepth: eval.DefaultMaxDepth,
			MaxStack: eval.DefaultMaxStack,
		},
		REPL: REPLConfig{Prompt: "> "},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

// Find searches for rinha.toml starting from dir and walking up to parent
// directories, stopping at a .git boundary. It returns ("", nil, nil) if
// there is none.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, errors.Wrap(err, "resolving config directory")
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	if c.Eval.MaxDepth < 0 {
		return errors.Errorf("eval.max_depth must not be negative, got %d", c.Eval.MaxDepth)
	}
	if c.Eval.MaxStack < 0 {
		return errors.Errorf("eval.max_stack must not be negative, got %d", c.Eval.MaxStack)
	}
	stack := c.Eval.MaxStack
	if stack == 0 {
		stack = eval.DefaultMaxStack
	}
	if limit := eval.DepthLimit(stack); c.Eval.MaxDepth > limit {
		return errors.Errorf("eval.max_depth %d needs more than eval.max_stack = %d bytes; raise max_stack or keep max_depth at most %d",
			c.Eval.MaxDepth, stack, limit)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.Wrapf(err, "log.level")
	}
	return level, nil
}

// EvalOptions converts the [eval] section; output and logging are left
// to the caller.
func (c *Config) EvalOptions() eval.Options {
	return eval.Options{
		MaxDepth:    c.Eval.MaxDepth,
		MaxStack:    c.Eval.MaxStack,
		StrictArity: c.Eval.StrictArity,
	}
}

// HistoryPath returns the expanded REPL history file, or "".
func (c *Config) HistoryPath() string {
	path := c.REPL.HistoryFile
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
