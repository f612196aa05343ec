package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"rinha/config"
	"rinha/eval"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, eval.DefaultMaxDepth, cfg.Eval.MaxDepth)
	assert.Equal(t, eval.DefaultMaxStack, cfg.Eval.MaxStack)
	assert.False(t, cfg.Eval.StrictArity)
	assert.Equal(t, "> ", cfg.REPL.Prompt)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	write(t, path, `
[eval]
max_depth = 5000
strict_arity = true

[repl]
prompt = "rinha> "

[log]
level = "debug"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Eval.MaxDepth)
	assert.Equal(t, eval.DefaultMaxStack, cfg.Eval.MaxStack, "missing keys keep their defaults")
	assert.True(t, cfg.Eval.StrictArity)
	assert.Equal(t, "rinha> ", cfg.REPL.Prompt)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	opts := cfg.EvalOptions()
	assert.Equal(t, eval.Options{MaxDepth: 5000, MaxStack: eval.DefaultMaxStack, StrictArity: true}, opts)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"syntax", "[eval\n", "parsing"},
		{"unknown key", "[eval]\nmax_dept = 3\n", "unknown keys: eval.max_dept"},
		{"negative depth", "[eval]\nmax_depth = -1\n", "eval.max_depth must not be negative"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"depth beyond stack", "[eval]\nmax_depth = 1000\nmax_stack = 1048576\n", "keep max_depth at most 512"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), config.FileName)
			write(t, path, test.content)
			_, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	path, cfg, err := config.Find(nested)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Nil(t, cfg)

	write(t, filepath.Join(root, "a", config.FileName), "[eval]\nmax_depth = 7\n")
	path, cfg, err = config.Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", config.FileName), path)
	assert.Equal(t, 7, cfg.Eval.MaxDepth)
}

func TestFindStopsAtGit(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	write(t, filepath.Join(root, config.FileName), "[eval]\nmax_depth = 7\n")

	path, cfg, err := config.Find(repo)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Nil(t, cfg)
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := config.Default()
	assert.Empty(t, cfg.HistoryPath())
	cfg.REPL.HistoryFile = "~/.rinha_history"
	assert.Equal(t, filepath.Join(home, ".rinha_history"), cfg.HistoryPath())
	cfg.REPL.HistoryFile = "/tmp/h"
	assert.Equal(t, "/tmp/h", cfg.HistoryPath())
}
