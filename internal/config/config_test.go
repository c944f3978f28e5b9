package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyatmidnight/miacatpoker/internal/fair"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeConfig(t, `
version = "0.0.8"
game_id = "abc123"
output  = "out.json"

player "alice" {
  seed = "alice_secret"
  salt = "deadbeef"
}

player "bob" {
  seed = "bob_secret"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.8", cfg.Version)
	assert.Equal(t, "abc123", cfg.GameID)
	assert.Equal(t, "out.json", cfg.Output)
	require.Len(t, cfg.Players, 2)
	assert.Equal(t, "alice", cfg.Players[0].Name)
	assert.Equal(t, "deadbeef", cfg.Players[0].Salt)
	assert.Empty(t, cfg.Players[1].Salt)
}

func TestLoadMissingFileUsesDemoTable(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, fair.CurrentVersion, cfg.Version)
	assert.Len(t, cfg.Players, 4)
}

func TestLoadDefaultsVersion(t *testing.T) {
	path := writeConfig(t, `
player "a" { seed = "s1" }
player "b" { seed = "s2" }
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, fair.CurrentVersion, cfg.Version)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `player "a" { seed = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *TableConfig {
		return &TableConfig{
			Version: "0.0.8",
			Players: []PlayerConfig{
				{Name: "a", Seed: "s1"},
				{Name: "b", Seed: "s2"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*TableConfig)
		wantErr error
	}{
		{"bad version", func(c *TableConfig) { c.Version = "9.9.9" }, fair.ErrUnsupportedVersion},
		{"one player", func(c *TableConfig) { c.Players = c.Players[:1] }, fair.ErrInsufficientPlayers},
		{"oversized seed", func(c *TableConfig) { c.Players[0].Seed = strings.Repeat("x", 65) }, fair.ErrSeedTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("too many players", func(t *testing.T) {
		cfg := base()
		for i := 0; i < 8; i++ {
			cfg.Players = append(cfg.Players, PlayerConfig{Name: string(rune('c' + i)), Seed: "s"})
		}
		assert.ErrorIs(t, cfg.Validate(), fair.ErrTooManyPlayers)
	})

	t.Run("duplicate player", func(t *testing.T) {
		cfg := base()
		cfg.Players[1].Name = "a"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing seed", func(t *testing.T) {
		cfg := base()
		cfg.Players[1].Seed = ""
		assert.Error(t, cfg.Validate())
	})
}
