// Package config parses HCL table definitions for the deal command.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/rubyatmidnight/miacatpoker/internal/fair"
)

// TableConfig describes one game to produce: protocol version, optional
// pinned entropy for reproducible demos, and the players at the table.
type TableConfig struct {
	Version    string         `hcl:"version,optional"`
	GameID     string         `hcl:"game_id,optional"`
	ServerSeed string         `hcl:"server_seed,optional"`
	Output     string         `hcl:"output,optional"`
	Players    []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig is one player's identity and client seed. Salt is optional;
// the deal command generates one when omitted.
type PlayerConfig struct {
	Name string `hcl:"name,label"`
	Seed string `hcl:"seed"`
	Salt string `hcl:"salt,optional"`
}

// DefaultTableConfig returns the built-in demo table.
func DefaultTableConfig() *TableConfig {
	cfg := &TableConfig{Version: fair.CurrentVersion}
	for _, name := range []string{"Seal", "Syztmz", "Eddie", "Wino"} {
		cfg.Players = append(cfg.Players, PlayerConfig{
			Name: name,
			Seed: "secret_seed_" + name,
		})
	}
	return cfg
}

// Load parses a table configuration from an HCL file. A missing file yields
// the built-in demo table.
func Load(filename string) (*TableConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultTableConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg TableConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Version == "" {
		cfg.Version = fair.CurrentVersion
	}
	return &cfg, nil
}

// Validate checks the table before any seeds are generated.
func (c *TableConfig) Validate() error {
	if _, err := fair.ParamsFor(c.Version); err != nil {
		return err
	}
	if len(c.Players) < fair.MinPlayers {
		return fmt.Errorf("table has %d players: %w", len(c.Players), fair.ErrInsufficientPlayers)
	}
	if len(c.Players) > fair.MaxPlayers {
		return fmt.Errorf("table has %d players: %w", len(c.Players), fair.ErrTooManyPlayers)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player with empty name")
		}
		if p.Seed == "" {
			return fmt.Errorf("player %s: seed is required", p.Name)
		}
		if len([]byte(p.Seed)) > fair.MaxClientSeedBytes {
			return fmt.Errorf("player %s: %w", p.Name, fair.ErrSeedTooLong)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player %s", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
