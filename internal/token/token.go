// Package token generates the opaque hex tokens the protocol consumes: game
// IDs, server seeds and salts. Production tokens come from crypto/rand; the
// reader is injectable so tests get deterministic material.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Byte lengths fixed by the protocol.
const (
	GameIDBytes     = 8
	ServerSeedBytes = 32
	SaltBytes       = 16
)

// Generator produces hex tokens from a configurable entropy source.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator reading entropy from r. A nil reader uses
// crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Hex returns n random bytes as a 2n-character lowercase hex string.
func (g *Generator) Hex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("reading entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GameID returns a fresh game identifier.
func (g *Generator) GameID() (string, error) { return g.Hex(GameIDBytes) }

// ServerSeed returns a fresh dealer secret seed.
func (g *Generator) ServerSeed() (string, error) { return g.Hex(ServerSeedBytes) }

// Salt returns a fresh commitment salt.
func (g *Generator) Salt() (string, error) { return g.Hex(SaltBytes) }

var defaultGenerator = NewGenerator(nil)

// GameID returns a fresh game identifier from the system entropy source.
func GameID() string { return must(defaultGenerator.GameID()) }

// ServerSeed returns a fresh dealer secret seed from the system entropy source.
func ServerSeed() string { return must(defaultGenerator.ServerSeed()) }

// Salt returns a fresh commitment salt from the system entropy source.
func Salt() string { return must(defaultGenerator.Salt()) }

func must(s string, err error) string {
	if err != nil {
		panic("failed to generate random token: " + err.Error())
	}
	return s
}
