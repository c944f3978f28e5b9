package token

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLengths(t *testing.T) {
	assert.Len(t, GameID(), GameIDBytes*2)
	assert.Len(t, ServerSeed(), ServerSeedBytes*2)
	assert.Len(t, Salt(), SaltBytes*2)
}

func TestTokensAreHex(t *testing.T) {
	for _, s := range []string{GameID(), ServerSeed(), Salt()} {
		_, err := hex.DecodeString(s)
		assert.NoError(t, err, "token %q is not hex", s)
	}
}

func TestTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GameID()
		assert.False(t, seen[id], "duplicate token %s", id)
		seen[id] = true
	}
}

func TestGeneratorDeterministicWithInjectedReader(t *testing.T) {
	material := bytes.Repeat([]byte{0xab, 0xcd}, 32)

	a := NewGenerator(bytes.NewReader(material))
	b := NewGenerator(bytes.NewReader(material))

	seedA, err := a.ServerSeed()
	require.NoError(t, err)
	seedB, err := b.ServerSeed()
	require.NoError(t, err)
	assert.Equal(t, seedA, seedB)
	assert.Equal(t, "abcd", seedA[:4])
}

func TestGeneratorExhaustedReader(t *testing.T) {
	g := NewGenerator(bytes.NewReader([]byte{0x01}))
	_, err := g.ServerSeed()
	assert.Error(t, err)
}
