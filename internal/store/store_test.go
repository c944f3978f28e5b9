package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyatmidnight/miacatpoker/internal/fair"
	"github.com/rubyatmidnight/miacatpoker/internal/game"
)

func testRecord(t *testing.T) *game.GameRecord {
	t.Helper()
	clients := []fair.ClientSeed{
		{PlayerID: "p1", Seed: "seed1", Salt: "salt1"},
		{PlayerID: "p2", Seed: "seed2", Salt: "salt2"},
	}
	record, err := game.NewProducer(quartz.NewMock(t)).Produce("0.0.8", "game1", "server seed", clients)
	require.NoError(t, err)
	return record
}

func TestSaveLoadRoundTrip(t *testing.T) {
	record := testRecord(t)
	path := filepath.Join(t.TempDir(), "game.json")

	require.NoError(t, Save(path, record))

	loaded, err := Load(path)
	require.NoError(t, err)

	// time.Time equality is checked separately: JSON round-trips the instant
	// but not the internal representation.
	assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	loaded.CreatedAt = record.CreatedAt
	assert.Equal(t, record, loaded)
}

func TestLoadDetectsTampering(t *testing.T) {
	record := testRecord(t)
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, Save(path, record))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(data), record.GameID, "another-game", 1)
	require.NotEqual(t, string(data), edited)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrFingerprintMismatch)
}

func TestLoadBareRecordFile(t *testing.T) {
	// Records written by other implementations come without an envelope.
	record := testRecord(t)
	data, err := json.Marshal(record)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bare.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, record.GameID, loaded.GameID)
	assert.Equal(t, record.DeckOrder, loaded.DeckOrder)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, game.ErrMalformedRecord)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSaveIsAtomicOverwrite(t *testing.T) {
	record := testRecord(t)
	path := filepath.Join(t.TempDir(), "game.json")

	require.NoError(t, Save(path, record))
	require.NoError(t, Save(path, record))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}
