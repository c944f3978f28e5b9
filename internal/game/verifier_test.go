package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyatmidnight/miacatpoker/internal/fair"
)

func assertStage(t *testing.T, report Report, stage Stage, ok bool) {
	t.Helper()
	sr, found := report.Stage(stage)
	require.True(t, found, "stage %s missing from report", stage)
	assert.Equal(t, ok, sr.OK, "stage %s (detail: %s)", stage, sr.Detail)
}

func TestVerifySoundness(t *testing.T) {
	// A genuinely produced, untampered record always passes every stage.
	for _, version := range fair.SupportedVersions() {
		t.Run(version, func(t *testing.T) {
			record := produceTestRecord(t, version, demoClients())
			report := Verify(record, nil)

			assert.True(t, report.Pass, "failed stage %s", report.FailedStage)
			require.Len(t, report.Stages, len(Stages))
			for _, stage := range Stages {
				assertStage(t, report, stage, true)
			}
		})
	}
}

func TestVerifyWithExternalSeeds(t *testing.T) {
	// Seeds supplied out-of-band instead of read from the record.
	record := produceTestRecord(t, "0.0.8", demoClients())
	stripped := *record
	stripped.Players = make([]PlayerEntry, len(record.Players))
	for i, p := range record.Players {
		stripped.Players[i] = PlayerEntry{ID: p.ID, Commitment: p.Commitment, Salt: p.Salt}
	}

	revealed := make([]fair.ClientSeed, len(record.Players))
	for i, p := range record.Players {
		revealed[i] = fair.ClientSeed{PlayerID: p.ID, Seed: p.Seed, Salt: p.Salt}
	}

	report := Verify(&stripped, revealed)
	assert.True(t, report.Pass, "failed stage %s", report.FailedStage)
}

func TestVerifyCommitmentTampering(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	record.Players[1].Seed = "not_the_committed_seed"

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageCommitments, report.FailedStage)
	assertStage(t, report, StageRecord, true)
	assertStage(t, report, StageVersion, true)

	sr, _ := report.Stage(StageCommitments)
	assert.Contains(t, sr.Detail, record.Players[1].ID)
}

func TestVerifySeatTampering(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	record.SeatOrder[0], record.SeatOrder[1] = record.SeatOrder[1], record.SeatOrder[0]

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageSeats, report.FailedStage)
	assertStage(t, report, StageRecord, true)
	assertStage(t, report, StageVersion, true)
	assertStage(t, report, StageCommitments, true)

	sr, _ := report.Stage(StageSeats)
	assert.Contains(t, sr.Detail, "seat_order[0]")
}

func TestVerifyDeckTampering(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	record.DeckOrder[10], record.DeckOrder[20] = record.DeckOrder[20], record.DeckOrder[10]

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageDeck, report.FailedStage)
	assertStage(t, report, StageCommitments, true)
	assertStage(t, report, StageSeats, true)

	sr, _ := report.Stage(StageDeck)
	assert.Contains(t, sr.Detail, "deck_order[10]")
}

func TestVerifyDealTampering(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	id := record.SeatOrder[0]
	hole := record.Deal.HoleCards[id]
	hole[0], hole[1] = hole[1], hole[0]

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageDeal, report.FailedStage)
	assertStage(t, report, StageRecord, true)
	assertStage(t, report, StageVersion, true)
	assertStage(t, report, StageCommitments, true)
	assertStage(t, report, StageSeats, true)
	assertStage(t, report, StageDeck, true)
}

func TestVerifyServerSeedTampering(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	record.ServerSeed = "a different server seed"

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	// The server commitment breaks first; the derivations break too.
	assert.Equal(t, StageCommitments, report.FailedStage)
	assertStage(t, report, StageSeats, false)
	assertStage(t, report, StageDeck, false)
}

func TestVerifyCrossVersionMustNotPass(t *testing.T) {
	// A 0.0.1 record re-tagged as 0.0.8 must not spuriously verify: the
	// version tag is part of every commitment and derivation.
	record := produceTestRecord(t, "0.0.1", demoClients())
	record.Version = "0.0.8"

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageCommitments, report.FailedStage)
}

func TestVerifyUnsupportedVersion(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	record.Version = "0.1.0"

	report := Verify(record, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageVersion, report.FailedStage)
	assertStage(t, report, StageRecord, true)
	// Remaining stages are reported, all failed, so the report stays whole.
	require.Len(t, report.Stages, len(Stages))
}

func TestVerifyMalformedRecord(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameRecord)
	}{
		{"missing game id", func(r *GameRecord) { r.GameID = "" }},
		{"missing commitment", func(r *GameRecord) { r.Players[0].Commitment = "" }},
		{"seat count mismatch", func(r *GameRecord) { r.SeatOrder = r.SeatOrder[:2] }},
		{"short deck", func(r *GameRecord) { r.DeckOrder = r.DeckOrder[:51] }},
		{"unknown seat", func(r *GameRecord) { r.SeatOrder[0] = "stranger" }},
		{"bad flop", func(r *GameRecord) { r.Deal.Flop = r.Deal.Flop[:2] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := produceTestRecord(t, "0.0.8", demoClients())
			tt.mutate(record)

			report := Verify(record, nil)
			assert.False(t, report.Pass)
			assert.Equal(t, StageRecord, report.FailedStage)
			require.Len(t, report.Stages, len(Stages))
		})
	}
}

func TestVerifyNilRecord(t *testing.T) {
	report := Verify(nil, nil)
	assert.False(t, report.Pass)
	assert.Equal(t, StageRecord, report.FailedStage)
}

func TestCheckPlayerSeed(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	id := record.Players[0].ID

	assert.NoError(t, CheckPlayerSeed(record, id, record.Players[0].Seed))
	assert.ErrorIs(t, CheckPlayerSeed(record, id, "wrong seed"), fair.ErrCommitmentMismatch)
	assert.ErrorIs(t, CheckPlayerSeed(record, "nobody", "seed"), fair.ErrUnknownPlayer)
}

func TestVerifyIsReadOnly(t *testing.T) {
	record := produceTestRecord(t, "0.0.8", demoClients())
	before := *record
	beforeSeats := append([]string(nil), record.SeatOrder...)

	Verify(record, nil)

	assert.Equal(t, before.GameID, record.GameID)
	assert.Equal(t, beforeSeats, record.SeatOrder)
}
