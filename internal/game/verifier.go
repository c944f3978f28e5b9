package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rubyatmidnight/miacatpoker/internal/deck"
	"github.com/rubyatmidnight/miacatpoker/internal/fair"
)

// Stage identifies one verification step. Stages run in this order and each
// later stage depends on the recomputed outputs of the earlier ones.
type Stage string

const (
	StageRecord      Stage = "record"
	StageVersion     Stage = "version"
	StageCommitments Stage = "commitments"
	StageSeats       Stage = "seats"
	StageDeck        Stage = "deck"
	StageDeal        Stage = "deal"
)

// Stages in execution order.
var Stages = []Stage{StageRecord, StageVersion, StageCommitments, StageSeats, StageDeck, StageDeal}

// StageResult is the outcome of one stage. Detail names the first mismatching
// field when the stage failed.
type StageResult struct {
	Stage  Stage  `json:"stage"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Report is the full verification outcome. Every stage gets a result so a
// failing report always explains why, not just that.
type Report struct {
	GameID      string        `json:"game_id"`
	Version     string        `json:"version"`
	Pass        bool          `json:"pass"`
	FailedStage Stage         `json:"failed_stage,omitempty"`
	Stages      []StageResult `json:"stages"`
}

// Stage returns the result for one stage.
func (r Report) Stage(s Stage) (StageResult, bool) {
	for _, sr := range r.Stages {
		if sr.Stage == s {
			return sr, true
		}
	}
	return StageResult{}, false
}

// Verify replays every derivation in the record from the revealed seeds and
// compares against the published fields. Passing revealed as nil uses the
// seeds disclosed inside the record itself. Verification is read-only.
//
// A malformed record or unsupported version fails the whole report
// immediately; later stages are reported as skipped failures so the report
// stays complete.
func Verify(record *GameRecord, revealed []fair.ClientSeed) Report {
	report := Report{Pass: true}
	if record != nil {
		report.GameID = record.GameID
		report.Version = record.Version
	}

	fail := func(stage Stage, detail string) {
		report.Stages = append(report.Stages, StageResult{Stage: stage, OK: false, Detail: detail})
		if report.Pass {
			report.Pass = false
			report.FailedStage = stage
		}
	}
	pass := func(stage Stage) {
		report.Stages = append(report.Stages, StageResult{Stage: stage, OK: true})
	}
	abort := func(from int, detail string) Report {
		for _, stage := range Stages[from:] {
			fail(stage, detail)
		}
		return report
	}

	// Stage 1: structural integrity. Nothing else is meaningful without it.
	if record == nil {
		fail(StageRecord, "no record")
		return abort(1, "record malformed")
	}
	if err := record.Validate(); err != nil {
		fail(StageRecord, err.Error())
		return abort(1, "record malformed")
	}
	pass(StageRecord)

	// Stage 2: the version must be in the frozen set.
	params, err := fair.ParamsFor(record.Version)
	if err != nil {
		fail(StageVersion, err.Error())
		return abort(2, "version unsupported")
	}
	pass(StageVersion)

	if revealed == nil {
		revealed = record.RevealedSeeds()
	}

	// Stage 3: recompute every commitment from the revealed material.
	if detail := checkCommitments(record, params, revealed); detail != "" {
		fail(StageCommitments, detail)
	} else {
		pass(StageCommitments)
	}

	// Stage 4: replay the seat derivation.
	seats, err := fair.AssignSeats(params, record.GameID, record.ServerSeed, revealed)
	if err != nil {
		fail(StageSeats, err.Error())
		return abort(4, "seat derivation failed")
	}
	if detail := firstSeatMismatch(seats, record.SeatOrder); detail != "" {
		fail(StageSeats, detail)
	} else {
		pass(StageSeats)
	}

	// Stage 5: replay the deck derivation.
	deckOrder, err := fair.ShuffleDeck(params, record.GameID, record.ServerSeed, revealed)
	if err != nil {
		fail(StageDeck, err.Error())
		return abort(5, "deck derivation failed")
	}
	if detail := firstDeckMismatch(deckOrder, record.DeckOrder); detail != "" {
		fail(StageDeck, detail)
	} else {
		pass(StageDeck)
	}

	// Stage 6: replay the deal from the recomputed permutations, not the
	// published ones, so a consistent-but-rederived fake still fails here.
	layout, err := Deal(seats, deckOrder, params.Burns)
	if err != nil {
		fail(StageDeal, err.Error())
		return report
	}
	if detail := firstLayoutMismatch(layout, record.Deal); detail != "" {
		fail(StageDeal, detail)
	} else {
		pass(StageDeal)
	}

	return report
}

// CheckPlayerSeed lets a single player confirm their own revealed seed
// against the record before trusting the full report.
func CheckPlayerSeed(record *GameRecord, playerID, seed string) error {
	if record == nil {
		return fmt.Errorf("%w: no record", ErrMalformedRecord)
	}
	params, err := fair.ParamsFor(record.Version)
	if err != nil {
		return err
	}
	entry, ok := record.Player(playerID)
	if !ok {
		return fmt.Errorf("player %q: %w", playerID, fair.ErrUnknownPlayer)
	}
	if err := fair.VerifyCommitment(params, record.GameID, seed, entry.Salt, entry.Commitment); err != nil {
		return fmt.Errorf("player %q: %w", playerID, err)
	}
	return nil
}

func checkCommitments(record *GameRecord, params fair.Params, revealed []fair.ClientSeed) string {
	if record.ServerSeed == "" {
		return "server seed not revealed"
	}
	serverHash, doubleHash := fair.ServerCommit(params, record.GameID, record.ServerSeed)
	if serverHash != record.ServerSeedCommitment {
		return "server_seed_commitment"
	}
	if doubleHash != record.ServerCommitmentDouble {
		return "server_commitment_double"
	}

	byID := make(map[string]fair.ClientSeed, len(revealed))
	for _, c := range revealed {
		byID[c.PlayerID] = c
	}
	// Deterministic reporting order regardless of map iteration.
	ids := make([]string, 0, len(record.Players))
	for _, p := range record.Players {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		entry, _ := record.Player(id)
		c, ok := byID[id]
		if !ok {
			return fmt.Sprintf("players[%s].seed not revealed", id)
		}
		err := fair.VerifyCommitment(params, record.GameID, c.Seed, c.Salt, entry.Commitment)
		if errors.Is(err, fair.ErrCommitmentMismatch) {
			return fmt.Sprintf("players[%s].commitment", id)
		}
	}
	return ""
}

func firstSeatMismatch(derived, published []string) string {
	if len(derived) != len(published) {
		return fmt.Sprintf("seat_order length: derived %d, published %d", len(derived), len(published))
	}
	for i := range derived {
		if derived[i] != published[i] {
			return fmt.Sprintf("seat_order[%d]: derived %s, published %s", i, derived[i], published[i])
		}
	}
	return ""
}

func firstDeckMismatch(derived []int, published []string) string {
	codes := deck.Codes(derived)
	if len(codes) != len(published) {
		return fmt.Sprintf("deck_order length: derived %d, published %d", len(codes), len(published))
	}
	for i := range codes {
		if codes[i] != published[i] {
			return fmt.Sprintf("deck_order[%d]: derived %s, published %s", i, codes[i], published[i])
		}
	}
	return ""
}

func firstLayoutMismatch(derived, published DealLayout) string {
	ids := make([]string, 0, len(derived.HoleCards))
	for id := range derived.HoleCards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		want := derived.HoleCards[id]
		got, ok := published.HoleCards[id]
		if !ok {
			return fmt.Sprintf("hole_cards[%s] missing", id)
		}
		for i := range want {
			if i >= len(got) || want[i] != got[i] {
				return fmt.Sprintf("hole_cards[%s][%d]", id, i)
			}
		}
	}
	if len(derived.BurnCards) != len(published.BurnCards) {
		return "burn_cards length"
	}
	for i := range derived.BurnCards {
		if derived.BurnCards[i] != published.BurnCards[i] {
			return fmt.Sprintf("burn_cards[%d]", i)
		}
	}
	for i := range derived.Flop {
		if i >= len(published.Flop) || derived.Flop[i] != published.Flop[i] {
			return fmt.Sprintf("flop[%d]", i)
		}
	}
	if derived.Turn != published.Turn {
		return "turn"
	}
	if derived.River != published.River {
		return "river"
	}
	return ""
}
