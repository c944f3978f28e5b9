// Package game produces and verifies provably fair game records: the dealer
// walks the derived permutations into a deal layout, and the verifier replays
// every derivation from revealed seeds under the record's declared version.
package game

import (
	"fmt"
	"time"

	"github.com/rubyatmidnight/miacatpoker/internal/fair"
)

// PlayerEntry is one player's commit/reveal pair as persisted in a record.
// Seed and Salt are empty until that player reveals.
type PlayerEntry struct {
	ID         string `json:"id"`
	Commitment string `json:"commitment"`
	Seed       string `json:"seed,omitempty"`
	Salt       string `json:"salt,omitempty"`
}

// DealLayout is the pure dealing outcome: who got which hole cards, what was
// burned, and the board. All cards are two-character record codes.
type DealLayout struct {
	HoleCards map[string][]string `json:"hole_cards"`
	BurnCards []string            `json:"burn_cards"`
	Flop      []string            `json:"flop"`
	Turn      string              `json:"turn"`
	River     string              `json:"river"`
}

// Board returns the five community cards in reveal order.
func (d DealLayout) Board() []string {
	board := make([]string, 0, 5)
	board = append(board, d.Flop...)
	board = append(board, d.Turn, d.River)
	return board
}

// GameRecord is the immutable exported evidence of one completed game. It is
// created once by the producer and append-only thereafter: everything needed
// for independent re-derivation is in here once seeds are revealed.
type GameRecord struct {
	GameID    string    `json:"game_id"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	ServerSeedCommitment   string `json:"server_seed_commitment"`
	ServerCommitmentDouble string `json:"server_commitment_double"`
	// ServerSeed is present only post-reveal.
	ServerSeed string `json:"server_seed,omitempty"`

	Players   []PlayerEntry `json:"players"`
	SeatOrder []string      `json:"seat_order"`
	DeckOrder []string      `json:"deck_order"`
	Deal      DealLayout    `json:"deal"`
}

// RevealedSeeds extracts the revealed client seeds in record order. Entries
// that have not revealed are skipped.
func (r *GameRecord) RevealedSeeds() []fair.ClientSeed {
	out := make([]fair.ClientSeed, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Seed != "" {
			out = append(out, fair.ClientSeed{PlayerID: p.ID, Seed: p.Seed, Salt: p.Salt})
		}
	}
	return out
}

// Player returns the entry for a player ID, if present.
func (r *GameRecord) Player(id string) (PlayerEntry, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerEntry{}, false
}

// Validate checks structural integrity before any cryptographic work. A
// record failing here is malformed and cannot be partially verified.
func (r *GameRecord) Validate() error {
	switch {
	case r.GameID == "":
		return fmt.Errorf("%w: missing game_id", ErrMalformedRecord)
	case r.Version == "":
		return fmt.Errorf("%w: missing version", ErrMalformedRecord)
	case r.ServerSeedCommitment == "":
		return fmt.Errorf("%w: missing server_seed_commitment", ErrMalformedRecord)
	case r.ServerCommitmentDouble == "":
		return fmt.Errorf("%w: missing server_commitment_double", ErrMalformedRecord)
	case len(r.Players) == 0:
		return fmt.Errorf("%w: no players", ErrMalformedRecord)
	}

	seen := make(map[string]bool, len(r.Players))
	for i, p := range r.Players {
		if p.ID == "" {
			return fmt.Errorf("%w: player %d has no id", ErrMalformedRecord, i)
		}
		if p.Commitment == "" {
			return fmt.Errorf("%w: player %s has no commitment", ErrMalformedRecord, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate player %s", ErrMalformedRecord, p.ID)
		}
		seen[p.ID] = true
	}

	if len(r.SeatOrder) != len(r.Players) {
		return fmt.Errorf("%w: seat_order has %d entries for %d players",
			ErrMalformedRecord, len(r.SeatOrder), len(r.Players))
	}
	for _, id := range r.SeatOrder {
		if !seen[id] {
			return fmt.Errorf("%w: seat_order names unknown player %s", ErrMalformedRecord, id)
		}
	}

	if len(r.DeckOrder) != fair.DeckSize {
		return fmt.Errorf("%w: deck_order has %d cards", ErrMalformedRecord, len(r.DeckOrder))
	}

	if len(r.Deal.Flop) != 3 {
		return fmt.Errorf("%w: flop has %d cards", ErrMalformedRecord, len(r.Deal.Flop))
	}
	if r.Deal.Turn == "" || r.Deal.River == "" {
		return fmt.Errorf("%w: missing turn or river", ErrMalformedRecord)
	}
	for id, hole := range r.Deal.HoleCards {
		if !seen[id] {
			return fmt.Errorf("%w: hole cards for unknown player %s", ErrMalformedRecord, id)
		}
		if len(hole) != 2 {
			return fmt.Errorf("%w: player %s has %d hole cards", ErrMalformedRecord, id, len(hole))
		}
	}
	return nil
}
