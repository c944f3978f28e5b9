package fair

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// MinPlayers and MaxPlayers bound a single table.
	MinPlayers = 2
	MaxPlayers = 9
)

// canonicalClients returns the clients in the version's canonical order.
// Commitment order was the original behavior; later versions sort by player
// ID so the derivation does not depend on arrival order.
func canonicalClients(clients []ClientSeed, params Params) []ClientSeed {
	out := make([]ClientSeed, len(clients))
	copy(out, clients)
	if params.SeedOrder == SeedOrderPlayerID {
		sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	}
	return out
}

// seedMaterial folds the server seed and every client seed into the shared
// entropy string. No single party controls the result: changing any one seed
// changes every derivation.
func seedMaterial(params Params, gameID, serverSeed string, clients []ClientSeed) []byte {
	parts := make([]string, 0, len(clients)+3)
	parts = append(parts, params.LabelPrefix, gameID, serverSeed)
	for _, c := range clients {
		parts = append(parts, c.Seed)
	}
	return []byte(strings.Join(parts, ":"))
}

func checkPlayerCount(n int) error {
	if n < MinPlayers {
		return fmt.Errorf("%w (got %d)", ErrInsufficientPlayers, n)
	}
	if n > MaxPlayers {
		return fmt.Errorf("%w (got %d)", ErrTooManyPlayers, n)
	}
	return nil
}

// AssignSeats derives the seating permutation: a bias-free shuffle of the
// player IDs driven by the chain under the position label. Element i of the
// result sits at position i+1; position 1 is the dealer button.
func AssignSeats(params Params, gameID, serverSeed string, clients []ClientSeed) ([]string, error) {
	if err := checkPlayerCount(len(clients)); err != nil {
		return nil, err
	}

	ordered := canonicalClients(clients, params)
	chain := NewChain(params, params.PositionLabel, seedMaterial(params, gameID, serverSeed, ordered))
	cursor := &drawCursor{chain: chain}

	perm := cursor.permute(len(ordered))
	seats := make([]string, len(ordered))
	for i, j := range perm {
		seats[i] = ordered[j].PlayerID
	}
	return seats, nil
}
