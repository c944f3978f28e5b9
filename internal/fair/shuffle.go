package fair

// DeckSize is the single standard deck this protocol deals from.
const DeckSize = 52

// ShuffleDeck derives the deck permutation: card indices 0..51 shuffled by
// the chain under the deck label. It consumes the same seed material as
// AssignSeats but a different domain label, so the two permutations are
// statistically independent.
func ShuffleDeck(params Params, gameID, serverSeed string, clients []ClientSeed) ([]int, error) {
	if err := checkPlayerCount(len(clients)); err != nil {
		return nil, err
	}

	ordered := canonicalClients(clients, params)
	chain := NewChain(params, params.DeckLabel, seedMaterial(params, gameID, serverSeed, ordered))
	cursor := &drawCursor{chain: chain}
	return cursor.permute(DeckSize), nil
}
