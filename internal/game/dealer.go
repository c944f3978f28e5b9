package game

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/rubyatmidnight/miacatpoker/internal/deck"
	"github.com/rubyatmidnight/miacatpoker/internal/fair"
)

// HoleCardsPerSeat is fixed by the game format.
const HoleCardsPerSeat = 2

// Producer builds game records. The clock is injectable so tests control
// record timestamps.
type Producer struct {
	clock quartz.Clock
}

// NewProducer returns a producer stamping records from the given clock.
// A nil clock uses real time.
func NewProducer(clock quartz.Clock) *Producer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Producer{clock: clock}
}

// Produce runs the whole protocol for one game: commits every client seed,
// seals the ledger, reveals, derives seats and deck, deals, and emits the
// immutable record. Any precondition failure aborts before a record exists.
func (p *Producer) Produce(version, gameID, serverSeed string, clients []fair.ClientSeed) (*GameRecord, error) {
	params, err := fair.ParamsFor(version)
	if err != nil {
		return nil, err
	}

	ledger := fair.NewLedger(params, gameID)
	for _, c := range clients {
		if _, err := ledger.Commit(c.PlayerID, c.Seed, c.Salt); err != nil {
			return nil, err
		}
	}
	ledger.Seal()
	for _, c := range clients {
		if err := ledger.Reveal(c.PlayerID, c.Seed, c.Salt); err != nil {
			return nil, err
		}
	}
	revealed := ledger.Revealed()

	seats, err := fair.AssignSeats(params, gameID, serverSeed, revealed)
	if err != nil {
		return nil, err
	}
	deckOrder, err := fair.ShuffleDeck(params, gameID, serverSeed, revealed)
	if err != nil {
		return nil, err
	}

	layout, err := Deal(seats, deckOrder, params.Burns)
	if err != nil {
		return nil, err
	}

	serverHash, doubleHash := fair.ServerCommit(params, gameID, serverSeed)
	commitments := ledger.Commitments()

	players := make([]PlayerEntry, len(revealed))
	for i, c := range revealed {
		players[i] = PlayerEntry{
			ID:         c.PlayerID,
			Commitment: commitments[c.PlayerID],
			Seed:       c.Seed,
			Salt:       c.Salt,
		}
	}

	return &GameRecord{
		GameID:                 gameID,
		Version:                version,
		CreatedAt:              p.clock.Now().UTC(),
		ServerSeedCommitment:   serverHash,
		ServerCommitmentDouble: doubleHash,
		ServerSeed:             serverSeed,
		Players:                players,
		SeatOrder:              seats,
		DeckOrder:              deck.Codes(deckOrder),
		Deal:                   layout,
	}, nil
}

// dealingOrder returns seat indices in the order cards leave the deck: the
// seat left of the button first, wrapping so position 1 (the button) is dealt
// last. Seats are 1-based positions, indices into seatOrder are 0-based.
func dealingOrder(n int) []int {
	order := make([]int, 0, n)
	for i := 1; i < n; i++ {
		order = append(order, i)
	}
	return append(order, 0)
}

// Deal walks the shuffled deck per the fixed format: burn per schedule, two
// passes of one hole card per seat, burn, flop, burn, turn, burn, river.
// Pure data in, pure data out.
func Deal(seatOrder []string, deckOrder []int, burns fair.BurnSchedule) (DealLayout, error) {
	n := len(seatOrder)
	needed := burns.Total() + n*HoleCardsPerSeat + 5
	if needed > len(deckOrder) {
		return DealLayout{}, fmt.Errorf("%w: need %d cards for %d players, have %d",
			fair.ErrDeckExhausted, needed, n, len(deckOrder))
	}

	next := 0
	draw := func() string {
		code := deck.Card(deckOrder[next]).Code()
		next++
		return code
	}

	layout := DealLayout{HoleCards: make(map[string][]string, n)}
	burn := func(count int) {
		for i := 0; i < count; i++ {
			layout.BurnCards = append(layout.BurnCards, draw())
		}
	}

	burn(burns.BeforeHole)
	for pass := 0; pass < HoleCardsPerSeat; pass++ {
		for _, seat := range dealingOrder(n) {
			id := seatOrder[seat]
			layout.HoleCards[id] = append(layout.HoleCards[id], draw())
		}
	}

	burn(burns.BeforeFlop)
	layout.Flop = []string{draw(), draw(), draw()}
	burn(burns.BeforeTurn)
	layout.Turn = draw()
	burn(burns.BeforeRiver)
	layout.River = draw()

	return layout, nil
}
