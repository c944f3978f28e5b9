// Package showdown ranks the seats of a completed deal for display. It has
// no role in fairness verification; the protocol is judged purely on the
// derived permutations, this just tells the humans who won.
package showdown

import (
	"fmt"
	"sort"

	"github.com/paulhankin/poker"

	"github.com/rubyatmidnight/miacatpoker/internal/deck"
	"github.com/rubyatmidnight/miacatpoker/internal/game"
)

// Result is one seat's showdown outcome.
type Result struct {
	PlayerID    string
	Position    int
	Score       int16
	Description string
	HoleCards   []string
}

// Rank evaluates every seat's best 7-card hand and returns results sorted
// strongest first. Ties keep seat order.
func Rank(layout game.DealLayout, seatOrder []string) ([]Result, error) {
	board, err := toPokerCards(layout.Board())
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}

	results := make([]Result, 0, len(seatOrder))
	for pos, id := range seatOrder {
		holeCodes := layout.HoleCards[id]
		hole, err := toPokerCards(holeCodes)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", id, err)
		}
		if len(hole) != game.HoleCardsPerSeat {
			return nil, fmt.Errorf("player %s has %d hole cards", id, len(hole))
		}

		var hand [7]poker.Card
		copy(hand[:5], board)
		hand[5], hand[6] = hole[0], hole[1]

		desc, err := poker.Describe(hand[:])
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", id, err)
		}
		results = append(results, Result{
			PlayerID:    id,
			Position:    pos + 1,
			Score:       poker.Eval7(&hand),
			Description: desc,
			HoleCards:   holeCodes,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// toPokerCards converts record codes into evaluator cards. The evaluator
// numbers aces 1 and suits clubs-first, unlike the record's canonical index.
func toPokerCards(codes []string) ([]poker.Card, error) {
	cards, err := deck.ParseAll(codes)
	if err != nil {
		return nil, err
	}
	out := make([]poker.Card, len(cards))
	for i, c := range cards {
		var suit poker.Suit
		switch c.Suit() {
		case deck.Clubs:
			suit = poker.Club
		case deck.Diamonds:
			suit = poker.Diamond
		case deck.Hearts:
			suit = poker.Heart
		case deck.Spades:
			suit = poker.Spade
		}
		rank := int(c.Rank())
		if c.Rank() == deck.Ace {
			rank = 1
		}
		pc, err := poker.MakeCard(suit, poker.Rank(rank))
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", c.Code(), err)
		}
		out[i] = pc
	}
	return out, nil
}
