// Package deck defines the fixed card identity space the dealing protocol
// permutes: indices 0..51 mapped to suits and ranks in a frozen canonical
// order, with the short codes used in persisted game records.
package deck

import "fmt"

// Suit represents a card suit. The iota order is part of the canonical
// index mapping and must never change.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the full suit name used in display strings.
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "?"
	}
}

// code is the single-letter suit code used in record files.
func (s Suit) code() byte {
	return "shdc"[int(s)]
}

// Rank represents a card rank, aces high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankCodes = "23456789TJQKA"

// String returns the single-character rank code.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankCodes[int(r-Two)])
}

// Name returns the full rank name used in display strings.
func (r Rank) Name() string {
	switch r {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		if r < Two || r > Ten {
			return "?"
		}
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is a canonical card index in [0, 52): suit*13 + (rank-2), suits in
// Spades, Hearts, Diamonds, Clubs order. Deck permutations in game records
// are permutations of these indices.
type Card int

// FromSuitRank builds the card index for a suit and rank.
func FromSuitRank(suit Suit, rank Rank) Card {
	return Card(int(suit)*13 + int(rank-Two))
}

// Valid reports whether the index is inside the deck.
func (c Card) Valid() bool {
	return c >= 0 && c < 52
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(int(c) / 13)
}

// Rank returns the card's rank.
func (c Card) Rank() Rank {
	return Rank(int(c)%13) + Two
}

// Code returns the two-character record code, e.g. "As" or "Td".
func (c Card) Code() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + string(c.Suit().code())
}

// String returns the compact display form, e.g. "A♠".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// Display returns the long form the table prints, e.g. "Ace of Spades ♠".
func (c Card) Display() string {
	if !c.Valid() {
		return "invalid card"
	}
	return fmt.Sprintf("%s of %s %s", c.Rank().Name(), c.Suit().Name(), c.Suit())
}

// Parse decodes a two-character record code back into a card.
func Parse(code string) (Card, error) {
	if len(code) != 2 {
		return 0, fmt.Errorf("invalid card code %q", code)
	}
	rank := -1
	for i := 0; i < len(rankCodes); i++ {
		if rankCodes[i] == code[0] {
			rank = i
			break
		}
	}
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank in card code %q", code)
	}
	var suit Suit
	switch code[1] {
	case 's':
		suit = Spades
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	default:
		return 0, fmt.Errorf("invalid suit in card code %q", code)
	}
	return FromSuitRank(suit, Rank(rank)+Two), nil
}

// Codes maps a permutation of card indices to record codes.
func Codes(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = Card(idx).Code()
	}
	return out
}

// ParseAll decodes a slice of record codes.
func ParseAll(codes []string) ([]Card, error) {
	out := make([]Card, len(codes))
	for i, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
