package domain

import "errors"

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// CardsPerPlayer is the size of the personal deck dealt to each player
// at round start.
const CardsPerPlayer = 13

var (
	ErrInvalidPlayerCount = errors.New("player count must be between 2 and 4")
	ErrDeckTooSmall       = errors.New("deck too small to distribute")
)

// NewStandardDeck returns an ordered 52-card deck, one card per
// (suit, value) combination.
func NewStandardDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, v := range Values {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of the deck using a Fisher-Yates
// permutation driven by src. The input is not modified.
func Shuffle(src Source, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Distribute deals hands of cardsPerPlayer cards to playerCount players by
// sequential slicing in shuffle order, returning the hands and the
// undealt remainder.
func Distribute(deck []Card, playerCount, cardsPerPlayer int) (hands [][]Card, remainder []Card, err error) {
	if playerCount < 2 || playerCount > 4 {
		return nil, nil, ErrInvalidPlayerCount
	}
	if len(deck) < playerCount*cardsPerPlayer {
		return nil, nil, ErrDeckTooSmall
	}

	hands = make([][]Card, playerCount)
	for i := 0; i < playerCount; i++ {
		start := i * cardsPerPlayer
		hands[i] = append([]Card{}, deck[start:start+cardsPerPlayer]...)
	}
	remainder = append([]Card{}, deck[playerCount*cardsPerPlayer:]...)
	return hands, remainder, nil
}
