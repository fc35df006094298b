package domain

import "strconv"

// Suit identifies one of the four card suits.
type Suit string

const (
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitSpades   Suit = "S"
)

// Suits lists all four suits in a stable order.
var Suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Color is the red/black family of a suit.
type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// Color returns the red/black family of the suit.
func (s Suit) Color() Color {
	if s == SuitHearts || s == SuitDiamonds {
		return ColorRed
	}
	return ColorBlack
}

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "Hearts"
	case SuitDiamonds:
		return "Diamonds"
	case SuitClubs:
		return "Clubs"
	case SuitSpades:
		return "Spades"
	}
	return string(s)
}

// Value is the rank of a card. The numeric value doubles as the
// total order used for same-suit comparison: 2..10 for number cards,
// 11=J, 12=Q, 13=K, 14=A.
type Value int

const (
	ValueTwo   Value = 2
	ValueThree Value = 3
	ValueFour  Value = 4
	ValueFive  Value = 5
	ValueSix   Value = 6
	ValueSeven Value = 7
	ValueEight Value = 8
	ValueNine  Value = 9
	ValueTen   Value = 10
	ValueJack  Value = 11
	ValueQueen Value = 12
	ValueKing  Value = 13
	ValueAce   Value = 14
)

// Values lists the thirteen card values in ascending order.
var Values = [13]Value{
	ValueTwo, ValueThree, ValueFour, ValueFive, ValueSix, ValueSeven,
	ValueEight, ValueNine, ValueTen, ValueJack, ValueQueen, ValueKing, ValueAce,
}

func (v Value) String() string {
	switch v {
	case ValueJack:
		return "J"
	case ValueQueen:
		return "Q"
	case ValueKing:
		return "K"
	case ValueAce:
		return "A"
	}
	return strconv.Itoa(int(v))
}

// IsFace reports whether the value is a face card (J, Q or K).
// Aces are not face cards.
func (v Value) IsFace() bool {
	return v == ValueJack || v == ValueQueen || v == ValueKing
}

// Card is a single playing card. Cards are value objects; two cards with
// the same suit and value are the same card.
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

// ID returns the stable identifier clients use to reference a card,
// e.g. "H2" or "S14".
func (c Card) ID() string {
	return string(c.Suit) + strconv.Itoa(int(c.Value))
}

func (c Card) String() string {
	return c.Value.String() + " of " + c.Suit.String()
}

// FindCard returns the index of the card with the given id, or -1.
func FindCard(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

// ContainsCard reports whether the slice holds a card with the given id.
func ContainsCard(cards []Card, id string) bool {
	return FindCard(cards, id) >= 0
}

// RemoveCard removes the first card with the given id and returns the
// updated slice plus the removed card. ok is false when no card matched.
func RemoveCard(cards []Card, id string) (out []Card, removed Card, ok bool) {
	i := FindCard(cards, id)
	if i < 0 {
		return cards, Card{}, false
	}
	removed = cards[i]
	out = append(append([]Card{}, cards[:i]...), cards[i+1:]...)
	return out, removed, true
}
