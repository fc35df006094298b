package domain

// Hierarchy is the strict suit ranking in force for one round. It is
// computed once from the spun dominant suit and never changes mid-round.
type Hierarchy struct {
	Dominant Suit `json:"dominant"`
	Weak     Suit `json:"weak"`
	// Neutrals holds the two remaining suits. Index 0 is the neutral
	// sharing the dominant's color family, which outranks the other.
	Neutrals [2]Suit `json:"neutrals"`
}

var weakOpposites = map[Suit]Suit{
	SuitHearts:   SuitSpades,
	SuitSpades:   SuitHearts,
	SuitDiamonds: SuitClubs,
	SuitClubs:    SuitDiamonds,
}

// WeakOf returns the fixed opposite of a suit: Hearts<->Spades,
// Diamonds<->Clubs. The mapping is an involution.
func WeakOf(s Suit) Suit {
	return weakOpposites[s]
}

// Spin uniformly selects the dominant suit for a round.
func Spin(src Source) Suit {
	return Suits[src.Intn(len(Suits))]
}

// NewHierarchy derives the full four-suit ranking from the dominant suit.
func NewHierarchy(dominant Suit) Hierarchy {
	h := Hierarchy{Dominant: dominant, Weak: WeakOf(dominant)}
	for _, s := range Suits {
		if s == h.Dominant || s == h.Weak {
			continue
		}
		if s.Color() == dominant.Color() {
			h.Neutrals[0] = s
		} else {
			h.Neutrals[1] = s
		}
	}
	return h
}

// Rank returns the strength tier of a suit under this hierarchy:
// 0 dominant, 1 aligned neutral, 2 opposite neutral, 3 weak.
// Lower is stronger.
func (h Hierarchy) Rank(s Suit) int {
	switch s {
	case h.Dominant:
		return 0
	case h.Neutrals[0]:
		return 1
	case h.Neutrals[1]:
		return 2
	default:
		return 3
	}
}
