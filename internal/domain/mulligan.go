package domain

import "errors"

const (
	// HandSize is the number of cards a player holds after the initial draw.
	HandSize = 5
	// ReserveSize is the number of cards left in the personal deck after
	// the initial draw.
	ReserveSize = 8
)

var (
	ErrInvalidDeckSize     = errors.New("initial draw requires exactly 13 cards")
	ErrInvalidHandSize     = errors.New("mulligan requires a hand of exactly 5 cards")
	ErrTooManyReplacements = errors.New("cannot replace more than 5 cards")
	ErrCardNotInHand       = errors.New("card not in hand")
)

// InitialHand is the 5/8 split of a player's personal deck at round start.
type InitialHand struct {
	Hand    []Card
	Reserve []Card
}

// DrawInitialHand shuffles a 13-card personal deck and splits it into a
// 5-card hand and an 8-card reserve.
func DrawInitialHand(src Source, cards []Card) (InitialHand, error) {
	if len(cards) != CardsPerPlayer {
		return InitialHand{}, ErrInvalidDeckSize
	}
	shuffled := Shuffle(src, cards)
	return InitialHand{
		Hand:    append([]Card{}, shuffled[:HandSize]...),
		Reserve: append([]Card{}, shuffled[HandSize:]...),
	}, nil
}

// MulliganResult is the outcome of a mulligan: the rebuilt hand, the
// reshuffled reserve and how many cards were exchanged.
type MulliganResult struct {
	Hand     []Card
	Reserve  []Card
	Replaced int
}

// PerformMulligan exchanges the selected hand cards against the reserve.
// Replacements are drawn from the reserve before the discards are merged
// back in and the pile reshuffled, so a discarded card can never come
// straight back into the new hand and the reserve size is preserved. An
// empty replaceIDs is a legal no-op (the player keeps their hand).
func PerformMulligan(src Source, hand, reserve []Card, replaceIDs []string) (MulliganResult, error) {
	if len(hand) != HandSize {
		return MulliganResult{}, ErrInvalidHandSize
	}
	if len(replaceIDs) > HandSize {
		return MulliganResult{}, ErrTooManyReplacements
	}

	kept := append([]Card{}, hand...)
	discarded := make([]Card, 0, len(replaceIDs))
	for _, id := range replaceIDs {
		var (
			c  Card
			ok bool
		)
		kept, c, ok = RemoveCard(kept, id)
		if !ok {
			return MulliganResult{}, ErrCardNotInHand
		}
		discarded = append(discarded, c)
	}

	if len(discarded) == 0 {
		return MulliganResult{
			Hand:    kept,
			Reserve: append([]Card{}, reserve...),
		}, nil
	}

	n := len(discarded)
	shuffled := Shuffle(src, reserve)
	newHand := append(kept, shuffled[:n]...)

	merged := append(append([]Card{}, shuffled[n:]...), discarded...)
	return MulliganResult{
		Hand:     newHand,
		Reserve:  Shuffle(src, merged),
		Replaced: n,
	}, nil
}
