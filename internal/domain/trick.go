package domain

import "errors"

// ErrEmptyTrick is returned when trick resolution is asked to pick a
// winner from zero played cards.
var ErrEmptyTrick = errors.New("cannot resolve an empty trick")

// PlayedCard is a card played into the current trick, tagged with the
// player who played it.
type PlayedCard struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// WinReason explains how the winning card won.
type WinReason string

const (
	ReasonOnlyCardPlayed            WinReason = "only_card_played"
	ReasonOnlyDominantColor         WinReason = "only_dominant_color"
	ReasonOnlyCardOfStrongestColor  WinReason = "only_card_of_strongest_color"
	ReasonHighestValueAmongDominant WinReason = "highest_value_among_dominant"
	ReasonHighestValueAmongColor    WinReason = "highest_value_among_color"
)

// TrickResult is the outcome of one resolved trick.
type TrickResult struct {
	Winner PlayedCard
	Reason WinReason
}

// ResolveTrick decides the winning card of one trick under the given
// dominant suit. Suit rank is primary: any card of the strongest suit
// present beats every card of a lower-ranked suit regardless of value.
// Value breaks ties only within that strongest suit. Cards never tie on
// both suit and value when dealt from one shared deck; should effect
// interactions ever produce such duplicates, the first of them played wins.
func ResolveTrick(played []PlayedCard, dominant Suit) (TrickResult, error) {
	if len(played) == 0 {
		return TrickResult{}, ErrEmptyTrick
	}
	if len(played) == 1 {
		return TrickResult{Winner: played[0], Reason: ReasonOnlyCardPlayed}, nil
	}

	h := NewHierarchy(dominant)

	strongest := 4
	for _, pc := range played {
		if r := h.Rank(pc.Card.Suit); r < strongest {
			strongest = r
		}
	}

	var candidates []PlayedCard
	for _, pc := range played {
		if h.Rank(pc.Card.Suit) == strongest {
			candidates = append(candidates, pc)
		}
	}

	winner := candidates[0]
	for _, pc := range candidates[1:] {
		if pc.Card.Value > winner.Card.Value {
			winner = pc
		}
	}

	var reason WinReason
	switch {
	case strongest == 0 && len(candidates) == 1:
		reason = ReasonOnlyDominantColor
	case strongest == 0:
		reason = ReasonHighestValueAmongDominant
	case len(candidates) == 1:
		reason = ReasonOnlyCardOfStrongestColor
	default:
		reason = ReasonHighestValueAmongColor
	}

	return TrickResult{Winner: winner, Reason: reason}, nil
}
