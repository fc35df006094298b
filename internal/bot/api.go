package bot

import (
	"suitclash/internal/domain"
)

// Move represents the play decision made by the AI.
type Move struct {
	CardID    string
	Activate  bool
	TargetIDs []string
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// DecideMulligan returns the card ids to exchange during the
	// selection phase. An empty result keeps the auto-drawn hand.
	DecideMulligan(game *domain.Game, player *domain.Player) []string
	// DecidePlay picks the card to put into the current trick.
	DecidePlay(game *domain.Game, player *domain.Player) (Move, error)
}
