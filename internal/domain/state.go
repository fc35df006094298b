package domain

// PlayerRoundState is the immutable per-player snapshot that objective
// verification consumes. It is rebuilt from round history on every
// verification pass; the engine never mutates or retains one.
type PlayerRoundState struct {
	TricksWon            int
	CardsWon             []Card
	CardsPlayed          []Card
	EffectsActivated     int
	RemainingCards       int
	FirstTrickWon        bool
	LastTrickWon         bool
	ConsecutiveTricksWon int
	DominantSuit         Suit
}

// RoundFinished reports whether the player has no cards left to play.
// Objectives phrased as upper bounds or absences can only be confirmed
// once this is true.
func (s PlayerRoundState) RoundFinished() bool {
	return s.RemainingCards == 0
}
