package domain

import "time"

// Phase is the lifecycle stage of a round.
type Phase string

const (
	PhaseLobby     Phase = "lobby"
	PhaseSelecting Phase = "selecting"
	PhasePlaying   Phase = "playing"
	PhaseEnded     Phase = "ended"
)

// Player is one seat's full state for the current round.
type Player struct {
	UserID string
	Seat   int // 1-based

	// Dealt is the full 13-card allotment for the round; Hand and
	// Reserve partition whatever of it the player still holds.
	Dealt   []Card
	Hand    []Card
	Reserve []Card
	Played  []Card
	Won     []Card

	// Locked marks the starting hand as confirmed.
	Locked bool

	TricksWon        int
	EffectsActivated int
	FirstTrickWon    bool
	LastTrickWon     bool
	Streak           int
	BestStreak       int
	Shielded         bool

	// Score is the running match total across rounds.
	Score int
}

// Remaining returns how many cards the player can still bring into play.
func (p *Player) Remaining() int {
	return len(p.Hand) + len(p.Reserve)
}

// Game is the authoritative state of one round.
type Game struct {
	Phase     Phase
	Hierarchy Hierarchy
	Players   map[string]*Player
	Seats     []string // user ids in seat order

	CurrentTurn   string
	TurnStartedAt time.Time
	Simultaneous  bool

	Trick       []PlayedCard
	TrickNumber int // 1-based
	Acted       map[string]bool
}

// PlayerIDs returns every seated user id in seat order.
func (g *Game) PlayerIDs() []string {
	return append([]string{}, g.Seats...)
}

// CanAct reports whether the player could still put a card into the
// current trick.
func (g *Game) CanAct(userID string) bool {
	pl, ok := g.Players[userID]
	return ok && !g.Acted[userID] && len(pl.Hand) > 0
}

// TrickComplete reports whether no seated player can still act on the
// current trick.
func (g *Game) TrickComplete() bool {
	for _, id := range g.Seats {
		if g.CanAct(id) {
			return false
		}
	}
	return true
}

// NextTurn returns the first seat after the given player that still
// holds hand cards, or "" when nobody can act.
func (g *Game) NextTurn(after string) string {
	start := 0
	for i, id := range g.Seats {
		if id == after {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(g.Seats); i++ {
		id := g.Seats[(start+i)%len(g.Seats)]
		if len(g.Players[id].Hand) > 0 {
			return id
		}
	}
	return ""
}

// RoundOver reports whether every player has exhausted hand and reserve.
func (g *Game) RoundOver() bool {
	for _, pl := range g.Players {
		if pl.Remaining() > 0 {
			return false
		}
	}
	return true
}

// Snapshot builds the verification view of one player's round.
func (g *Game) Snapshot(userID string) (PlayerRoundState, bool) {
	pl, ok := g.Players[userID]
	if !ok {
		return PlayerRoundState{}, false
	}
	return PlayerRoundState{
		TricksWon:            pl.TricksWon,
		CardsWon:             append([]Card{}, pl.Won...),
		CardsPlayed:          append([]Card{}, pl.Played...),
		EffectsActivated:     pl.EffectsActivated,
		RemainingCards:       pl.Remaining(),
		FirstTrickWon:        pl.FirstTrickWon,
		LastTrickWon:         pl.LastTrickWon,
		ConsecutiveTricksWon: pl.BestStreak,
		DominantSuit:         g.Hierarchy.Dominant,
	}, true
}
