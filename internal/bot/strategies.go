package bot

import (
	"errors"

	"suitclash/internal/domain"
)

// ErrNoPlayableCard is returned when a brain is asked to play from an
// empty hand.
var ErrNoPlayableCard = errors.New("no playable card")

// CasualBot plays a uniformly random hand card and never activates
// effects. It keeps whatever hand it was dealt.
type CasualBot struct {
	src domain.Source
}

func (b *CasualBot) DecideMulligan(game *domain.Game, player *domain.Player) []string {
	return nil
}

func (b *CasualBot) DecidePlay(game *domain.Game, player *domain.Player) (Move, error) {
	if len(player.Hand) == 0 {
		return Move{}, ErrNoPlayableCard
	}
	card := player.Hand[b.src.Intn(len(player.Hand))]
	return Move{CardID: card.ID()}, nil
}

// SharpBot mulligans away low weak-suit cards, follows tricks with the
// cheapest winning card, and activates safe effects.
type SharpBot struct {
	src     domain.Source
	effects map[string]domain.Effect
}

// DecideMulligan exchanges weak-suit cards below a ten.
func (b *SharpBot) DecideMulligan(game *domain.Game, player *domain.Player) []string {
	var out []string
	for _, c := range player.Hand {
		if game.Hierarchy.Rank(c.Suit) == 3 && c.Value < domain.ValueTen {
			out = append(out, c.ID())
		}
	}
	return out
}

func (b *SharpBot) DecidePlay(game *domain.Game, player *domain.Player) (Move, error) {
	if len(player.Hand) == 0 {
		return Move{}, ErrNoPlayableCard
	}

	card := b.pickCard(game, player)
	move := Move{CardID: card.ID()}

	if eff, ok := b.effects[card.ID()]; ok {
		switch {
		case eff.Kind == domain.EffectDraw && len(player.Reserve) > 0:
			move.Activate = true
		case eff.Kind == domain.EffectShield:
			move.Activate = true
			move.TargetIDs = []string{player.UserID}
		}
	}
	return move, nil
}

func (b *SharpBot) pickCard(game *domain.Game, player *domain.Player) domain.Card {
	h := game.Hierarchy

	if len(game.Trick) == 0 {
		// Leading: dump the weakest card.
		weakest := player.Hand[0]
		for _, c := range player.Hand[1:] {
			if strength(h, c) < strength(h, weakest) {
				weakest = c
			}
		}
		return weakest
	}

	best := game.Trick[0].Card
	for _, pc := range game.Trick[1:] {
		if strength(h, pc.Card) > strength(h, best) {
			best = pc.Card
		}
	}

	// Following: cheapest card that still takes the trick, otherwise
	// the cheapest card overall.
	var winner *domain.Card
	weakest := player.Hand[0]
	for i := range player.Hand {
		c := player.Hand[i]
		if strength(h, c) < strength(h, weakest) {
			weakest = c
		}
		if strength(h, c) > strength(h, best) {
			if winner == nil || strength(h, c) < strength(h, *winner) {
				winner = &player.Hand[i]
			}
		}
	}
	if winner != nil {
		return *winner
	}
	return weakest
}

// strength totally orders cards under a hierarchy: suit tier first,
// value second.
func strength(h domain.Hierarchy, c domain.Card) int {
	return (3-h.Rank(c.Suit))*13 + int(c.Value)
}
