package objectives

import "suitclash/internal/domain"

// Progress reports partial completion toward a countable objective.
type Progress struct {
	Current    int `json:"current"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// checkFunc decides completion for one objective kind against a player's
// round snapshot. Kinds phrased as upper bounds or absences gate on
// RoundFinished: a bounded or negative claim is unfalsifiable while cards
// remain, so it can only be confirmed once the round is fully played.
type checkFunc func(Definition, domain.PlayerRoundState) bool

var checks = map[Kind]checkFunc{
	KindWinExactTricks: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && s.TricksWon == d.Target
	},
	KindWinAtLeastTricks: func(d Definition, s domain.PlayerRoundState) bool {
		return s.TricksWon >= d.Target
	},
	KindWinAtMostTricks: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && s.TricksWon <= d.Target
	},
	KindLoseAllTricks: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && s.TricksWon == 0
	},
	KindWinFirstAndLastTrick: func(d Definition, s domain.PlayerRoundState) bool {
		return s.FirstTrickWon && s.LastTrickWon
	},
	KindWinConsecutiveTricks: func(d Definition, s domain.PlayerRoundState) bool {
		return s.ConsecutiveTricksWon >= d.Target
	},
	KindNoRedCards: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && countColor(s.CardsWon, domain.ColorRed) == 0
	},
	KindNoBlackCards: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && countColor(s.CardsWon, domain.ColorBlack) == 0
	},
	KindDominantSuitCards: func(d Definition, s domain.PlayerRoundState) bool {
		return countSuit(s.CardsWon, s.DominantSuit) >= d.Target
	},
	KindAllSuits: func(d Definition, s domain.PlayerRoundState) bool {
		return distinctSuits(s.CardsWon) == len(domain.Suits)
	},
	KindAllAces: func(d Definition, s domain.PlayerRoundState) bool {
		return countValue(s.CardsWon, domain.ValueAce) == 4
	},
	KindNoFaceCards: func(d Definition, s domain.PlayerRoundState) bool {
		if !s.RoundFinished() {
			return false
		}
		for _, c := range s.CardsWon {
			if c.Value.IsFace() {
				return false
			}
		}
		return true
	},
	KindOnlyEvenCards: func(d Definition, s domain.PlayerRoundState) bool {
		if !s.RoundFinished() {
			return false
		}
		for _, c := range s.CardsWon {
			if int(c.Value)%2 != 0 {
				return false
			}
		}
		return true
	},
	KindTotalValueBelow: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && totalValue(s.CardsWon) < d.Target
	},
	KindTotalValueAbove: func(d Definition, s domain.PlayerRoundState) bool {
		return totalValue(s.CardsWon) > d.Target
	},
	KindActivateAllEffects: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && s.EffectsActivated == len(s.CardsPlayed)
	},
	KindNeverActivateEffects: func(d Definition, s domain.PlayerRoundState) bool {
		return s.RoundFinished() && s.EffectsActivated == 0
	},
}

// CheckCompletion reports whether the objective is completed given the
// player's current round snapshot.
func CheckCompletion(def Definition, state domain.PlayerRoundState) bool {
	check, ok := checks[def.Kind]
	if !ok {
		return false
	}
	return check(def, state)
}

// GetProgress reports partial progress for countable objectives. The
// second return is false for kinds where mid-round progress is not
// meaningful (absences and upper bounds).
func GetProgress(def Definition, state domain.PlayerRoundState) (Progress, bool) {
	switch def.Kind {
	case KindWinExactTricks, KindWinAtLeastTricks:
		return makeProgress(state.TricksWon, def.Target), true
	case KindWinConsecutiveTricks:
		return makeProgress(state.ConsecutiveTricksWon, def.Target), true
	case KindDominantSuitCards:
		return makeProgress(countSuit(state.CardsWon, state.DominantSuit), def.Target), true
	case KindAllSuits:
		return makeProgress(distinctSuits(state.CardsWon), len(domain.Suits)), true
	case KindAllAces:
		return makeProgress(countValue(state.CardsWon, domain.ValueAce), 4), true
	case KindTotalValueAbove:
		return makeProgress(totalValue(state.CardsWon), def.Target), true
	default:
		return Progress{}, false
	}
}

func makeProgress(current, target int) Progress {
	p := Progress{Current: current, Target: target}
	if target <= 0 {
		p.Percentage = 100
		return p
	}
	pct := current * 100 / target
	if pct > 100 {
		pct = 100
	}
	p.Percentage = pct
	return p
}

func countColor(cards []domain.Card, color domain.Color) int {
	n := 0
	for _, c := range cards {
		if c.Suit.Color() == color {
			n++
		}
	}
	return n
}

func countSuit(cards []domain.Card, suit domain.Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit == suit {
			n++
		}
	}
	return n
}

func countValue(cards []domain.Card, v domain.Value) int {
	n := 0
	for _, c := range cards {
		if c.Value == v {
			n++
		}
	}
	return n
}

func distinctSuits(cards []domain.Card) int {
	seen := map[domain.Suit]bool{}
	for _, c := range cards {
		seen[c.Suit] = true
	}
	return len(seen)
}

func totalValue(cards []domain.Card) int {
	sum := 0
	for _, c := range cards {
		sum += int(c.Value)
	}
	return sum
}
