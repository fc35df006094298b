package domain

// EffectKind identifies the gameplay effect attached to a card.
type EffectKind string

const (
	EffectDraw   EffectKind = "draw"
	EffectPeek   EffectKind = "peek"
	EffectShield EffectKind = "shield"
	EffectSteal  EffectKind = "steal"
	EffectSwap   EffectKind = "swap"
	EffectStorm  EffectKind = "storm"
)

// Targeting describes which targets an effect requires when activated.
type Targeting string

const (
	// TargetNone takes no targets.
	TargetNone Targeting = "none"
	// TargetSelf targets only the acting player.
	TargetSelf Targeting = "self"
	// TargetOpponent targets exactly one other player.
	TargetOpponent Targeting = "opponent"
	// TargetAny targets exactly one player, including the actor.
	TargetAny Targeting = "any"
	// TargetAll applies to every player and takes no explicit targets.
	TargetAll Targeting = "all"
)

// Effect is the gameplay effect of a single card.
type Effect struct {
	Kind      EffectKind `json:"kind"`
	Targeting Targeting  `json:"targeting"`
}

// DefaultEffectTable returns the built-in per-card effect assignment,
// keyed by card ID. The table is data, not rules: callers may replace
// individual entries from configuration before handing effects to the
// validator.
func DefaultEffectTable() map[string]Effect {
	table := make(map[string]Effect, DeckSize)
	for _, s := range Suits {
		for _, v := range Values {
			table[Card{Suit: s, Value: v}.ID()] = defaultEffect(v)
		}
	}
	return table
}

func defaultEffect(v Value) Effect {
	switch {
	case v <= ValueFive:
		return Effect{Kind: EffectDraw, Targeting: TargetNone}
	case v <= ValueNine:
		return Effect{Kind: EffectPeek, Targeting: TargetOpponent}
	case v == ValueTen || v == ValueKing:
		return Effect{Kind: EffectShield, Targeting: TargetSelf}
	case v == ValueJack:
		return Effect{Kind: EffectSteal, Targeting: TargetOpponent}
	case v == ValueQueen:
		return Effect{Kind: EffectSwap, Targeting: TargetAny}
	default: // aces
		return Effect{Kind: EffectStorm, Targeting: TargetAll}
	}
}
