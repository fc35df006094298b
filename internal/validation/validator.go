// Package validation holds the server-side predicates every
// state-changing player action must pass before it is applied. Each
// predicate is pure over the snapshot it is given and returns a coded
// result; predicates compose through Chain, which short-circuits on the
// first failure.
package validation

import (
	"fmt"
	"time"

	"suitclash/internal/domain"
)

// Stable machine-readable failure codes. Codes are the only part of a
// result that may reach clients; reasons are internal diagnostics.
const (
	CodeInvalidSelectionCount = "INVALID_SELECTION_COUNT"
	CodeDuplicateCards        = "DUPLICATE_CARDS"
	CodeCardNotOwned          = "CARD_NOT_OWNED"
	CodeCardNotInHand         = "CARD_NOT_IN_HAND"
	CodeCardAlreadyPlayed     = "CARD_ALREADY_PLAYED"
	CodeNotPlayerTurn         = "NOT_PLAYER_TURN"
	CodeAlreadyPlayedThisTurn = "ALREADY_PLAYED_THIS_TURN"
	CodeTurnTimeout           = "TURN_TIMEOUT"
	CodeUnnecessaryTargets    = "UNNECESSARY_TARGETS"
	CodeMissingTarget         = "MISSING_TARGET"
	CodeInvalidTarget         = "INVALID_TARGET"
	CodeInvalidSelfTarget     = "INVALID_SELF_TARGET"
	CodeInvalidOpponentTarget = "INVALID_OPPONENT_TARGET"
	CodeDeckEmpty             = "DECK_EMPTY"
)

// Result is the outcome of one validation predicate or chain.
type Result struct {
	Valid  bool   `json:"valid"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// OK returns a passing result.
func OK() Result {
	return Result{Valid: true}
}

// Fail returns a failing result with a stable code and a diagnostic
// reason. The reason must never be forwarded verbatim to clients.
func Fail(code, format string, args ...any) Result {
	return Result{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Check is a deferred predicate evaluated by Chain.
type Check func() Result

// Chain runs checks in order and returns the first failure, or OK.
func Chain(checks ...Check) Result {
	for _, check := range checks {
		if res := check(); !res.Valid {
			return res
		}
	}
	return OK()
}

// StartingSelection validates a player's chosen 5-card starting hand:
// exactly 5 ids, no duplicates, all drawn from the dealt set.
func StartingSelection(selectedIDs []string, dealt []domain.Card) Result {
	if len(selectedIDs) != domain.HandSize {
		return Fail(CodeInvalidSelectionCount, "selected %d cards, need exactly %d", len(selectedIDs), domain.HandSize)
	}
	seen := map[string]bool{}
	for _, id := range selectedIDs {
		if seen[id] {
			return Fail(CodeDuplicateCards, "card %s selected more than once", id)
		}
		seen[id] = true
		if !domain.ContainsCard(dealt, id) {
			return Fail(CodeCardNotOwned, "card %s is not part of the dealt set", id)
		}
	}
	return OK()
}

// CardInHand validates that the player currently holds the card.
func CardInHand(cardID string, hand []domain.Card) Result {
	if !domain.ContainsCard(hand, cardID) {
		return Fail(CodeCardNotInHand, "card %s not in hand of size %d", cardID, len(hand))
	}
	return OK()
}

// NotAlreadyPlayed validates that the card was not played earlier this
// round.
func NotAlreadyPlayed(cardID string, played []domain.Card) Result {
	if domain.ContainsCard(played, cardID) {
		return Fail(CodeCardAlreadyPlayed, "card %s was already played this round", cardID)
	}
	return OK()
}

// TurnOrder validates that it is the actor's turn, unless simultaneous
// play is active for the current trick.
func TurnOrder(actorID, currentTurnID string, simultaneous bool) Result {
	if simultaneous || actorID == currentTurnID {
		return OK()
	}
	return Fail(CodeNotPlayerTurn, "actor %s acted on %s's turn", actorID, currentTurnID)
}

// NotActedThisTurn validates that the actor has not already acted in the
// current trick. Only meaningful in simultaneous play, where turn order
// does not gate repeat actions.
func NotActedThisTurn(actorID string, acted map[string]bool) Result {
	if acted[actorID] {
		return Fail(CodeAlreadyPlayedThisTurn, "actor %s already played this turn", actorID)
	}
	return OK()
}

// TurnTimeout validates that the action arrived within the turn time
// limit. A non-positive limit disables the check.
func TurnTimeout(now, turnStartedAt time.Time, limit time.Duration) Result {
	if limit <= 0 {
		return OK()
	}
	if elapsed := now.Sub(turnStartedAt); elapsed > limit {
		return Fail(CodeTurnTimeout, "turn expired %s ago", elapsed-limit)
	}
	return OK()
}

// EffectTargets validates the targets supplied for a card effect against
// the effect's targeting mode and the set of valid player ids.
func EffectTargets(eff domain.Effect, actorID string, targetIDs, validIDs []string) Result {
	switch eff.Targeting {
	case domain.TargetNone, domain.TargetAll:
		if len(targetIDs) > 0 {
			return Fail(CodeUnnecessaryTargets, "effect %s takes no targets, got %d", eff.Kind, len(targetIDs))
		}
		return OK()
	}

	if len(targetIDs) == 0 {
		return Fail(CodeMissingTarget, "effect %s requires a target", eff.Kind)
	}
	if len(targetIDs) > 1 {
		return Fail(CodeUnnecessaryTargets, "effect %s takes one target, got %d", eff.Kind, len(targetIDs))
	}

	target := targetIDs[0]
	if !containsID(validIDs, target) {
		return Fail(CodeInvalidTarget, "target %s is not a player in this round", target)
	}

	switch eff.Targeting {
	case domain.TargetSelf:
		if target != actorID {
			return Fail(CodeInvalidSelfTarget, "effect %s may only target the actor, got %s", eff.Kind, target)
		}
	case domain.TargetOpponent:
		if target == actorID {
			return Fail(CodeInvalidOpponentTarget, "effect %s cannot target the actor", eff.Kind)
		}
	}
	return OK()
}

// DeckNotEmpty validates that a draw can be served.
func DeckNotEmpty(deckSize int) Result {
	if deckSize <= 0 {
		return Fail(CodeDeckEmpty, "personal deck is empty")
	}
	return OK()
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
