package app

import (
	"suitclash/internal/domain"
	"suitclash/internal/objectives"
	"suitclash/internal/scoring"
)

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined       EventKind = "player_joined"
	EventPlayerLeft         EventKind = "player_left"
	EventRoundStarted       EventKind = "round_started"
	EventHandDealt          EventKind = "hand_dealt"
	EventObjectivesAssigned EventKind = "objectives_assigned"
	EventPlayerReady        EventKind = "player_ready"
	EventPlayStarted        EventKind = "play_started"
	EventCardPlayed         EventKind = "card_played"
	EventEffectActivated    EventKind = "effect_activated"
	EventCardDrawn          EventKind = "card_drawn"
	EventHandPeeked         EventKind = "hand_peeked"
	EventTrickResolved      EventKind = "trick_resolved"
	EventTurnTimedOut       EventKind = "turn_timed_out"
	EventRoundEnded         EventKind = "round_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
	Owner  bool   `json:"owner"`
}

type PlayerLeftPayload struct {
	UserID string `json:"user_id"`
}

type RoundStartedPayload struct {
	RoundID   string           `json:"round_id"`
	Dominant  domain.Suit      `json:"dominant"`
	Hierarchy domain.Hierarchy `json:"hierarchy"`
	Seats     []string         `json:"seats"`
}

// HandDealtPayload is private to its player: reserve contents stay
// hidden, only the count is shared.
type HandDealtPayload struct {
	UserID       string        `json:"user_id"`
	Hand         []domain.Card `json:"hand"`
	ReserveCount int           `json:"reserve_count"`
}

type ObjectivesAssignedPayload struct {
	UserID     string                  `json:"user_id"`
	Objectives []objectives.Definition `json:"objectives"`
}

type PlayerReadyPayload struct {
	UserID   string `json:"user_id"`
	Replaced int    `json:"replaced"`
}

type PlayStartedPayload struct {
	FirstTurnUserID string `json:"first_turn_user_id"`
}

type CardPlayedPayload struct {
	UserID         string      `json:"user_id"`
	Card           domain.Card `json:"card"`
	NextTurnUserID string      `json:"next_turn_user_id"`
}

type EffectActivatedPayload struct {
	UserID    string            `json:"user_id"`
	CardID    string            `json:"card_id"`
	Kind      domain.EffectKind `json:"kind"`
	TargetIDs []string          `json:"target_ids"`
}

type CardDrawnPayload struct {
	UserID       string      `json:"user_id"`
	Card         domain.Card `json:"card"`
	ReserveCount int         `json:"reserve_count"`
}

type HandPeekedPayload struct {
	UserID       string        `json:"user_id"`
	TargetUserID string        `json:"target_user_id"`
	Cards        []domain.Card `json:"cards"`
}

type TrickResolvedPayload struct {
	Number       int                 `json:"number"`
	Plays        []domain.PlayedCard `json:"plays"`
	WinnerUserID string              `json:"winner_user_id"`
	WinningCard  domain.Card         `json:"winning_card"`
	Reason       domain.WinReason    `json:"reason"`
}

type TurnTimedOutPayload struct {
	UserID string `json:"user_id"`
	CardID string `json:"card_id"`
}

// PlayerRoundResult pairs one player's objective verification with the
// score computed from it.
type PlayerRoundResult struct {
	UserID       string                        `json:"user_id"`
	Verification objectives.PlayerVerification `json:"verification"`
	Score        scoring.PlayerScore           `json:"score"`
}

type RoundEndedPayload struct {
	Results []PlayerRoundResult `json:"results"`
}
