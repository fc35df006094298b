package nakama

// Wire payloads are JSON. Client requests carry card ids, never card
// structs, so ownership is always re-checked server-side.

type SelectHandRequest struct {
	CardIDs []string `json:"card_ids"`
}

type MulliganRequest struct {
	ReplaceIDs []string `json:"replace_ids"`
}

type PlayCardRequest struct {
	CardID    string   `json:"card_id"`
	Activate  bool     `json:"activate"`
	TargetIDs []string `json:"target_ids,omitempty"`
}

// MatchLabel is indexed by Nakama for match listing queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Phase string `json:"phase"`
	Game  string `json:"game"`
}

// PlayerState is the public per-seat view in a match snapshot.
type PlayerState struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	CardsRemaining int    `json:"cards_remaining"`
	DisplayName    string `json:"display_name"`
	Balance        int64  `json:"balance"`
}

// MatchStateSnapshot is broadcast whenever seating changes.
type MatchStateSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []PlayerState `json:"players"`
}

// GameError is sent privately to the player whose action was rejected.
// Code carries the stable validation code when one applies.
type GameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
