package bot

import (
	"suitclash/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent for a provisioned bot id, picking the
// strategy tier from the bot's identity. Unknown ids get a casual brain.
func NewAgent(userID string) (*Agent, error) {
	level := BotLevelCasual
	name := GetBotDisplayName(userID)
	if identity, ok := GetBotConfig(userID); ok && identity.Difficulty == "sharp" {
		level = BotLevelSharp
	}

	brain, err := NewBrain(level, nil)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}

// Mulligan asks the agent which cards to exchange during selection.
func (a *Agent) Mulligan(game *domain.Game) []string {
	player, ok := game.Players[a.ID]
	if !ok {
		return nil
	}
	return a.Strategy.DecideMulligan(game, player)
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return Move{}, ErrNoPlayableCard
	}
	return a.Strategy.DecidePlay(game, player)
}
