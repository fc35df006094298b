package bot

import (
	"fmt"

	"suitclash/internal/domain"
)

// BotLevel selects a strategy tier.
type BotLevel int

const (
	BotLevelCasual BotLevel = iota
	BotLevelSharp
)

// NewBrain creates a new AI brain based on the specified level.
// src may be nil to use a crypto-backed default.
func NewBrain(level BotLevel, src domain.Source) (Brain, error) {
	if src == nil {
		src = domain.CryptoSource()
	}
	switch level {
	case BotLevelCasual:
		return &CasualBot{src: src}, nil
	case BotLevelSharp:
		return &SharpBot{src: src, effects: domain.DefaultEffectTable()}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
