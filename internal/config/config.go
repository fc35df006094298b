package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"suitclash/internal/domain"
	"suitclash/internal/objectives"
)

// ObjectiveCounts configures how many objectives each player draws per
// difficulty tier at round start.
type ObjectiveCounts struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type GameConfig struct {
	TurnDurationSeconds int             `json:"turn_duration_seconds"`
	SimultaneousPlay    bool            `json:"simultaneous_play"`
	AllObjectivesBonus  int             `json:"all_objectives_bonus"`
	ObjectiveCounts     ObjectiveCounts `json:"objective_counts"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// EffectOverrides replaces individual entries of the built-in card
	// effect table, keyed by card id (e.g. "H2").
	EffectOverrides map[string]domain.Effect `json:"effect_overrides,omitempty"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the configuration used when no file is present.
func Default() GameConfig {
	return GameConfig{
		TurnDurationSeconds:     30,
		AllObjectivesBonus:      5,
		ObjectiveCounts:         ObjectiveCounts{Easy: 1, Medium: 1, Hard: 1},
		BotAutoFillDelaySeconds: 5,
	}
}

// LoadGameConfig loads the game configuration from the given path.
// Subsequent calls return the first result.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Default()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults
// when no file was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}

// EffectTable returns the card effect table with any configured
// overrides applied.
func (c GameConfig) EffectTable() map[string]domain.Effect {
	table := domain.DefaultEffectTable()
	for id, eff := range c.EffectOverrides {
		table[id] = eff
	}
	return table
}

// ObjectiveSelection converts the configured per-tier counts into a
// draw selection.
func (c GameConfig) ObjectiveSelection() objectives.Selection {
	return objectives.Selection{
		Easy:   c.ObjectiveCounts.Easy,
		Medium: c.ObjectiveCounts.Medium,
		Hard:   c.ObjectiveCounts.Hard,
	}
}
