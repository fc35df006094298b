package nakama

import (
	"context"
	"database/sql"

	"suitclash/internal/app"
	"suitclash/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks, and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	voiceService = app.NewVoiceService(env["voice_secret"], env["voice_issuer"], env["voice_domain"])

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameSuitClash, NewMatch); err != nil {
		return err
	}

	if err := nk.LeaderboardCreate(ctx, LeaderboardSeason, true, "desc", "best", "", nil, true); err != nil {
		logger.Warn("InitModule: Leaderboard create failed (may already exist): %v", err)
	}

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("InitModule: Bot provisioning failed: %v", err)
	}

	logger.Info("SuitClash Go module loaded.")
	return nil
}
