package nakama

import (
	"context"
	"fmt"

	"suitclash/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaLeaderboardAdapter implements ports.LeaderboardPort using Nakama leaderboards.
type NakamaLeaderboardAdapter struct {
	nk            runtime.NakamaModule
	leaderboardID string
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter for the given board.
func NewNakamaLeaderboardAdapter(nk runtime.NakamaModule, leaderboardID string) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk, leaderboardID: leaderboardID}
}

// SubmitScores writes one record per player. Subscore carries the
// objectives-completed count as a tiebreaker.
func (a *NakamaLeaderboardAdapter) SubmitScores(ctx context.Context, submissions []ports.ScoreSubmission) error {
	for _, sub := range submissions {
		username := ""
		_, err := a.nk.LeaderboardRecordWrite(ctx, a.leaderboardID, sub.UserID, username, sub.Score, int64(sub.ObjectivesCompleted), sub.Metadata, nil)
		if err != nil {
			return fmt.Errorf("failed to write leaderboard record for user %s: %w", sub.UserID, err)
		}
	}
	return nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
