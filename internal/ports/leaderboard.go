package ports

import "context"

// ScoreSubmission is one player's round outcome for ranking purposes.
type ScoreSubmission struct {
	UserID              string
	Score               int64
	ObjectivesCompleted int
	Metadata            map[string]interface{}
}

// LeaderboardPort defines the interface for publishing round scores.
type LeaderboardPort interface {
	// SubmitScores records the given scores on the season leaderboard.
	// Bot seats are expected to be filtered out by the caller.
	SubmitScores(ctx context.Context, submissions []ScoreSubmission) error
}
