package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call to obtain a voice channel token.
	RpcVoiceToken = "voice_token"

	// MatchNameSuitClash is the authoritative match handler name registered with Nakama.
	MatchNameSuitClash = "suitclash_match"

	// LeaderboardSeason is the leaderboard id round scores are published to.
	LeaderboardSeason = "suitclash_season"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound int64 = 1
	OpSelectHand int64 = 2
	OpMulligan   int64 = 3
	OpPlayCard   int64 = 4
	OpProgress   int64 = 5

	// Server -> Client events
	OpPlayerJoined       int64 = 101
	OpPlayerLeft         int64 = 102
	OpRoundStarted       int64 = 103
	OpHandDealt          int64 = 104 // send privately
	OpObjectivesAssigned int64 = 105 // send privately
	OpPlayerReady        int64 = 106
	OpPlayStarted        int64 = 107
	OpCardPlayed         int64 = 108
	OpEffectActivated    int64 = 109
	OpCardDrawn          int64 = 110 // send privately
	OpHandPeeked         int64 = 111 // send privately
	OpTrickResolved      int64 = 112
	OpTurnTimedOut       int64 = 113
	OpRoundEnded         int64 = 114
	OpMatchSnapshot      int64 = 115
	OpGameError          int64 = 116
)
