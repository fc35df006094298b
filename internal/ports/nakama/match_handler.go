package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"suitclash/internal/app"
	"suitclash/internal/bot"
	"suitclash/internal/config"
	"suitclash/internal/domain"
	"suitclash/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// goldPerPoint converts round points into wallet gold at settlement.
const goldPerPoint = 25

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string `json:"seats"`      // Array of user IDs, empty string means seat is empty
	OwnerSeat int       `json:"owner_seat"` // Seat index of the match owner
	Tick      int64     `json:"tick"`       // Current tick of the match for timer logic

	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"` // App service with the round use-cases
	Round     *app.Round                  `json:"-"` // Current active round (nil if in lobby)

	BotsEnabled          bool                  `json:"bots_enabled"`            // Whether AI players are allowed
	BotMinDelay          int                   `json:"bot_min_delay"`           // Min seconds a bot waits
	BotMaxDelay          int                   `json:"bot_max_delay"`           // Max seconds a bot waits
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotWaitUntil         int64                 `json:"bot_wait_until"`          // Tick when the bot should act
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"` // Tick when a single player started waiting
	Bots                 map[string]*bot.Agent `json:"-"`                       // Active bot agents

	Economy     ports.EconomyPort     `json:"-"` // Interface to Nakama wallet
	Leaderboard ports.LeaderboardPort `json:"-"` // Interface to the season leaderboard
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App: app.NewService(nil, app.Options{
			TurnLimit:    time.Duration(cfg.TurnDurationSeconds) * time.Second,
			Simultaneous: cfg.SimultaneousPlay,
			BonusPoints:  cfg.AllObjectivesBonus,
			Objectives:   cfg.ObjectiveSelection(),
			Effects:      cfg.EffectTable(),
		}),
		OwnerSeat:        -1,
		Bots:             make(map[string]*bot.Agent),
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Economy:          NewNakamaEconomyAdapter(nk),
		Leaderboard:      NewNakamaLeaderboardAdapter(nk, LeaderboardSeason),
	}

	// Read environment variables for bot configuration
	env := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["suitclash_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["suitclash_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["suitclash_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["suitclash_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Phase: "lobby",
		Game:  "suitclash",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second, matches the turn timer granularity
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace (if no round is running)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Round == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: Try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Round == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)

	// Broadcast the current match state to all presences after join.
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Handle incoming messages
	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpSelectHand:
			mh.handleSelectHand(ctx, matchState, dispatcher, logger, msg)
		case OpMulligan:
			mh.handleMulligan(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpProgress:
			mh.handleProgress(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processTurnTimeouts(ctx, matchState, dispatcher, logger)

	// AI Logic
	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// processTurnTimeouts force-plays for players whose turn outlived the limit.
func (mh *matchHandler) processTurnTimeouts(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round == nil || state.Round.Game.Phase != domain.PhasePlaying {
		return
	}
	now := time.Now()
	if !state.App.TurnExpired(state.Round.Game, now) {
		return
	}

	game := state.Round.Game
	for _, userID := range game.PlayerIDs() {
		if !game.CanAct(userID) {
			continue
		}
		if !game.Simultaneous && userID != game.CurrentTurn {
			continue
		}
		events, err := state.App.ForcePlay(state.Round, userID, now)
		if err != nil {
			logger.Error("processTurnTimeouts: Force play failed for %s: %v", userID, err)
			continue
		}
		logger.Info("processTurnTimeouts: Forced a play for %s.", userID)
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		if state.Round == nil || !state.App.TurnExpired(state.Round.Game, now) {
			return
		}
	}
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Round == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(ctx, state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			// Reset timer if 0 or >1 humans
			state.LastSinglePlayerTick = 0
		}
		return
	}

	game := state.Round.Game

	// 2. Lock in bot hands during the selection phase
	if game.Phase == domain.PhaseSelecting {
		for botID, agent := range state.Bots {
			pl, ok := game.Players[botID]
			if !ok || pl.Locked {
				continue
			}
			events, err := state.App.SubmitMulligan(state.Round, botID, agent.Mulligan(game), time.Now())
			if err != nil {
				logger.Error("processBots: Bot %s mulligan failed: %v", botID, err)
				continue
			}
			mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		}
		return
	}

	// 3. Handle bot turns in-game
	if game.Phase != domain.PhasePlaying {
		return
	}

	currentUserID := mh.nextBotToAct(game)
	if currentUserID == "" {
		// Not a bot turn, reset wait if it was set
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		// Initialize random delay
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", currentUserID, state.BotWaitUntil, state.Tick)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0 // Reset for next turn

	agent, exists := state.Bots[currentUserID]
	if !exists {
		// Fallback if agent missing (shouldn't happen for new bots)
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	move, err := agent.Play(game)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
		return
	}

	events, err := state.App.PlayCard(state.Round, currentUserID, move.CardID, move.Activate, move.TargetIDs, time.Now())
	if err != nil {
		// A bot move rejected by validation degrades to a plain forced play.
		logger.Warn("processBots: Bot %s move rejected (%v), forcing a play.", currentUserID, err)
		events, err = state.App.ForcePlay(state.Round, currentUserID, time.Now())
		if err != nil {
			logger.Error("processBots: Bot %s force play failed: %v", currentUserID, err)
			return
		}
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

// nextBotToAct returns the bot that should act on the current trick,
// or "" when it is a human's move.
func (mh *matchHandler) nextBotToAct(game *domain.Game) string {
	if game.Simultaneous {
		for _, id := range game.PlayerIDs() {
			if isBotUserId(id) && game.CanAct(id) {
				return id
			}
		}
		return ""
	}
	if isBotUserId(game.CurrentTurn) && game.CanAct(game.CurrentTurn) {
		return game.CurrentTurn
	}
	return ""
}

func (mh *matchHandler) broadcastMatchState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Round != nil {
			if pl, ok := state.Round.Game.Players[userId]; ok {
				cardsRemaining = pl.Remaining()
			}
		}

		var balance int64
		if state.Economy != nil && !isBotUserId(userId) {
			if b, err := state.Economy.GetBalance(ctx, userId); err == nil {
				balance = b
			}
		}

		playerStates = append(playerStates, PlayerState{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			CardsRemaining: cardsRemaining,
			DisplayName:    displayName,
			Balance:        balance,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   playerStates,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchSnapshot, bytes, nil, nil, true)
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := -1
	for i, seatUserId := range state.Seats {
		if seatUserId == senderID {
			senderSeat = i
			break
		}
	}

	logger.Info("StartRound: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Round != nil {
		logger.Warn("StartRound: Round already running.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartRound: User %s tried to start but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartRound {
		logger.Warn("StartRound: Cannot start with %d players. Need at least %d.", activeCount, app.MinPlayersToStartRound)
		return
	}

	round, events, err := state.App.StartRound(state.Seats[:])
	if err != nil {
		logger.Error("StartRound: Failed to start round: %v", err)
		return
	}

	// Store the authoritative round state
	state.Round = round

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)

	logger.Info("StartRound: Round started with %d players.", activeCount)
}

func (mh *matchHandler) handleSelectHand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Round == nil {
		logger.Warn("handleSelectHand: No round running.")
		return
	}

	var request SelectHandRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleSelectHand: Failed to unmarshal SelectHandRequest: %v", err)
		return
	}

	events, err := state.App.SubmitStartingSelection(state.Round, senderID, request.CardIDs, time.Now())
	if err != nil {
		logger.Warn("handleSelectHand: User %s selection rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleMulligan(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Round == nil {
		logger.Warn("handleMulligan: No round running.")
		return
	}

	var request MulliganRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleMulligan: Failed to unmarshal MulliganRequest: %v", err)
		return
	}

	events, err := state.App.SubmitMulligan(state.Round, senderID, request.ReplaceIDs, time.Now())
	if err != nil {
		logger.Warn("handleMulligan: User %s mulligan rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Round == nil {
		logger.Warn("handlePlayCard: No round running.")
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal PlayCardRequest: %v", err)
		return
	}

	events, err := state.App.PlayCard(state.Round, senderID, request.CardID, request.Activate, request.TargetIDs, time.Now())
	if err != nil {
		logger.Warn("handlePlayCard: User %s play of %s rejected: %v", senderID, request.CardID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleProgress(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Round == nil {
		return
	}

	results, err := state.App.ObjectiveProgress(state.Round, senderID)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	bytes, err := json.Marshal(results)
	if err != nil {
		logger.Error("handleProgress: Failed to marshal progress: %v", err)
		return
	}
	presence, ok := state.Presences[senderID]
	if !ok {
		return
	}
	dispatcher.BroadcastMessage(OpProgress, bytes, []runtime.Presence{presence}, nil, true)
}

// broadcastEvents dispatches app events and runs end-of-round settlement
// when one of them closes the round.
func (mh *matchHandler) broadcastEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)

		if ev.Kind == app.EventRoundEnded {
			if payload, ok := ev.Payload.(app.RoundEndedPayload); ok {
				mh.settleRound(ctx, state, logger, payload)
			}
			// Round ended, clear round state and update label back to lobby
			state.Round = nil
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

var eventOpCodes = map[app.EventKind]int64{
	app.EventPlayerJoined:       OpPlayerJoined,
	app.EventPlayerLeft:         OpPlayerLeft,
	app.EventRoundStarted:       OpRoundStarted,
	app.EventHandDealt:          OpHandDealt,
	app.EventObjectivesAssigned: OpObjectivesAssigned,
	app.EventPlayerReady:        OpPlayerReady,
	app.EventPlayStarted:        OpPlayStarted,
	app.EventCardPlayed:         OpCardPlayed,
	app.EventEffectActivated:    OpEffectActivated,
	app.EventCardDrawn:          OpCardDrawn,
	app.EventHandPeeked:         OpHandPeeked,
	app.EventTrickResolved:      OpTrickResolved,
	app.EventTurnTimedOut:       OpTurnTimedOut,
	app.EventRoundEnded:         OpRoundEnded,
}

// broadcastEvent handles the conversion and dispatching of one app event to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// settleRound pays out gold and publishes scores for human players.
func (mh *matchHandler) settleRound(ctx context.Context, state *MatchState, logger runtime.Logger, payload app.RoundEndedPayload) {
	var walletUpdates []ports.WalletUpdate
	var submissions []ports.ScoreSubmission

	for _, res := range payload.Results {
		// Skip bots
		if isBotUserId(res.UserID) {
			continue
		}
		if res.Score.RoundPoints > 0 {
			walletUpdates = append(walletUpdates, ports.WalletUpdate{
				UserID: res.UserID,
				Amount: int64(res.Score.RoundPoints) * goldPerPoint,
				Metadata: map[string]interface{}{
					"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
					"reason":   "round_reward",
				},
			})
		}
		submissions = append(submissions, ports.ScoreSubmission{
			UserID:              res.UserID,
			Score:               int64(res.Score.TotalScore),
			ObjectivesCompleted: res.Score.ObjectivesCompleted,
			Metadata: map[string]interface{}{
				"bonus_applied": res.Score.BonusApplied,
			},
		})
	}

	if state.Economy != nil && len(walletUpdates) > 0 {
		if err := state.Economy.UpdateBalances(ctx, walletUpdates); err != nil {
			logger.Error("settleRound: Failed to update balances: %v", err)
		}
	}
	if state.Leaderboard != nil && len(submissions) > 0 {
		if err := state.Leaderboard.SubmitScores(ctx, submissions); err != nil {
			logger.Error("settleRound: Failed to submit scores: %v", err)
		}
	}
}

// sendError sends a GameError to a specific user. Validation reasons stay
// server-side; only the stable code crosses the wire.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, actionErr error) {
	payload := GameError{Message: "action rejected"}
	var verr *app.ValidationError
	if errors.As(actionErr, &verr) {
		payload.Code = verr.Result.Code
	} else {
		payload.Message = actionErr.Error()
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal GameError: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Round != nil {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Phase: phase,
		Game:  "suitclash",
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
