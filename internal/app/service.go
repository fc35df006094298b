package app

import (
	"errors"
	"time"

	"suitclash/internal/domain"
	"suitclash/internal/objectives"
	"suitclash/internal/scoring"
	"suitclash/internal/validation"

	"github.com/google/uuid"
)

var (
	ErrNotSelecting   = errors.New("round not in selection phase")
	ErrNotPlaying     = errors.New("round not in playing phase")
	ErrRoundNotEnded  = errors.New("round not ended")
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrTooManyPlayers = errors.New("too many players to start")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrAlreadyLocked  = errors.New("starting hand already confirmed")
	ErrCannotAct      = errors.New("player cannot act on this trick")
)

// ValidationError wraps a failed action validation so transports can
// forward the stable code. The reason stays server-side.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return e.Result.Code + ": " + e.Result.Reason
}

// Round pairs the authoritative game state with the objectives assigned
// to each player for this round.
type Round struct {
	ID         string
	Game       *domain.Game
	Objectives map[string][]objectives.Definition
}

// Options tune a Service. Zero values fall back to defaults.
type Options struct {
	TurnLimit    time.Duration
	Simultaneous bool
	BonusPoints  int
	Objectives   objectives.Selection
	Effects      map[string]domain.Effect
}

// Service contains the round use-cases operating on domain state.
type Service struct {
	src          domain.Source
	turnLimit    time.Duration
	simultaneous bool
	bonus        int
	objectiveSel objectives.Selection
	effects      map[string]domain.Effect
}

// NewService constructs a Service with the provided randomness source or
// a crypto-backed default.
func NewService(src domain.Source, opts Options) *Service {
	if src == nil {
		src = domain.CryptoSource()
	}
	if opts.Effects == nil {
		opts.Effects = domain.DefaultEffectTable()
	}
	if opts.Objectives.Total() == 0 {
		opts.Objectives = objectives.Selection{Easy: 1, Medium: 1, Hard: 1}
	}
	return &Service{
		src:          src,
		turnLimit:    opts.TurnLimit,
		simultaneous: opts.Simultaneous,
		bonus:        opts.BonusPoints,
		objectiveSel: opts.Objectives,
		effects:      opts.Effects,
	}
}

// StartRound deals a fresh round to the given seats. It expects userIDs
// in seat order (empty strings for empty seats): each player receives a
// 13-card personal deck split into an auto-drawn hand and reserve, plus
// their objective draw. The round opens in the selection phase.
func (s *Service) StartRound(playerIDs []string) (*Round, []Event, error) {
	players := make(map[string]*domain.Player)
	var seats []string
	for i, userID := range playerIDs {
		if userID == "" {
			continue
		}
		players[userID] = &domain.Player{
			UserID: userID,
			Seat:   i + 1,
		}
		seats = append(seats, userID)
	}
	if len(players) < MinPlayersToStartRound {
		return nil, nil, ErrTooFewPlayers
	}
	if len(players) > MaxPlayers {
		return nil, nil, ErrTooManyPlayers
	}

	deck := domain.Shuffle(s.src, domain.NewStandardDeck())
	hands, _, err := domain.Distribute(deck, len(seats), domain.CardsPerPlayer)
	if err != nil {
		return nil, nil, err
	}

	dominant := domain.Spin(s.src)
	game := &domain.Game{
		Phase:        domain.PhaseSelecting,
		Hierarchy:    domain.NewHierarchy(dominant),
		Players:      players,
		Seats:        seats,
		Simultaneous: s.simultaneous,
		Acted:        make(map[string]bool),
	}
	round := &Round{
		ID:         uuid.NewString(),
		Game:       game,
		Objectives: make(map[string][]objectives.Definition, len(seats)),
	}

	events := []Event{{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundID:   round.ID,
			Dominant:  dominant,
			Hierarchy: game.Hierarchy,
			Seats:     game.PlayerIDs(),
		},
	}}

	pools := objectives.AvailablePools()
	for i, userID := range seats {
		pl := players[userID]
		pl.Dealt = hands[i]

		ih, err := domain.DrawInitialHand(s.src, hands[i])
		if err != nil {
			return nil, nil, err
		}
		pl.Hand, pl.Reserve = ih.Hand, ih.Reserve

		defs, err := objectives.Draw(s.src, pools, s.objectiveSel)
		if err != nil {
			return nil, nil, err
		}
		round.Objectives[userID] = defs

		events = append(events,
			Event{
				Kind: EventHandDealt,
				Payload: HandDealtPayload{
					UserID:       userID,
					Hand:         pl.Hand,
					ReserveCount: len(pl.Reserve),
				},
				Recipients: []string{userID},
			},
			Event{
				Kind: EventObjectivesAssigned,
				Payload: ObjectivesAssignedPayload{
					UserID:     userID,
					Objectives: defs,
				},
				Recipients: []string{userID},
			},
		)
	}

	return round, events, nil
}

// SubmitStartingSelection replaces the auto-drawn hand with an explicit
// pick of 5 cards out of the player's 13-card allotment. The unpicked 8
// are shuffled into the reserve and the player is locked in.
func (s *Service) SubmitStartingSelection(r *Round, actorID string, selectedIDs []string, now time.Time) ([]Event, error) {
	game := r.Game
	if game.Phase != domain.PhaseSelecting {
		return nil, ErrNotSelecting
	}
	pl, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if pl.Locked {
		return nil, ErrAlreadyLocked
	}

	if res := validation.StartingSelection(selectedIDs, pl.Dealt); !res.Valid {
		return nil, &ValidationError{Result: res}
	}

	hand := make([]domain.Card, 0, domain.HandSize)
	rest := append([]domain.Card{}, pl.Dealt...)
	for _, id := range selectedIDs {
		var c domain.Card
		rest, c, _ = domain.RemoveCard(rest, id)
		hand = append(hand, c)
	}
	pl.Hand = hand
	pl.Reserve = domain.Shuffle(s.src, rest)
	pl.Locked = true

	events := []Event{
		{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID:       actorID,
				Hand:         pl.Hand,
				ReserveCount: len(pl.Reserve),
			},
			Recipients: []string{actorID},
		},
		{
			Kind:    EventPlayerReady,
			Payload: PlayerReadyPayload{UserID: actorID},
		},
	}
	return append(events, s.maybeBeginPlay(game, now)...), nil
}

// SubmitMulligan exchanges selected hand cards against the reserve and
// locks the player in. An empty replaceIDs keeps the auto-drawn hand.
func (s *Service) SubmitMulligan(r *Round, actorID string, replaceIDs []string, now time.Time) ([]Event, error) {
	game := r.Game
	if game.Phase != domain.PhaseSelecting {
		return nil, ErrNotSelecting
	}
	pl, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if pl.Locked {
		return nil, ErrAlreadyLocked
	}

	res, err := domain.PerformMulligan(s.src, pl.Hand, pl.Reserve, replaceIDs)
	if err != nil {
		return nil, err
	}
	pl.Hand, pl.Reserve = res.Hand, res.Reserve
	pl.Locked = true

	events := []Event{
		{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID:       actorID,
				Hand:         pl.Hand,
				ReserveCount: len(pl.Reserve),
			},
			Recipients: []string{actorID},
		},
		{
			Kind:    EventPlayerReady,
			Payload: PlayerReadyPayload{UserID: actorID, Replaced: res.Replaced},
		},
	}
	return append(events, s.maybeBeginPlay(game, now)...), nil
}

func (s *Service) maybeBeginPlay(game *domain.Game, now time.Time) []Event {
	for _, id := range game.Seats {
		if !game.Players[id].Locked {
			return nil
		}
	}
	game.Phase = domain.PhasePlaying
	game.TrickNumber = 1
	game.Acted = make(map[string]bool)
	game.CurrentTurn = game.Seats[0]
	game.TurnStartedAt = now
	return []Event{{
		Kind:    EventPlayStarted,
		Payload: PlayStartedPayload{FirstTurnUserID: game.CurrentTurn},
	}}
}

// PlayCard validates and applies one card play. When activate is true
// the card's effect fires against targetIDs; when false the card is
// played plain and no targets may be supplied.
func (s *Service) PlayCard(r *Round, actorID, cardID string, activate bool, targetIDs []string, now time.Time) ([]Event, error) {
	game := r.Game
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl, ok := game.Players[actorID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	eff := s.effectFor(cardID)
	res := validation.Chain(
		func() validation.Result { return validation.CardInHand(cardID, pl.Hand) },
		func() validation.Result { return validation.NotAlreadyPlayed(cardID, pl.Played) },
		func() validation.Result { return validation.TurnOrder(actorID, game.CurrentTurn, game.Simultaneous) },
		func() validation.Result { return validation.NotActedThisTurn(actorID, game.Acted) },
		func() validation.Result { return validation.TurnTimeout(now, game.TurnStartedAt, s.turnLimit) },
		func() validation.Result {
			if !activate {
				if len(targetIDs) > 0 {
					return validation.Fail(validation.CodeUnnecessaryTargets, "plain play takes no targets, got %d", len(targetIDs))
				}
				return validation.OK()
			}
			return validation.EffectTargets(eff, actorID, targetIDs, game.Seats)
		},
		func() validation.Result {
			// A steal needs something left in the target's reserve.
			if activate && eff.Kind == domain.EffectSteal {
				return validation.DeckNotEmpty(len(game.Players[targetIDs[0]].Reserve))
			}
			return validation.OK()
		},
	)
	if !res.Valid {
		return nil, &ValidationError{Result: res}
	}

	return s.applyPlay(r, pl, cardID, activate, targetIDs, now)
}

// ForcePlay plays a uniformly chosen hand card for a player whose turn
// expired, without activating its effect.
func (s *Service) ForcePlay(r *Round, userID string, now time.Time) ([]Event, error) {
	game := r.Game
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl, ok := game.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !game.CanAct(userID) {
		return nil, ErrCannotAct
	}

	card := pl.Hand[s.src.Intn(len(pl.Hand))]
	events := []Event{{
		Kind:    EventTurnTimedOut,
		Payload: TurnTimedOutPayload{UserID: userID, CardID: card.ID()},
	}}
	played, err := s.applyPlay(r, pl, card.ID(), false, nil, now)
	if err != nil {
		return nil, err
	}
	return append(events, played...), nil
}

// TurnExpired reports whether the current turn has outlived the limit.
func (s *Service) TurnExpired(game *domain.Game, now time.Time) bool {
	return game.Phase == domain.PhasePlaying && s.turnLimit > 0 && now.Sub(game.TurnStartedAt) > s.turnLimit
}

func (s *Service) applyPlay(r *Round, pl *domain.Player, cardID string, activate bool, targetIDs []string, now time.Time) ([]Event, error) {
	game := r.Game

	hand, card, ok := domain.RemoveCard(pl.Hand, cardID)
	if !ok {
		return nil, &ValidationError{Result: validation.CardInHand(cardID, pl.Hand)}
	}
	pl.Hand = hand
	pl.Played = append(pl.Played, card)
	game.Trick = append(game.Trick, domain.PlayedCard{PlayerID: pl.UserID, Card: card})
	game.Acted[pl.UserID] = true

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{UserID: pl.UserID, Card: card},
	}}
	if activate {
		events = append(events, s.applyEffect(game, pl, card, targetIDs)...)
	}

	if game.TrickComplete() {
		resolved, err := s.resolveTrick(r, now)
		if err != nil {
			return nil, err
		}
		events = append(events, resolved...)
	} else if !game.Simultaneous {
		game.CurrentTurn = game.NextTurn(pl.UserID)
		game.TurnStartedAt = now
	}

	if payload, ok := events[0].Payload.(CardPlayedPayload); ok {
		payload.NextTurnUserID = game.CurrentTurn
		events[0].Payload = payload
	}
	return events, nil
}

func (s *Service) applyEffect(game *domain.Game, pl *domain.Player, card domain.Card, targetIDs []string) []Event {
	eff := s.effectFor(card.ID())
	if eff.Kind == "" {
		return nil
	}
	pl.EffectsActivated++

	events := []Event{{
		Kind: EventEffectActivated,
		Payload: EffectActivatedPayload{
			UserID:    pl.UserID,
			CardID:    card.ID(),
			Kind:      eff.Kind,
			TargetIDs: targetIDs,
		},
	}}

	switch eff.Kind {
	case domain.EffectDraw:
		// Fizzles on an empty reserve rather than blocking the play.
		if ev, ok := s.drawOne(pl); ok {
			events = append(events, ev)
		}
	case domain.EffectPeek:
		target := game.Players[targetIDs[0]]
		if consumeShield(target) {
			break
		}
		events = append(events, Event{
			Kind: EventHandPeeked,
			Payload: HandPeekedPayload{
				UserID:       pl.UserID,
				TargetUserID: target.UserID,
				Cards:        append([]domain.Card{}, target.Hand...),
			},
			Recipients: []string{pl.UserID},
		})
	case domain.EffectShield:
		pl.Shielded = true
	case domain.EffectSteal:
		target := game.Players[targetIDs[0]]
		if consumeShield(target) || len(target.Reserve) == 0 {
			break
		}
		n := len(target.Reserve) - 1
		stolen := target.Reserve[n]
		target.Reserve = target.Reserve[:n]
		pl.Hand = append(pl.Hand, stolen)
		events = append(events, Event{
			Kind: EventCardDrawn,
			Payload: CardDrawnPayload{
				UserID:       pl.UserID,
				Card:         stolen,
				ReserveCount: len(pl.Reserve),
			},
			Recipients: []string{pl.UserID},
		})
	case domain.EffectSwap:
		target := game.Players[targetIDs[0]]
		if target == pl || consumeShield(target) {
			break
		}
		if len(pl.Hand) == 0 || len(target.Hand) == 0 {
			break
		}
		i := s.src.Intn(len(pl.Hand))
		j := s.src.Intn(len(target.Hand))
		pl.Hand[i], target.Hand[j] = target.Hand[j], pl.Hand[i]
		events = append(events,
			handRefresh(pl),
			handRefresh(target),
		)
	case domain.EffectStorm:
		// Every other player burns the top card of their reserve.
		for _, id := range game.Seats {
			other := game.Players[id]
			if other == pl || len(other.Reserve) == 0 {
				continue
			}
			if consumeShield(other) {
				continue
			}
			other.Reserve = other.Reserve[:len(other.Reserve)-1]
		}
	}
	return events
}

// consumeShield reports whether the target's shield absorbed a hostile
// effect. A shield blocks exactly one effect.
func consumeShield(target *domain.Player) bool {
	if target.Shielded {
		target.Shielded = false
		return true
	}
	return false
}

func handRefresh(pl *domain.Player) Event {
	return Event{
		Kind: EventHandDealt,
		Payload: HandDealtPayload{
			UserID:       pl.UserID,
			Hand:         append([]domain.Card{}, pl.Hand...),
			ReserveCount: len(pl.Reserve),
		},
		Recipients: []string{pl.UserID},
	}
}

func (s *Service) drawOne(pl *domain.Player) (Event, bool) {
	if len(pl.Reserve) == 0 {
		return Event{}, false
	}
	n := len(pl.Reserve) - 1
	card := pl.Reserve[n]
	pl.Reserve = pl.Reserve[:n]
	pl.Hand = append(pl.Hand, card)
	return Event{
		Kind: EventCardDrawn,
		Payload: CardDrawnPayload{
			UserID:       pl.UserID,
			Card:         card,
			ReserveCount: len(pl.Reserve),
		},
		Recipients: []string{pl.UserID},
	}, true
}

func (s *Service) resolveTrick(r *Round, now time.Time) ([]Event, error) {
	game := r.Game
	res, err := domain.ResolveTrick(game.Trick, game.Hierarchy.Dominant)
	if err != nil {
		return nil, err
	}

	winner := game.Players[res.Winner.PlayerID]
	winner.TricksWon++
	winner.Streak++
	if winner.Streak > winner.BestStreak {
		winner.BestStreak = winner.Streak
	}
	if game.TrickNumber == 1 {
		winner.FirstTrickWon = true
	}
	for _, pc := range game.Trick {
		winner.Won = append(winner.Won, pc.Card)
	}
	for _, id := range game.Seats {
		if id != winner.UserID {
			game.Players[id].Streak = 0
		}
	}

	events := []Event{{
		Kind: EventTrickResolved,
		Payload: TrickResolvedPayload{
			Number:       game.TrickNumber,
			Plays:        append([]domain.PlayedCard{}, game.Trick...),
			WinnerUserID: winner.UserID,
			WinningCard:  res.Winner.Card,
			Reason:       res.Reason,
		},
	}}

	// End-of-trick refill, one card per player while reserves last.
	for _, id := range game.Seats {
		if ev, ok := s.drawOne(game.Players[id]); ok {
			events = append(events, ev)
		}
	}

	game.Trick = nil
	game.Acted = make(map[string]bool)
	game.TrickNumber++

	if game.RoundOver() {
		winner.LastTrickWon = true
		game.Phase = domain.PhaseEnded
		game.CurrentTurn = ""
		return append(events, s.endRound(r)), nil
	}

	next := winner.UserID
	if len(winner.Hand) == 0 {
		next = game.NextTurn(winner.UserID)
	}
	game.CurrentTurn = next
	game.TurnStartedAt = now
	return events, nil
}

func (s *Service) endRound(r *Round) Event {
	game := r.Game

	po := make([]objectives.PlayerObjectives, 0, len(game.Seats))
	for _, id := range game.Seats {
		snap, _ := game.Snapshot(id)
		po = append(po, objectives.PlayerObjectives{
			PlayerID:   id,
			Objectives: r.Objectives[id],
			State:      snap,
		})
	}

	results := make([]PlayerRoundResult, 0, len(game.Seats))
	for _, v := range objectives.VerifyRound(po) {
		pl := game.Players[v.PlayerID]
		score := scoring.Calculate(pl.Score, v.Results, s.bonus)
		pl.Score = score.TotalScore
		results = append(results, PlayerRoundResult{
			UserID:       v.PlayerID,
			Verification: v,
			Score:        score,
		})
	}
	return Event{Kind: EventRoundEnded, Payload: RoundEndedPayload{Results: results}}
}

// ObjectiveProgress evaluates a player's objectives against the current
// state of the round, for mid-round progress display.
func (s *Service) ObjectiveProgress(r *Round, userID string) ([]objectives.ObjectiveResult, error) {
	snap, ok := r.Game.Snapshot(userID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	v := objectives.VerifyRound([]objectives.PlayerObjectives{{
		PlayerID:   userID,
		Objectives: r.Objectives[userID],
		State:      snap,
	}})
	return v[0].Results, nil
}

func (s *Service) effectFor(cardID string) domain.Effect {
	if eff, ok := s.effects[cardID]; ok {
		return eff
	}
	return domain.Effect{Targeting: domain.TargetNone}
}
