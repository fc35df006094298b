package app

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"suitclash/internal/domain"
	"suitclash/internal/validation"
)

func newTestService(opts Options) *Service {
	return NewService(rand.New(rand.NewSource(42)), opts)
}

// newPlayingRound starts a two-player round and locks both players in
// with their auto-drawn hands.
func newPlayingRound(t *testing.T, svc *Service) *Round {
	t.Helper()

	round, _, err := svc.StartRound([]string{"u1", "u2"})
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}
	now := time.Now()
	if _, err := svc.SubmitMulligan(round, "u1", nil, now); err != nil {
		t.Fatalf("lock u1 error: %v", err)
	}
	if _, err := svc.SubmitMulligan(round, "u2", nil, now); err != nil {
		t.Fatalf("lock u2 error: %v", err)
	}
	if round.Game.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %s, want playing", round.Game.Phase)
	}
	return round
}

// rig replaces a player's cards with a fixed layout for predictable play.
func rig(round *Round, userID string, hand, reserve []domain.Card) {
	pl := round.Game.Players[userID]
	pl.Hand = append([]domain.Card{}, hand...)
	pl.Reserve = append([]domain.Card{}, reserve...)
	pl.Played = nil
}

func wantValidationCode(t *testing.T, err error, code string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error %s", err, code)
	}
	if verr.Result.Code != code {
		t.Fatalf("code = %s, want %s", verr.Result.Code, code)
	}
}

func TestStartRoundDealsHandsAndObjectives(t *testing.T) {
	svc := newTestService(Options{})

	round, evs, err := svc.StartRound([]string{"u1", "", "u2", "u3"})
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}
	game := round.Game
	if game.Phase != domain.PhaseSelecting {
		t.Fatalf("phase = %s, want selecting", game.Phase)
	}
	if len(game.Seats) != 3 {
		t.Fatalf("seats = %d, want 3", len(game.Seats))
	}

	seen := map[string]bool{}
	for _, id := range game.Seats {
		pl := game.Players[id]
		if len(pl.Dealt) != domain.CardsPerPlayer {
			t.Fatalf("%s dealt %d cards, want %d", id, len(pl.Dealt), domain.CardsPerPlayer)
		}
		if len(pl.Hand) != domain.HandSize || len(pl.Reserve) != domain.ReserveSize {
			t.Fatalf("%s split = %d/%d, want %d/%d", id, len(pl.Hand), len(pl.Reserve), domain.HandSize, domain.ReserveSize)
		}
		for _, c := range pl.Dealt {
			if seen[c.ID()] {
				t.Fatalf("card %s dealt twice", c.ID())
			}
			seen[c.ID()] = true
		}
		if got := len(round.Objectives[id]); got != 3 {
			t.Fatalf("%s has %d objectives, want 3", id, got)
		}
	}

	handEvents, objectiveEvents := 0, 0
	for _, ev := range evs {
		switch ev.Kind {
		case EventHandDealt:
			handEvents++
			payload := ev.Payload.(HandDealtPayload)
			if len(ev.Recipients) != 1 || ev.Recipients[0] != payload.UserID {
				t.Fatalf("hand dealt for %s not private", payload.UserID)
			}
		case EventObjectivesAssigned:
			objectiveEvents++
			if len(ev.Recipients) != 1 {
				t.Fatal("objectives event not private")
			}
		}
	}
	if handEvents != 3 || objectiveEvents != 3 {
		t.Fatalf("private events = %d/%d, want 3/3", handEvents, objectiveEvents)
	}
}

func TestStartRoundRejectsBadSeatCounts(t *testing.T) {
	svc := newTestService(Options{})

	if _, _, err := svc.StartRound([]string{"u1"}); !errors.Is(err, ErrTooFewPlayers) {
		t.Errorf("err = %v, want ErrTooFewPlayers", err)
	}
	if _, _, err := svc.StartRound([]string{"u1", "u2", "u3", "u4", "u5"}); !errors.Is(err, ErrTooManyPlayers) {
		t.Errorf("err = %v, want ErrTooManyPlayers", err)
	}
}

func TestSelectionPhaseLocksAndBeginsPlay(t *testing.T) {
	svc := newTestService(Options{})
	round, _, err := svc.StartRound([]string{"u1", "u2"})
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}
	now := time.Now()

	pl := round.Game.Players["u1"]
	ids := make([]string, 0, domain.HandSize)
	for _, c := range pl.Dealt[:domain.HandSize] {
		ids = append(ids, c.ID())
	}
	evs, err := svc.SubmitStartingSelection(round, "u1", ids, now)
	if err != nil {
		t.Fatalf("selection error: %v", err)
	}
	for _, ev := range evs {
		if ev.Kind == EventPlayStarted {
			t.Fatal("play started before all players locked")
		}
	}
	if !pl.Locked {
		t.Fatal("u1 not locked after selection")
	}
	for i, id := range ids {
		if pl.Hand[i].ID() != id {
			t.Fatalf("hand[%d] = %s, want %s", i, pl.Hand[i].ID(), id)
		}
	}

	if _, err := svc.SubmitStartingSelection(round, "u1", ids, now); !errors.Is(err, ErrAlreadyLocked) {
		t.Fatalf("err = %v, want ErrAlreadyLocked", err)
	}

	evs, err = svc.SubmitMulligan(round, "u2", nil, now)
	if err != nil {
		t.Fatalf("mulligan error: %v", err)
	}
	started := false
	for _, ev := range evs {
		if ev.Kind == EventPlayStarted {
			started = true
			if ev.Payload.(PlayStartedPayload).FirstTurnUserID != "u1" {
				t.Fatal("first turn should go to seat 1")
			}
		}
	}
	if !started {
		t.Fatal("expected play started event")
	}
	if round.Game.Phase != domain.PhasePlaying || round.Game.CurrentTurn != "u1" {
		t.Fatalf("phase/turn = %s/%s, want playing/u1", round.Game.Phase, round.Game.CurrentTurn)
	}
}

func TestSubmitStartingSelectionRejectsBadPick(t *testing.T) {
	svc := newTestService(Options{})
	round, _, err := svc.StartRound([]string{"u1", "u2"})
	if err != nil {
		t.Fatalf("start round error: %v", err)
	}

	pl := round.Game.Players["u1"]
	_, err = svc.SubmitStartingSelection(round, "u1", []string{pl.Dealt[0].ID()}, time.Now())
	wantValidationCode(t, err, validation.CodeInvalidSelectionCount)
}

func TestPlayCardResolvesTrickAndEndsRound(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)
	game := round.Game
	game.Hierarchy = domain.NewHierarchy(domain.SuitHearts)

	rig(round, "u1", []domain.Card{{Suit: domain.SuitHearts, Value: domain.ValueAce}}, nil)
	rig(round, "u2", []domain.Card{{Suit: domain.SuitSpades, Value: domain.ValueTwo}}, nil)

	now := time.Now()
	if _, err := svc.PlayCard(round, "u1", "H14", false, nil, now); err != nil {
		t.Fatalf("u1 play error: %v", err)
	}
	if game.CurrentTurn != "u2" {
		t.Fatalf("turn = %s, want u2", game.CurrentTurn)
	}

	evs, err := svc.PlayCard(round, "u2", "S2", false, nil, now)
	if err != nil {
		t.Fatalf("u2 play error: %v", err)
	}

	var trick *TrickResolvedPayload
	var ended *RoundEndedPayload
	for _, ev := range evs {
		switch ev.Kind {
		case EventTrickResolved:
			p := ev.Payload.(TrickResolvedPayload)
			trick = &p
		case EventRoundEnded:
			p := ev.Payload.(RoundEndedPayload)
			ended = &p
		}
	}
	if trick == nil {
		t.Fatal("expected trick resolved event")
	}
	if trick.WinnerUserID != "u1" || trick.Reason != domain.ReasonOnlyDominantColor {
		t.Fatalf("winner/reason = %s/%s, want u1/%s", trick.WinnerUserID, trick.Reason, domain.ReasonOnlyDominantColor)
	}

	winner := game.Players["u1"]
	if winner.TricksWon != 1 || !winner.FirstTrickWon || !winner.LastTrickWon {
		t.Fatalf("winner state = %d/%v/%v, want 1/true/true", winner.TricksWon, winner.FirstTrickWon, winner.LastTrickWon)
	}
	if len(winner.Won) != 2 {
		t.Fatalf("winner collected %d cards, want 2", len(winner.Won))
	}

	if game.Phase != domain.PhaseEnded {
		t.Fatalf("phase = %s, want ended", game.Phase)
	}
	if ended == nil {
		t.Fatal("expected round ended event")
	}
	if len(ended.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(ended.Results))
	}
	for _, res := range ended.Results {
		if len(res.Verification.Results) != 3 {
			t.Fatalf("%s verified %d objectives, want 3", res.UserID, len(res.Verification.Results))
		}
		if res.Score.TotalScore != game.Players[res.UserID].Score {
			t.Fatalf("%s score not persisted", res.UserID)
		}
	}
}

func TestPlayCardValidationFailures(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)
	now := time.Now()

	_, err := svc.PlayCard(round, "u2", round.Game.Players["u2"].Hand[0].ID(), false, nil, now)
	wantValidationCode(t, err, validation.CodeNotPlayerTurn)

	_, err = svc.PlayCard(round, "u1", "ZZ", false, nil, now)
	wantValidationCode(t, err, validation.CodeCardNotInHand)

	_, err = svc.PlayCard(round, "u1", round.Game.Players["u1"].Hand[0].ID(), false, []string{"u2"}, now)
	wantValidationCode(t, err, validation.CodeUnnecessaryTargets)
}

func TestPlayCardOwnershipCheckedBeforeTurnOrder(t *testing.T) {
	svc := newTestService(Options{TurnLimit: 30 * time.Second})
	round := newPlayingRound(t, svc)
	game := round.Game

	// u2 acts out of turn with a card they do not own, after the turn
	// clock has run out. Ownership is reported first.
	late := game.TurnStartedAt.Add(31 * time.Second)
	_, err := svc.PlayCard(round, "u2", "ZZ", false, nil, late)
	wantValidationCode(t, err, validation.CodeCardNotInHand)

	// With a card they do own, turn order is the next failure reported.
	_, err = svc.PlayCard(round, "u2", game.Players["u2"].Hand[0].ID(), false, nil, late)
	wantValidationCode(t, err, validation.CodeNotPlayerTurn)
}

func TestPlayCardTurnTimeout(t *testing.T) {
	svc := newTestService(Options{TurnLimit: 30 * time.Second})
	round := newPlayingRound(t, svc)
	game := round.Game

	late := game.TurnStartedAt.Add(31 * time.Second)
	_, err := svc.PlayCard(round, "u1", game.Players["u1"].Hand[0].ID(), false, nil, late)
	wantValidationCode(t, err, validation.CodeTurnTimeout)

	if !svc.TurnExpired(game, late) {
		t.Fatal("expired turn not reported")
	}
}

func TestDrawEffectPullsFromReserve(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)
	game := round.Game

	rig(round, "u1",
		[]domain.Card{{Suit: domain.SuitHearts, Value: domain.ValueTwo}, {Suit: domain.SuitClubs, Value: domain.ValueSeven}},
		[]domain.Card{{Suit: domain.SuitDiamonds, Value: domain.ValueNine}},
	)

	evs, err := svc.PlayCard(round, "u1", "H2", true, nil, time.Now())
	if err != nil {
		t.Fatalf("play error: %v", err)
	}

	pl := game.Players["u1"]
	if pl.EffectsActivated != 1 {
		t.Fatalf("effects activated = %d, want 1", pl.EffectsActivated)
	}
	if len(pl.Reserve) != 0 {
		t.Fatalf("reserve = %d, want 0 after draw", len(pl.Reserve))
	}
	if !domain.ContainsCard(pl.Hand, "D9") {
		t.Fatal("drawn card not in hand")
	}

	drawn := false
	for _, ev := range evs {
		if ev.Kind == EventCardDrawn {
			drawn = true
			if len(ev.Recipients) != 1 || ev.Recipients[0] != "u1" {
				t.Fatal("draw event not private to u1")
			}
		}
	}
	if !drawn {
		t.Fatal("expected card drawn event")
	}
}

func TestStealEffectRequiresTargetReserve(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)

	// Jacks steal from an opponent's reserve.
	rig(round, "u1", []domain.Card{{Suit: domain.SuitSpades, Value: domain.ValueJack}}, nil)
	rig(round, "u2", []domain.Card{{Suit: domain.SuitHearts, Value: domain.ValueThree}}, nil)

	_, err := svc.PlayCard(round, "u1", "S11", true, []string{"u2"}, time.Now())
	wantValidationCode(t, err, validation.CodeDeckEmpty)

	_, err = svc.PlayCard(round, "u1", "S11", true, nil, time.Now())
	wantValidationCode(t, err, validation.CodeMissingTarget)

	_, err = svc.PlayCard(round, "u1", "S11", true, []string{"u1"}, time.Now())
	wantValidationCode(t, err, validation.CodeInvalidOpponentTarget)
}

func TestShieldAbsorbsOneHostileEffect(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)
	game := round.Game

	rig(round, "u1", []domain.Card{{Suit: domain.SuitClubs, Value: domain.ValueJack}}, nil)
	rig(round, "u2", []domain.Card{{Suit: domain.SuitHearts, Value: domain.ValueFour}},
		[]domain.Card{{Suit: domain.SuitDiamonds, Value: domain.ValueKing}})
	game.Players["u2"].Shielded = true

	if _, err := svc.PlayCard(round, "u1", "C11", true, []string{"u2"}, time.Now()); err != nil {
		t.Fatalf("play error: %v", err)
	}

	target := game.Players["u2"]
	if target.Shielded {
		t.Fatal("shield not consumed")
	}
	if len(target.Reserve) != 1 {
		t.Fatalf("reserve = %d, want 1 (steal blocked)", len(target.Reserve))
	}
}

func TestForcePlay(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)
	game := round.Game

	before := len(game.Players["u1"].Hand)
	evs, err := svc.ForcePlay(round, "u1", time.Now())
	if err != nil {
		t.Fatalf("force play error: %v", err)
	}
	if evs[0].Kind != EventTurnTimedOut {
		t.Fatalf("first event = %s, want %s", evs[0].Kind, EventTurnTimedOut)
	}
	if len(game.Players["u1"].Hand) != before-1 {
		t.Fatal("forced play did not leave the hand")
	}
	if !game.Acted["u1"] {
		t.Fatal("forced play not recorded in trick")
	}

	if _, err := svc.ForcePlay(round, "u1", time.Now()); !errors.Is(err, ErrCannotAct) {
		t.Fatalf("err = %v, want ErrCannotAct", err)
	}
}

func TestObjectiveProgressMidRound(t *testing.T) {
	svc := newTestService(Options{})
	round := newPlayingRound(t, svc)

	results, err := svc.ObjectiveProgress(round, "u1")
	if err != nil {
		t.Fatalf("progress error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	if _, err := svc.ObjectiveProgress(round, "ghost"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("err = %v, want ErrUnknownPlayer", err)
	}
}
