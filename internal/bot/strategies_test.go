package bot

import (
	"math/rand"
	"testing"

	"suitclash/internal/domain"
)

func testGame(dominant domain.Suit, players ...*domain.Player) *domain.Game {
	g := &domain.Game{
		Phase:     domain.PhasePlaying,
		Hierarchy: domain.NewHierarchy(dominant),
		Players:   make(map[string]*domain.Player),
		Acted:     make(map[string]bool),
	}
	for _, pl := range players {
		g.Players[pl.UserID] = pl
		g.Seats = append(g.Seats, pl.UserID)
	}
	return g
}

func TestCasualBotPlaysFromHand(t *testing.T) {
	pl := &domain.Player{
		UserID: "b1",
		Hand: []domain.Card{
			{Suit: domain.SuitHearts, Value: domain.ValueTwo},
			{Suit: domain.SuitSpades, Value: domain.ValueKing},
		},
	}
	g := testGame(domain.SuitHearts, pl)

	brain := &CasualBot{src: rand.New(rand.NewSource(7))}
	move, err := brain.DecidePlay(g, pl)
	if err != nil {
		t.Fatalf("decide play error: %v", err)
	}
	if !domain.ContainsCard(pl.Hand, move.CardID) {
		t.Fatalf("picked %s, not in hand", move.CardID)
	}
	if move.Activate {
		t.Fatal("casual bot should never activate effects")
	}

	pl.Hand = nil
	if _, err := brain.DecidePlay(g, pl); err != ErrNoPlayableCard {
		t.Fatalf("err = %v, want ErrNoPlayableCard", err)
	}
}

func TestSharpBotMulligansWeakLowCards(t *testing.T) {
	pl := &domain.Player{
		UserID: "b1",
		Hand: []domain.Card{
			{Suit: domain.SuitSpades, Value: domain.ValueThree},  // weak, low: replace
			{Suit: domain.SuitSpades, Value: domain.ValueKing},   // weak, high: keep
			{Suit: domain.SuitHearts, Value: domain.ValueTwo},    // dominant: keep
			{Suit: domain.SuitDiamonds, Value: domain.ValueFour}, // neutral: keep
			{Suit: domain.SuitSpades, Value: domain.ValueNine},   // weak, low: replace
		},
	}
	g := testGame(domain.SuitHearts, pl)

	brain := &SharpBot{src: rand.New(rand.NewSource(7)), effects: domain.DefaultEffectTable()}
	got := brain.DecideMulligan(g, pl)
	want := map[string]bool{"S3": true, "S9": true}
	if len(got) != len(want) {
		t.Fatalf("mulligan = %v, want S3 and S9", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected mulligan pick %s", id)
		}
	}
}

func TestSharpBotFollowsWithCheapestWinner(t *testing.T) {
	pl := &domain.Player{
		UserID: "b1",
		Hand: []domain.Card{
			{Suit: domain.SuitHearts, Value: domain.ValueAce},  // overkill winner
			{Suit: domain.SuitHearts, Value: domain.ValueSix},  // cheapest winner
			{Suit: domain.SuitSpades, Value: domain.ValueFour}, // loser
		},
	}
	opp := &domain.Player{UserID: "b2"}
	g := testGame(domain.SuitHearts, pl, opp)
	g.Trick = []domain.PlayedCard{
		{PlayerID: "b2", Card: domain.Card{Suit: domain.SuitHearts, Value: domain.ValueFive}},
	}

	brain := &SharpBot{src: rand.New(rand.NewSource(7)), effects: domain.DefaultEffectTable()}
	move, err := brain.DecidePlay(g, pl)
	if err != nil {
		t.Fatalf("decide play error: %v", err)
	}
	if move.CardID != "H6" {
		t.Fatalf("picked %s, want H6", move.CardID)
	}
}

func TestSharpBotDumpsWeakestWhenBeaten(t *testing.T) {
	pl := &domain.Player{
		UserID: "b1",
		Hand: []domain.Card{
			{Suit: domain.SuitSpades, Value: domain.ValueNine},
			{Suit: domain.SuitSpades, Value: domain.ValueTwo},
		},
	}
	opp := &domain.Player{UserID: "b2"}
	g := testGame(domain.SuitHearts, pl, opp)
	g.Trick = []domain.PlayedCard{
		{PlayerID: "b2", Card: domain.Card{Suit: domain.SuitHearts, Value: domain.ValueAce}},
	}

	brain := &SharpBot{src: rand.New(rand.NewSource(7)), effects: domain.DefaultEffectTable()}
	move, err := brain.DecidePlay(g, pl)
	if err != nil {
		t.Fatalf("decide play error: %v", err)
	}
	if move.CardID != "S2" {
		t.Fatalf("picked %s, want S2", move.CardID)
	}
}

func TestSharpBotActivatesSafeEffects(t *testing.T) {
	// A low card carries a draw effect; with reserve left it activates.
	pl := &domain.Player{
		UserID:  "b1",
		Hand:    []domain.Card{{Suit: domain.SuitSpades, Value: domain.ValueTwo}},
		Reserve: []domain.Card{{Suit: domain.SuitClubs, Value: domain.ValueTen}},
	}
	g := testGame(domain.SuitHearts, pl)

	brain := &SharpBot{src: rand.New(rand.NewSource(7)), effects: domain.DefaultEffectTable()}
	move, err := brain.DecidePlay(g, pl)
	if err != nil {
		t.Fatalf("decide play error: %v", err)
	}
	if !move.Activate || len(move.TargetIDs) != 0 {
		t.Fatalf("move = %+v, want activated draw with no targets", move)
	}

	pl.Reserve = nil
	move, err = brain.DecidePlay(g, pl)
	if err != nil {
		t.Fatalf("decide play error: %v", err)
	}
	if move.Activate {
		t.Fatal("draw effect should stay inactive with an empty reserve")
	}
}

func TestNewBrainRejectsUnknownLevel(t *testing.T) {
	if _, err := NewBrain(BotLevel(99), rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error for unknown bot level")
	}
}
