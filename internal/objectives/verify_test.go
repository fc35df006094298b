package objectives

import (
	"testing"

	"suitclash/internal/domain"
)

func card(s domain.Suit, v domain.Value) domain.Card {
	return domain.Card{Suit: s, Value: v}
}

func TestCatalogIsWellFormed(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 17 {
		t.Fatalf("catalog size = %d, want 17", len(catalog))
	}

	ids := map[string]bool{}
	kinds := map[Kind]bool{}
	for _, def := range catalog {
		if ids[def.ID] {
			t.Errorf("duplicate objective id %s", def.ID)
		}
		ids[def.ID] = true
		kinds[def.Kind] = true
		if def.Points <= 0 {
			t.Errorf("objective %s has no points", def.ID)
		}
	}
	if len(kinds) != 17 {
		t.Errorf("catalog covers %d kinds, want 17", len(kinds))
	}
}

func TestCheckCompletion(t *testing.T) {
	finished := func(s domain.PlayerRoundState) domain.PlayerRoundState {
		s.RemainingCards = 0
		return s
	}

	tests := []struct {
		name  string
		def   Definition
		state domain.PlayerRoundState
		want  bool
	}{
		{
			name:  "exact tricks met at round end",
			def:   Definition{Kind: KindWinExactTricks, Target: 3},
			state: finished(domain.PlayerRoundState{TricksWon: 3}),
			want:  true,
		},
		{
			name:  "exact tricks not confirmable mid-round",
			def:   Definition{Kind: KindWinExactTricks, Target: 3},
			state: domain.PlayerRoundState{TricksWon: 3, RemainingCards: 4},
			want:  false,
		},
		{
			name:  "at least reports early",
			def:   Definition{Kind: KindWinAtLeastTricks, Target: 2},
			state: domain.PlayerRoundState{TricksWon: 2, RemainingCards: 7},
			want:  true,
		},
		{
			name:  "at most gated on round end",
			def:   Definition{Kind: KindWinAtMostTricks, Target: 4},
			state: domain.PlayerRoundState{TricksWon: 1, RemainingCards: 2},
			want:  false,
		},
		{
			name:  "at most met at round end",
			def:   Definition{Kind: KindWinAtMostTricks, Target: 4},
			state: finished(domain.PlayerRoundState{TricksWon: 4}),
			want:  true,
		},
		{
			name:  "lose all",
			def:   Definition{Kind: KindLoseAllTricks},
			state: finished(domain.PlayerRoundState{TricksWon: 0}),
			want:  true,
		},
		{
			name:  "lose all fails with a win",
			def:   Definition{Kind: KindLoseAllTricks},
			state: finished(domain.PlayerRoundState{TricksWon: 1}),
			want:  false,
		},
		{
			name:  "first and last",
			def:   Definition{Kind: KindWinFirstAndLastTrick},
			state: domain.PlayerRoundState{FirstTrickWon: true, LastTrickWon: true},
			want:  true,
		},
		{
			name:  "consecutive streak reports early",
			def:   Definition{Kind: KindWinConsecutiveTricks, Target: 3},
			state: domain.PlayerRoundState{ConsecutiveTricksWon: 3, RemainingCards: 5},
			want:  true,
		},
		{
			name: "no red cards",
			def:  Definition{Kind: KindNoRedCards},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitClubs, domain.ValueFive), card(domain.SuitSpades, domain.ValueNine)},
			}),
			want: true,
		},
		{
			name: "no red cards fails on a heart",
			def:  Definition{Kind: KindNoRedCards},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitHearts, domain.ValueTwo)},
			}),
			want: false,
		},
		{
			name: "no black cards",
			def:  Definition{Kind: KindNoBlackCards},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitHearts, domain.ValueTwo), card(domain.SuitDiamonds, domain.ValueKing)},
			}),
			want: true,
		},
		{
			name: "dominant suit count",
			def:  Definition{Kind: KindDominantSuitCards, Target: 2},
			state: domain.PlayerRoundState{
				DominantSuit:   domain.SuitHearts,
				RemainingCards: 6,
				CardsWon: []domain.Card{
					card(domain.SuitHearts, domain.ValueTwo),
					card(domain.SuitHearts, domain.ValueNine),
					card(domain.SuitClubs, domain.ValueThree),
				},
			},
			want: true,
		},
		{
			name: "one of each suit",
			def:  Definition{Kind: KindAllSuits},
			state: domain.PlayerRoundState{
				RemainingCards: 3,
				CardsWon: []domain.Card{
					card(domain.SuitHearts, domain.ValueTwo),
					card(domain.SuitDiamonds, domain.ValueThree),
					card(domain.SuitClubs, domain.ValueFour),
					card(domain.SuitSpades, domain.ValueFive),
				},
			},
			want: true,
		},
		{
			name: "all four aces",
			def:  Definition{Kind: KindAllAces},
			state: domain.PlayerRoundState{
				RemainingCards: 1,
				CardsWon: []domain.Card{
					card(domain.SuitHearts, domain.ValueAce),
					card(domain.SuitDiamonds, domain.ValueAce),
					card(domain.SuitClubs, domain.ValueAce),
					card(domain.SuitSpades, domain.ValueAce),
				},
			},
			want: true,
		},
		{
			name: "no face cards",
			def:  Definition{Kind: KindNoFaceCards},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitHearts, domain.ValueAce), card(domain.SuitClubs, domain.ValueTen)},
			}),
			want: true,
		},
		{
			name: "no face cards fails on a queen",
			def:  Definition{Kind: KindNoFaceCards},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitHearts, domain.ValueQueen)},
			}),
			want: false,
		},
		{
			name: "only even cards",
			def:  Definition{Kind: KindOnlyEvenCards},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitHearts, domain.ValueTwo), card(domain.SuitClubs, domain.ValueTen)},
			}),
			want: true,
		},
		{
			name: "total value below",
			def:  Definition{Kind: KindTotalValueBelow, Target: 20},
			state: finished(domain.PlayerRoundState{
				CardsWon: []domain.Card{card(domain.SuitHearts, domain.ValueTwo), card(domain.SuitClubs, domain.ValueTen)},
			}),
			want: true,
		},
		{
			name: "total value above reports early",
			def:  Definition{Kind: KindTotalValueAbove, Target: 20},
			state: domain.PlayerRoundState{
				RemainingCards: 8,
				CardsWon:       []domain.Card{card(domain.SuitHearts, domain.ValueAce), card(domain.SuitClubs, domain.ValueKing)},
			},
			want: true,
		},
		{
			name: "activate all effects",
			def:  Definition{Kind: KindActivateAllEffects},
			state: finished(domain.PlayerRoundState{
				CardsPlayed:      []domain.Card{card(domain.SuitHearts, domain.ValueTwo), card(domain.SuitClubs, domain.ValueTen)},
				EffectsActivated: 2,
			}),
			want: true,
		},
		{
			name: "never activate effects",
			def:  Definition{Kind: KindNeverActivateEffects},
			state: finished(domain.PlayerRoundState{
				CardsPlayed: []domain.Card{card(domain.SuitHearts, domain.ValueTwo)},
			}),
			want: true,
		},
		{
			name: "never activate gated mid-round",
			def:  Definition{Kind: KindNeverActivateEffects},
			state: domain.PlayerRoundState{RemainingCards: 3},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckCompletion(tt.def, tt.state); got != tt.want {
				t.Errorf("completed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetProgress(t *testing.T) {
	state := domain.PlayerRoundState{TricksWon: 2, RemainingCards: 5}

	prog, ok := GetProgress(Definition{Kind: KindWinAtLeastTricks, Target: 4}, state)
	if !ok {
		t.Fatalf("expected progress for at-least kind")
	}
	if prog.Current != 2 || prog.Target != 4 || prog.Percentage != 50 {
		t.Errorf("progress = %+v, want {2 4 50}", prog)
	}

	if _, ok := GetProgress(Definition{Kind: KindNoRedCards}, state); ok {
		t.Errorf("absence objective should not report progress")
	}
}

func TestVerifyRound(t *testing.T) {
	state := domain.PlayerRoundState{
		TricksWon:      3,
		RemainingCards: 0,
		DominantSuit:   domain.SuitHearts,
		CardsWon: []domain.Card{
			card(domain.SuitHearts, domain.ValueAce),
			card(domain.SuitHearts, domain.ValueKing),
			card(domain.SuitHearts, domain.ValueNine),
		},
	}

	players := []PlayerObjectives{{
		PlayerID: "u1",
		Objectives: []Definition{
			{ID: "a", Kind: KindWinAtLeastTricks, Target: 2, Points: 2},
			{ID: "b", Kind: KindDominantSuitCards, Target: 3, Points: 2},
			{ID: "c", Kind: KindLoseAllTricks, Points: 6},
		},
		State: state,
	}}

	out := VerifyRound(players)
	if len(out) != 1 {
		t.Fatalf("verifications = %d, want 1", len(out))
	}
	pv := out[0]
	if pv.CompletedCount != 2 || pv.FailedCount != 1 {
		t.Fatalf("completed/failed = %d/%d, want 2/1", pv.CompletedCount, pv.FailedCount)
	}
	if pv.TotalPoints != 4 {
		t.Fatalf("total points = %d, want 4", pv.TotalPoints)
	}
	if pv.Results[2].Points != 0 {
		t.Errorf("failed objective carries points: %+v", pv.Results[2])
	}
}
