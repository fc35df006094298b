package domain

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestWeakOfIsInvolution(t *testing.T) {
	for _, s := range Suits {
		if got := WeakOf(WeakOf(s)); got != s {
			t.Errorf("WeakOf(WeakOf(%s)) = %s, want %s", s, got, s)
		}
	}
}

func TestNewHierarchyPartitionsSuits(t *testing.T) {
	for _, dominant := range Suits {
		h := NewHierarchy(dominant)

		seen := map[Suit]bool{
			h.Dominant:    true,
			h.Weak:        true,
			h.Neutrals[0]: true,
			h.Neutrals[1]: true,
		}
		if len(seen) != 4 {
			t.Fatalf("hierarchy(%s) does not partition the suits: %+v", dominant, h)
		}
		if h.Dominant != dominant {
			t.Errorf("dominant = %s, want %s", h.Dominant, dominant)
		}
		if h.Weak != WeakOf(dominant) {
			t.Errorf("weak = %s, want %s", h.Weak, WeakOf(dominant))
		}
		if h.Neutrals[0].Color() != dominant.Color() {
			t.Errorf("first neutral %s does not share color with dominant %s", h.Neutrals[0], dominant)
		}
		if h.Neutrals[1].Color() == dominant.Color() {
			t.Errorf("second neutral %s should not share color with dominant %s", h.Neutrals[1], dominant)
		}
	}
}

func TestHierarchyRankOrder(t *testing.T) {
	h := NewHierarchy(SuitHearts)

	want := map[Suit]int{
		SuitHearts:   0,
		SuitDiamonds: 1,
		SuitClubs:    2,
		SuitSpades:   3,
	}
	for s, r := range want {
		if got := h.Rank(s); got != r {
			t.Errorf("Rank(%s) = %d, want %d", s, got, r)
		}
	}
}

func TestSpinReturnsValidSuit(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	counts := map[Suit]int{}
	for i := 0; i < 100; i++ {
		counts[Spin(src)]++
	}
	for _, s := range Suits {
		if counts[s] == 0 {
			t.Errorf("suit %s never spun in 100 draws", s)
		}
	}
}

func TestHierarchyMarshalsSnakeCase(t *testing.T) {
	b, err := json.Marshal(NewHierarchy(SuitHearts))
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	want := `{"dominant":"H","weak":"S","neutrals":["D","C"]}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}
}
