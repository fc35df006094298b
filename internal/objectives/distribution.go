package objectives

import (
	"fmt"

	"suitclash/internal/domain"
)

// Pools are the three disjoint difficulty pools objectives are drawn
// from. The hard pool merges the hard and very-hard catalog tiers.
type Pools struct {
	Easy   []Definition
	Medium []Definition
	Hard   []Definition
}

// Selection is a per-tier draw request. Callers impose any global
// minimum (for example "at least 3 objectives total") themselves.
type Selection struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Total returns the total number of objectives requested.
func (s Selection) Total() int {
	return s.Easy + s.Medium + s.Hard
}

// NotEnoughError reports a draw request exceeding a pool.
type NotEnoughError struct {
	Tier      string
	Requested int
	Available int
}

func (e *NotEnoughError) Error() string {
	return fmt.Sprintf("not enough %s objectives: requested %d, available %d", e.Tier, e.Requested, e.Available)
}

// NegativeSelectionError reports a negative per-tier request.
type NegativeSelectionError struct {
	Tier      string
	Requested int
}

func (e *NegativeSelectionError) Error() string {
	return fmt.Sprintf("negative %s objective selection: %d", e.Tier, e.Requested)
}

// AvailablePools partitions the static catalog into the three draw pools.
func AvailablePools() Pools {
	var p Pools
	for _, def := range Catalog() {
		switch def.Difficulty {
		case DifficultyEasy:
			p.Easy = append(p.Easy, def)
		case DifficultyMedium:
			p.Medium = append(p.Medium, def)
		default:
			p.Hard = append(p.Hard, def)
		}
	}
	return p
}

// Draw selects objectives without replacement, independently per tier,
// and concatenates the results in easy/medium/hard order.
func Draw(src domain.Source, pools Pools, sel Selection) ([]Definition, error) {
	tiers := []struct {
		name string
		pool []Definition
		n    int
	}{
		{"easy", pools.Easy, sel.Easy},
		{"medium", pools.Medium, sel.Medium},
		{"hard", pools.Hard, sel.Hard},
	}

	for _, tier := range tiers {
		if tier.n < 0 {
			return nil, &NegativeSelectionError{Tier: tier.name, Requested: tier.n}
		}
		if tier.n > len(tier.pool) {
			return nil, &NotEnoughError{Tier: tier.name, Requested: tier.n, Available: len(tier.pool)}
		}
	}

	var out []Definition
	for _, tier := range tiers {
		out = append(out, drawFrom(src, tier.pool, tier.n)...)
	}
	return out, nil
}

// drawFrom picks n definitions via a partial Fisher-Yates over a copy of
// the pool.
func drawFrom(src domain.Source, pool []Definition, n int) []Definition {
	if n == 0 {
		return nil
	}
	tmp := append([]Definition{}, pool...)
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(tmp)-i)
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp[:n]
}
