// Package objectives holds the round-objective catalog, the verification
// strategies that decide objective completion from a player's round
// snapshot, and the difficulty-pool distribution used to assign
// objectives at round start.
package objectives

// Category groups objectives by the aspect of play they constrain.
type Category string

const (
	CategoryTricks  Category = "tricks"
	CategoryColor   Category = "color"
	CategoryValue   Category = "value"
	CategorySpecial Category = "special"
)

// Difficulty is the catalog tier of an objective. For distribution
// purposes Hard and VeryHard share one pool.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very_hard"
)

// Kind enumerates every verification strategy. The set is closed:
// completion checks dispatch through a function table keyed by Kind, and
// an unknown kind is a programming error, not a runtime condition.
type Kind int

const (
	KindWinExactTricks Kind = iota
	KindWinAtLeastTricks
	KindWinAtMostTricks
	KindLoseAllTricks
	KindWinFirstAndLastTrick
	KindWinConsecutiveTricks
	KindNoRedCards
	KindNoBlackCards
	KindDominantSuitCards
	KindAllSuits
	KindAllAces
	KindNoFaceCards
	KindOnlyEvenCards
	KindTotalValueBelow
	KindTotalValueAbove
	KindActivateAllEffects
	KindNeverActivateEffects
)

// Definition is one catalog entry. Target parameterizes count and
// threshold kinds and is zero elsewhere.
type Definition struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Points     int        `json:"points"`
	Kind       Kind       `json:"kind"`
	Target     int        `json:"target,omitempty"`
}

// Catalog returns the static objective catalog. IDs are globally unique
// and every entry belongs to exactly one difficulty tier.
func Catalog() []Definition {
	return []Definition{
		// Easy
		{ID: "tricks_at_least_2", Name: "Win at least 2 tricks", Category: CategoryTricks, Difficulty: DifficultyEasy, Points: 2, Kind: KindWinAtLeastTricks, Target: 2},
		{ID: "tricks_at_most_4", Name: "Win at most 4 tricks", Category: CategoryTricks, Difficulty: DifficultyEasy, Points: 2, Kind: KindWinAtMostTricks, Target: 4},
		{ID: "dominant_cards_3", Name: "Win 3 cards of the dominant suit", Category: CategoryColor, Difficulty: DifficultyEasy, Points: 2, Kind: KindDominantSuitCards, Target: 3},
		{ID: "total_value_above_50", Name: "Win more than 50 points of card value", Category: CategoryValue, Difficulty: DifficultyEasy, Points: 3, Kind: KindTotalValueAbove, Target: 50},

		// Medium
		{ID: "tricks_exact_3", Name: "Win exactly 3 tricks", Category: CategoryTricks, Difficulty: DifficultyMedium, Points: 4, Kind: KindWinExactTricks, Target: 3},
		{ID: "first_and_last", Name: "Win the first and the last trick", Category: CategoryTricks, Difficulty: DifficultyMedium, Points: 4, Kind: KindWinFirstAndLastTrick},
		{ID: "consecutive_3", Name: "Win 3 tricks in a row", Category: CategoryTricks, Difficulty: DifficultyMedium, Points: 5, Kind: KindWinConsecutiveTricks, Target: 3},
		{ID: "no_face_cards", Name: "Win no face cards", Category: CategoryValue, Difficulty: DifficultyMedium, Points: 4, Kind: KindNoFaceCards},
		{ID: "total_value_below_40", Name: "Win less than 40 points of card value", Category: CategoryValue, Difficulty: DifficultyMedium, Points: 4, Kind: KindTotalValueBelow, Target: 40},
		{ID: "never_activate", Name: "Never activate a card effect", Category: CategorySpecial, Difficulty: DifficultyMedium, Points: 4, Kind: KindNeverActivateEffects},

		// Hard
		{ID: "lose_all_tricks", Name: "Lose every trick", Category: CategoryTricks, Difficulty: DifficultyHard, Points: 6, Kind: KindLoseAllTricks},
		{ID: "no_red_cards", Name: "Win no red cards", Category: CategoryColor, Difficulty: DifficultyHard, Points: 6, Kind: KindNoRedCards},
		{ID: "no_black_cards", Name: "Win no black cards", Category: CategoryColor, Difficulty: DifficultyHard, Points: 6, Kind: KindNoBlackCards},
		{ID: "one_of_each_suit", Name: "Win at least one card of every suit", Category: CategoryColor, Difficulty: DifficultyHard, Points: 6, Kind: KindAllSuits},
		{ID: "only_even_cards", Name: "Win only even-valued cards", Category: CategoryValue, Difficulty: DifficultyHard, Points: 7, Kind: KindOnlyEvenCards},
		{ID: "activate_all", Name: "Activate the effect of every card you play", Category: CategorySpecial, Difficulty: DifficultyHard, Points: 7, Kind: KindActivateAllEffects},

		// Very hard
		{ID: "all_four_aces", Name: "Win all four aces", Category: CategoryValue, Difficulty: DifficultyVeryHard, Points: 10, Kind: KindAllAces},
	}
}
