// Package scoring turns verified objective results into round scores.
package scoring

import "suitclash/internal/objectives"

// AllObjectivesBonus is the flat award for completing every assigned
// objective in a round. The bonus is all-or-nothing, never prorated.
const AllObjectivesBonus = 5

// PlayerScore is the scoring outcome for one player for one round.
type PlayerScore struct {
	RoundPoints         int  `json:"round_points"`
	ObjectivesCompleted int  `json:"objectives_completed"`
	ObjectivesTotal     int  `json:"objectives_total"`
	BonusApplied        bool `json:"bonus_applied"`
	BonusPoints         int  `json:"bonus_points"`
	TotalScore          int  `json:"total_score"`
}

// Calculate sums the points of completed objectives, applies the
// all-objectives bonus when every assigned objective completed, and adds
// the result to the player's prior running total. bonusPoints overrides
// the default bonus when positive.
func Calculate(priorTotal int, results []objectives.ObjectiveResult, bonusPoints int) PlayerScore {
	if bonusPoints <= 0 {
		bonusPoints = AllObjectivesBonus
	}

	score := PlayerScore{ObjectivesTotal: len(results)}
	for _, res := range results {
		if res.Completed {
			score.ObjectivesCompleted++
			score.RoundPoints += res.Points
		}
	}

	if score.ObjectivesTotal > 0 && score.ObjectivesCompleted == score.ObjectivesTotal {
		score.BonusApplied = true
		score.BonusPoints = bonusPoints
		score.RoundPoints += bonusPoints
	}

	score.TotalScore = priorTotal + score.RoundPoints
	return score
}
