package objectives

import "suitclash/internal/domain"

// ObjectiveResult is the per-objective outcome of a verification pass.
type ObjectiveResult struct {
	Objective Definition `json:"objective"`
	Completed bool       `json:"completed"`
	Points    int        `json:"points"`
	Progress  *Progress  `json:"progress,omitempty"`
}

// PlayerVerification aggregates the verification of one player's
// objectives against their own round snapshot.
type PlayerVerification struct {
	PlayerID       string            `json:"player_id"`
	Results        []ObjectiveResult `json:"results"`
	CompletedCount int               `json:"completed_count"`
	FailedCount    int               `json:"failed_count"`
	TotalPoints    int               `json:"total_points"`
}

// PlayerObjectives pairs a player's assigned objectives with the
// snapshot to evaluate them against.
type PlayerObjectives struct {
	PlayerID   string
	Objectives []Definition
	State      domain.PlayerRoundState
}

// VerifyRound evaluates every player's objectives against that player's
// own state. TotalPoints excludes the all-objectives bonus, which the
// scoring engine applies.
func VerifyRound(players []PlayerObjectives) []PlayerVerification {
	out := make([]PlayerVerification, 0, len(players))
	for _, p := range players {
		out = append(out, verifyPlayer(p))
	}
	return out
}

func verifyPlayer(p PlayerObjectives) PlayerVerification {
	pv := PlayerVerification{PlayerID: p.PlayerID}
	for _, def := range p.Objectives {
		res := ObjectiveResult{Objective: def, Completed: CheckCompletion(def, p.State)}
		if res.Completed {
			res.Points = def.Points
			pv.CompletedCount++
			pv.TotalPoints += def.Points
		} else {
			pv.FailedCount++
		}
		if prog, ok := GetProgress(def, p.State); ok {
			res.Progress = &prog
		}
		pv.Results = append(pv.Results, res)
	}
	return pv
}
