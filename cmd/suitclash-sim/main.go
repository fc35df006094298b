// Command suitclash-sim runs headless rounds between bot brains and
// reports the outcomes. It is used to sanity-check rule changes and to
// compare strategy tiers without a running Nakama instance.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"suitclash/internal/app"
	"suitclash/internal/bot"
	"suitclash/internal/domain"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "suitclash-sim",
		Short:        "Headless round simulator",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		rounds  int
		players int
		seed    int64
		sharp   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate rounds and print score summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if players < 2 || players > 4 {
				return fmt.Errorf("players must be between 2 and 4, got %d", players)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			return runSimulation(rounds, players, seed, sharp)
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 10, "number of rounds to simulate")
	cmd.Flags().IntVar(&players, "players", 4, "number of seats to fill (2-4)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&sharp, "sharp", false, "use the sharp strategy tier for every seat")

	return cmd
}

type simSeat struct {
	id    string
	brain bot.Brain
	total int
	wins  int
}

func runSimulation(rounds, players int, seed int64, sharp bool) error {
	src := rand.New(rand.NewSource(seed))
	svc := app.NewService(src, app.Options{})

	level := bot.BotLevelCasual
	if sharp {
		level = bot.BotLevelSharp
	}

	seats := make([]*simSeat, players)
	byID := make(map[string]*simSeat, players)
	for i := range seats {
		brain, err := bot.NewBrain(level, rand.New(rand.NewSource(seed+int64(i)+1)))
		if err != nil {
			return err
		}
		seats[i] = &simSeat{id: "sim-" + uuid.NewString()[:8], brain: brain}
		byID[seats[i].id] = seats[i]
	}

	pterm.Info.Printfln("Simulating %d rounds, %d players, seed %d", rounds, players, seed)

	for i := 0; i < rounds; i++ {
		results, err := playRound(svc, seats, byID)
		if err != nil {
			return fmt.Errorf("round %d: %w", i+1, err)
		}

		best := ""
		bestPoints := -1
		for _, res := range results {
			seat := byID[res.UserID]
			seat.total = res.Score.TotalScore
			if res.Score.RoundPoints > bestPoints {
				bestPoints = res.Score.RoundPoints
				best = res.UserID
			}
		}
		if best != "" {
			byID[best].wins++
		}
	}

	table := pterm.TableData{{"Seat", "Round Wins", "Total Score"}}
	for _, seat := range seats {
		table = append(table, []string{seat.id, strconv.Itoa(seat.wins), strconv.Itoa(seat.total)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		return err
	}

	pterm.Success.Printfln("Completed %d rounds", rounds)
	return nil
}

// playRound drives one full round with every seat controlled by its brain.
func playRound(svc *app.Service, seats []*simSeat, byID map[string]*simSeat) ([]app.PlayerRoundResult, error) {
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = seat.id
	}

	round, _, err := svc.StartRound(ids)
	if err != nil {
		return nil, err
	}
	game := round.Game

	now := time.Now()
	for _, seat := range seats {
		pl := game.Players[seat.id]
		if _, err := svc.SubmitMulligan(round, seat.id, seat.brain.DecideMulligan(game, pl), now); err != nil {
			return nil, err
		}
	}

	// Safety bound: a 4-player round plays at most 13 tricks.
	for steps := 0; game.Phase == domain.PhasePlaying && steps < 4*domain.CardsPerPlayer; steps++ {
		actorID := game.CurrentTurn
		seat := byID[actorID]
		pl := game.Players[actorID]

		move, err := seat.brain.DecidePlay(game, pl)
		if err != nil {
			return nil, err
		}

		events, err := svc.PlayCard(round, actorID, move.CardID, move.Activate, move.TargetIDs, now)
		if err != nil {
			// A rejected move degrades to a forced plain play.
			events, err = svc.ForcePlay(round, actorID, now)
			if err != nil {
				return nil, err
			}
		}

		for _, ev := range events {
			if ev.Kind == app.EventRoundEnded {
				payload := ev.Payload.(app.RoundEndedPayload)
				return payload.Results, nil
			}
		}
	}

	return nil, fmt.Errorf("round did not finish")
}
