package experiments

import (
	"context"
	"fmt"
	"runtime"

	"gamesearch/config"
	"gamesearch/engine"
	"gamesearch/experiments/metrics"
	"gamesearch/game/registry"
	"gamesearch/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result holds the records of a finished match.
type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  map[string]int // by agent name, ties are not counted
}

// RunMatch plays cfg.Run.Games games of cfg.Run.Game between the configured
// agents, rotating seats from game to game. Games run in parallel, each with
// freshly built agents.
func RunMatch(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	initial, err := registry.New(cfg.Run.Game)
	if err != nil {
		return nil, err
	}
	seats := initial.NumPlayers()
	if len(cfg.Agents) != 1 && len(cfg.Agents) != seats {
		return nil, errors.Errorf("%d agents configured for %d players", len(cfg.Agents), seats)
	}

	outcomes := make([]engine.Outcome, cfg.Run.Games)
	names := make([][]string, cfg.Run.Games)

	log.Info().Msgf("starting %d games of %s...", cfg.Run.Games, cfg.Run.Game)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < cfg.Run.Games; i++ {
		g.Go(func() error {
			agents, err := seatAgents(cfg, seats, i)
			if err != nil {
				return err
			}
			names[i] = make([]string, len(agents))
			for p, a := range agents {
				names[i][p] = a.Name()
			}

			e, err := engine.Local(agents, initial, engine.WithGameName(cfg.Run.Game))
			if err != nil {
				return err
			}
			outcomes[i], err = e.Run(ctx)
			if err != nil {
				return errors.WithMessagef(err, "game %d", i+1)
			}
			log.Info().Msgf("completed game %d of %d with winner: %d", i+1, cfg.Run.Games, outcomes[i].Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Wins: map[string]int{}}
	for i, o := range outcomes {
		id := i + 1
		result.Games = append(result.Games, metrics.GameRecord{ID: id, Agents: names[i], GameMetric: o.Game})
		if o.Winner >= 0 {
			result.Wins[seatName(names[i], o.Winner)]++
		}
		for _, mm := range o.Moves {
			result.Moves = append(result.Moves, metrics.MoveRecord{
				Game:       id,
				Agent:      seatName(names[i], mm.Player),
				MoveMetric: mm,
			})
		}
	}

	log.Info().Interface("wins", result.Wins).Msgf("completed %d games of %s", cfg.Run.Games, cfg.Run.Game)
	return result, nil
}

// seatAgents builds the agents for game i: agent j sits at seat (j+i) mod n.
func seatAgents(cfg *config.Config, seats, i int) ([]agent.Agent, error) {
	if len(cfg.Agents) == 1 {
		a, err := agent.New(cfg.Agents[0], cfg.Run.Game)
		if err != nil {
			return nil, err
		}
		return []agent.Agent{a}, nil
	}
	agents := make([]agent.Agent, seats)
	for j, c := range cfg.Agents {
		if c.Seed != 0 {
			c.Seed += uint64(i) // different but reproducible tie-breaks per game
		}
		a, err := agent.New(c, cfg.Run.Game)
		if err != nil {
			return nil, err
		}
		agents[(j+i)%seats] = a
	}
	return agents, nil
}

func seatName(names []string, player int) string {
	if len(names) == 1 {
		return names[0]
	}
	return names[player]
}

// Store writes the agent configs and the match records below cfg.Run.OutDir.
func Store(cfg *config.Config, name string, result *Result) (string, error) {
	writer, err := metrics.NewWriter(cfg.Run.OutDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
